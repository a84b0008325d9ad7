// Package core defines the term language the checker and normalizer
// operate on: universes, variables, lambda abstractions, dependent
// function types, application and type ascription, with binding
// expressed in the locally nameless style of package bind.
//
// Term trees are built once, by translation from concrete syntax, and
// are immutable afterwards. Close, BindScope and Instantiate return
// new trees; subterms are shared freely between them.
package core

import (
	"github.com/silky/pikelet/bind"
	"github.com/silky/pikelet/lexer"
)

// Term is a core term. Type is a term read as a type; the two are not
// distinguished structurally.
type Term interface {
	Span() lexer.Span
	isTerm()
}

// Type is a handle to a term interpreted as a type. Handles are shared
// by reference between context entries, elaborated terms and error
// payloads; nothing mutates a term after construction.
type Type = Term

var (
	_ Term = (*Universe)(nil)
	_ Term = (*Var)(nil)
	_ Term = (*Lam)(nil)
	_ Term = (*Pi)(nil)
	_ Term = (*App)(nil)
	_ Term = (*Ann)(nil)
)

// Universe is the type of types at a given level.
type Universe struct {
	SpanOf lexer.Span
	Level  uint32
}

func (u *Universe) Span() lexer.Span { return u.SpanOf }
func (*Universe) isTerm()            {}

// Var is a variable occurrence, free or bound.
type Var struct {
	SpanOf lexer.Span
	Ref    bind.Var
}

func (v *Var) Span() lexer.Span { return v.SpanOf }
func (*Var) isTerm()            {}

// Scope is a binder parameter together with a body in which free
// occurrences of the parameter's name have been closed into indices.
// The parameter annotation is nil for an unannotated lambda parameter
// and always present for a pi parameter.
type Scope struct {
	Param bind.Named[Type]
	Body  Term
}

// Lam is a lambda abstraction.
type Lam struct {
	SpanOf lexer.Span
	Scope  Scope
}

func (l *Lam) Span() lexer.Span { return l.SpanOf }
func (*Lam) isTerm()            {}

// Pi is a dependent function type. Non-dependent arrows are Pi types
// whose parameter name is bind.Abstract.
type Pi struct {
	SpanOf lexer.Span
	Scope  Scope
}

func (p *Pi) Span() lexer.Span { return p.SpanOf }
func (*Pi) isTerm()            {}

// App applies a function to an argument.
type App struct {
	SpanOf lexer.Span
	Fn     Term
	Arg    Term
}

func (a *App) Span() lexer.Span { return a.SpanOf }
func (*App) isTerm()            {}

// Ann ascribes a type to a term, `e : t`.
type Ann struct {
	SpanOf lexer.Span
	Expr   Term
	Type   Type
}

func (a *Ann) Span() lexer.Span { return a.SpanOf }
func (*Ann) isTerm()            {}

// Close captures free variables: every free variable for which onFree
// returns an index becomes bound at that index, with the target level
// incremented for each scope the traversal descends into. Names that
// do not match pass through, so closing is total and pure.
func Close(t Term, onFree bind.OnFree) Term {
	switch t := t.(type) {
	case *Universe:
		return t
	case *Var:
		ref := bind.Close(t.Ref, onFree)
		if ref == t.Ref {
			return t
		}
		return &Var{SpanOf: t.SpanOf, Ref: ref}
	case *Lam:
		return &Lam{SpanOf: t.SpanOf, Scope: closeScope(t.Scope, onFree)}
	case *Pi:
		return &Pi{SpanOf: t.SpanOf, Scope: closeScope(t.Scope, onFree)}
	case *App:
		return &App{SpanOf: t.SpanOf, Fn: Close(t.Fn, onFree), Arg: Close(t.Arg, onFree)}
	case *Ann:
		return &Ann{SpanOf: t.SpanOf, Expr: Close(t.Expr, onFree), Type: Close(t.Type, onFree)}
	default:
		panic("unreachable")
	}
}

func closeScope(s Scope, onFree bind.OnFree) Scope {
	param := s.Param
	if param.Val != nil {
		// the annotation sits outside the binder
		param.Val = Close(param.Val, onFree)
	}
	body := Close(s.Body, func(name bind.Name) (bind.Debruijn, bool) {
		level, ok := onFree(name)
		if !ok {
			return 0, false
		}
		return level.Succ(), true
	})
	return Scope{Param: param, Body: body}
}

// Close0 captures a single name at the current binder.
func Close0(t Term, name bind.Name) Term {
	return Close(t, func(found bind.Name) (bind.Debruijn, bool) {
		if name.Equal(found) {
			return 0, true
		}
		return 0, false
	})
}

// BindScope constructs a scope, closing body over the parameter's
// name at level 0.
func BindScope(param bind.Named[Type], body Term) Scope {
	return Scope{Param: param, Body: Close0(body, param.Name)}
}

// Instantiate opens the scope: occurrences bound at the scope's own
// level are replaced with arg, and indices pointing past the removed
// binder shift down by one. No names are generated, so the
// substitution cannot capture.
func (s Scope) Instantiate(arg Term) Term {
	return open(s.Body, 0, arg)
}

func open(t Term, level bind.Debruijn, arg Term) Term {
	switch t := t.(type) {
	case *Universe:
		return t
	case *Var:
		bound, ok := t.Ref.(bind.Bound)
		if !ok {
			return t
		}
		if bound.Binder.Val == level {
			return arg
		}
		if bound.Binder.Val > level {
			// the binder this index pointed past is gone
			index, _ := bound.Binder.Val.Pred()
			return &Var{SpanOf: t.SpanOf, Ref: bind.Bound{
				Binder: bind.Named[bind.Debruijn]{Name: bound.Binder.Name, Val: index},
			}}
		}
		return t
	case *Lam:
		return &Lam{SpanOf: t.SpanOf, Scope: openScope(t.Scope, level, arg)}
	case *Pi:
		return &Pi{SpanOf: t.SpanOf, Scope: openScope(t.Scope, level, arg)}
	case *App:
		return &App{SpanOf: t.SpanOf, Fn: open(t.Fn, level, arg), Arg: open(t.Arg, level, arg)}
	case *Ann:
		return &Ann{SpanOf: t.SpanOf, Expr: open(t.Expr, level, arg), Type: open(t.Type, level, arg)}
	default:
		panic("unreachable")
	}
}

func openScope(s Scope, level bind.Debruijn, arg Term) Scope {
	param := s.Param
	if param.Val != nil {
		param.Val = open(param.Val, level, arg)
	}
	return Scope{Param: param, Body: open(s.Body, level.Succ(), arg)}
}

// AlphaEq reports structural equality of two terms, ignoring spans and
// the display names attached to binders and bound variables. Because
// bound variables carry indices, this is alpha-equivalence.
func AlphaEq(a, b Term) bool {
	switch a := a.(type) {
	case *Universe:
		b, ok := b.(*Universe)
		return ok && a.Level == b.Level
	case *Var:
		b, ok := b.(*Var)
		return ok && bind.Eq(a.Ref, b.Ref)
	case *Lam:
		b, ok := b.(*Lam)
		return ok && scopeEq(a.Scope, b.Scope)
	case *Pi:
		b, ok := b.(*Pi)
		return ok && scopeEq(a.Scope, b.Scope)
	case *App:
		b, ok := b.(*App)
		return ok && AlphaEq(a.Fn, b.Fn) && AlphaEq(a.Arg, b.Arg)
	case *Ann:
		b, ok := b.(*Ann)
		return ok && AlphaEq(a.Expr, b.Expr) && AlphaEq(a.Type, b.Type)
	default:
		panic("unreachable")
	}
}

func scopeEq(a, b Scope) bool {
	if (a.Param.Val == nil) != (b.Param.Val == nil) {
		return false
	}
	if a.Param.Val != nil && !AlphaEq(a.Param.Val, b.Param.Val) {
		return false
	}
	return AlphaEq(a.Body, b.Body)
}
