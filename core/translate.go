package core

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/silky/pikelet/ast"
	"github.com/silky/pikelet/bind"
	"github.com/silky/pikelet/lexer"
)

// TranslateError reports concrete syntax that has no core
// counterpart. The parser diagnoses these before translation runs, so
// one of these escaping to a user means a parse error slipped through.
type TranslateError struct {
	Span lexer.Span
	Msg  string
}

func (e TranslateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Msg)
}

// FromConcrete translates a concrete term to a core term. Free
// variable occurrences become named free variables; BindScope then
// resolves the ones a binder captures. Multi-parameter binders
// desugar to nested single-parameter scopes, `t1 -> t2` to a Pi whose
// parameter is abstract, and multi-argument application to left-nested
// binary application. No type checking happens here: a lambda
// parameter without an annotation is diagnosed later, during checking.
func FromConcrete(n ast.Node) (Term, error) {
	switch n := n.(type) {
	case *ast.Parens:
		return FromConcrete(n.X)
	case *ast.Ann:
		expr, err := FromConcrete(n.X)
		if err != nil {
			return nil, err
		}
		ty, err := FromConcrete(n.Type)
		if err != nil {
			return nil, err
		}
		return &Ann{SpanOf: n.Span(), Expr: expr, Type: ty}, nil
	case *ast.UniverseTerm:
		level, err := n.LevelValue()
		if err != nil {
			return nil, TranslateError{Span: n.Span(), Msg: err.Error()}
		}
		return &Universe{SpanOf: n.Span(), Level: level}, nil
	case *ast.Var:
		if n.Name.Data == "_" {
			return nil, TranslateError{Span: n.Span(), Msg: "`_` is not a term"}
		}
		return &Var{SpanOf: n.Span(), Ref: bind.Free{Name: bind.User(n.Name.Data)}}, nil
	case *ast.Lam:
		body, err := FromConcrete(n.Body)
		if err != nil {
			return nil, err
		}
		return DesugarLam(n.Span(), n.Params, body)
	case *ast.Pi:
		body, err := FromConcrete(n.Body)
		if err != nil {
			return nil, err
		}
		return desugarPi(n.Span(), n.Param, body)
	case *ast.Arrow:
		domain, err := FromConcrete(n.Domain)
		if err != nil {
			return nil, err
		}
		codomain, err := FromConcrete(n.Codomain)
		if err != nil {
			return nil, err
		}
		param := bind.Named[Type]{Name: bind.Abstract{}, Val: domain}
		return &Pi{SpanOf: n.Span(), Scope: BindScope(param, codomain)}, nil
	case *ast.App:
		fn, err := FromConcrete(n.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := FromConcrete(n.Arg)
		if err != nil {
			return nil, err
		}
		return &App{SpanOf: n.Span(), Fn: fn, Arg: arg}, nil
	case *ast.Illegal:
		return nil, TranslateError{Span: n.Span(), Msg: n.Msg}
	default:
		return nil, TranslateError{Span: n.Span(), Msg: fmt.Sprintf("unexpected %T in term position", n)}
	}
}

// DesugarLam wraps body in one lambda scope per parameter name,
// innermost last. It is shared with the driver, which desugars
// definition parameter lists the same way.
func DesugarLam(span lexer.Span, groups []*ast.ParamGroup, body Term) (Term, error) {
	params, err := flattenGroups(groups)
	if err != nil {
		return nil, err
	}
	for i := len(params) - 1; i >= 0; i-- {
		body = &Lam{SpanOf: span, Scope: BindScope(params[i], body)}
	}
	return body, nil
}

func desugarPi(span lexer.Span, group *ast.ParamGroup, body Term) (Term, error) {
	params, err := flattenGroups([]*ast.ParamGroup{group})
	if err != nil {
		return nil, err
	}
	for i := len(params) - 1; i >= 0; i-- {
		body = &Pi{SpanOf: span, Scope: BindScope(params[i], body)}
	}
	return body, nil
}

// flattenGroups expands `(x y : t) z` into one parameter per name.
// Names in a group share the translated annotation term.
func flattenGroups(groups []*ast.ParamGroup) ([]bind.Named[Type], error) {
	var params []bind.Named[Type]
	for _, g := range groups {
		var ann Type
		if g.Type != nil {
			var err error
			if ann, err = FromConcrete(g.Type); err != nil {
				return nil, err
			}
		}
		params = append(params, lo.Map(g.Names, func(tok lexer.Token, _ int) bind.Named[Type] {
			return bind.Named[Type]{Name: binderName(tok), Val: ann}
		})...)
	}
	return params, nil
}

func binderName(tok lexer.Token) bind.Name {
	if tok.Data == "_" {
		return bind.Abstract{}
	}
	return bind.User(tok.Data)
}
