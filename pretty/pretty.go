// Package pretty renders core terms back to concrete syntax for
// display in REPL output and diagnostics.
package pretty

import (
	"fmt"
	"strings"

	"github.com/silky/pikelet/bind"
	"github.com/silky/pikelet/core"
)

type Options struct {
	// DebugIndices renders bound variables with their de Bruijn
	// indices, `x#1`, instead of their display names.
	DebugIndices bool
}

// Binding strength, loosest first. A subterm is parenthesized when its
// own level is below the level its position requires.
const (
	precAnn = iota
	precArrow
	precApp
	precAtom
)

// Term renders a term with default options.
func Term(t core.Term) string {
	return New(Options{}).Term(t)
}

// AnnTerm renders `value : type`, the REPL's eval output shape.
func AnnTerm(value core.Term, ty core.Type) string {
	p := New(Options{})
	return fmt.Sprintf("%s : %s", p.render(value, precArrow), p.render(ty, precArrow))
}

type Printer struct {
	opts Options
}

func New(opts Options) *Printer {
	return &Printer{opts: opts}
}

func (p *Printer) Term(t core.Term) string {
	return p.render(t, precAnn)
}

func (p *Printer) render(t core.Term, prec int) string {
	switch t := t.(type) {
	case *core.Universe:
		if t.Level == 0 {
			return "Type"
		}
		return fmt.Sprintf("Type %d", t.Level)
	case *core.Var:
		return p.renderVar(t.Ref)
	case *core.Lam:
		// a lambda extends as far right as possible, so anywhere but
		// the outermost position it needs parentheses
		return p.parens(prec > precAnn, p.renderLam(t))
	case *core.Pi:
		return p.parens(prec > precArrow, p.renderPi(t))
	case *core.App:
		s := fmt.Sprintf("%s %s", p.render(t.Fn, precApp), p.render(t.Arg, precAtom))
		return p.parens(prec > precApp, s)
	case *core.Ann:
		s := fmt.Sprintf("%s : %s", p.render(t.Expr, precArrow), p.render(t.Type, precArrow))
		return p.parens(prec > precAnn, s)
	default:
		panic("unreachable")
	}
}

func (p *Printer) renderVar(v bind.Var) string {
	if bound, ok := v.(bind.Bound); ok && p.opts.DebugIndices {
		return bound.DebugString()
	}
	return v.String()
}

func (p *Printer) renderLam(l *core.Lam) string {
	var sb strings.Builder
	sb.WriteString("\\")
	scope := l.Scope
	for {
		if scope.Param.Val != nil {
			fmt.Fprintf(&sb, "(%s : %s)", scope.Param.Name, p.render(scope.Param.Val, precAnn))
		} else {
			sb.WriteString(scope.Param.Name.String())
		}
		inner, ok := scope.Body.(*core.Lam)
		if !ok {
			break
		}
		sb.WriteString(" ")
		scope = inner.Scope
	}
	fmt.Fprintf(&sb, " => %s", p.render(scope.Body, precAnn))
	return sb.String()
}

func (p *Printer) renderPi(pi *core.Pi) string {
	scope := pi.Scope
	if _, abstract := scope.Param.Name.(bind.Abstract); abstract {
		// non-dependent: render as an arrow
		return fmt.Sprintf("%s -> %s", p.render(scope.Param.Val, precApp), p.render(scope.Body, precArrow))
	}
	return fmt.Sprintf("(%s : %s) -> %s",
		scope.Param.Name, p.render(scope.Param.Val, precAnn), p.render(scope.Body, precArrow))
}

func (p *Printer) parens(needed bool, s string) string {
	if needed {
		return "(" + s + ")"
	}
	return s
}
