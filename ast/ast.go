// Package ast defines the concrete syntax tree produced by the parser.
// Every node carries the span of source it originated from, so that
// later stages can anchor diagnostics.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/silky/pikelet/lexer"
)

type Node interface {
	Span() lexer.Span
	ASTString(depth int) string
}

var (
	_ Node = (*Parens)(nil)
	_ Node = (*Ann)(nil)
	_ Node = (*UniverseTerm)(nil)
	_ Node = (*Var)(nil)
	_ Node = (*Lam)(nil)
	_ Node = (*Pi)(nil)
	_ Node = (*Arrow)(nil)
	_ Node = (*App)(nil)
	_ Node = (*Illegal)(nil)
	_ Node = (*Module)(nil)
	_ Node = (*Import)(nil)
	_ Node = (*Claim)(nil)
	_ Node = (*Definition)(nil)
)

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

func spanOf(n Node) lexer.Span {
	if n == nil {
		return lexer.Span{}
	}
	return n.Span()
}

// Parens is a term surrounded by parentheses. It is kept in the tree
// because the pi-type reparse needs to distinguish `(x : t) -> b`
// from `x : t -> b`.
type Parens struct {
	LParen lexer.Token
	X      Node
	RParen lexer.Token
}

func (p *Parens) Span() lexer.Span {
	return p.LParen.Span.Add(p.RParen.Span)
}

func (p *Parens) ASTString(depth int) string {
	return fmt.Sprintf("Parens\n%sX: %s", indent(depth+1), p.X.ASTString(depth+1))
}

// Ann is a term annotated with a type, `e : t`.
type Ann struct {
	X    Node
	Type Node
}

func (a *Ann) Span() lexer.Span {
	return spanOf(a.X).Add(spanOf(a.Type))
}

func (a *Ann) ASTString(depth int) string {
	return fmt.Sprintf("Ann\n%sX: %s\n%sType: %s",
		indent(depth+1), a.X.ASTString(depth+1),
		indent(depth+1), a.Type.ASTString(depth+1))
}

// UniverseTerm is the type of types, `Type` or `Type 1`.
type UniverseTerm struct {
	Universe lexer.Token
	Level    *lexer.Token // nil for `Type`, which is `Type 0`
}

func (u *UniverseTerm) Span() lexer.Span {
	if u.Level != nil {
		return u.Universe.Span.Add(u.Level.Span)
	}
	return u.Universe.Span
}

// LevelValue returns the universe level, 0 when unannotated. It fails
// when the literal does not fit a level.
func (u *UniverseTerm) LevelValue() (uint32, error) {
	if u.Level == nil {
		return 0, nil
	}
	n, err := strconv.ParseUint(u.Level.Data, 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.Conv[uint32](n)
}

func (u *UniverseTerm) ASTString(depth int) string {
	if u.Level != nil {
		return fmt.Sprintf("Universe %s", u.Level.Data)
	}
	return "Universe"
}

type Var struct {
	Name lexer.Token
}

func (v *Var) Span() lexer.Span {
	return v.Name.Span
}

func (v *Var) ASTString(depth int) string {
	return fmt.Sprintf("Var %q", v.Name.Data)
}

// ParamGroup is a parameter list entry: one or more names sharing an
// optional annotation, e.g. the `x y : t` in `\(x y : t) z => e`.
type ParamGroup struct {
	Names []lexer.Token
	Type  Node // nil when unannotated
}

func (g *ParamGroup) Span() lexer.Span {
	span := g.Names[0].Span
	if len(g.Names) > 1 {
		span = span.Add(g.Names[len(g.Names)-1].Span)
	}
	if g.Type != nil {
		span = span.Add(spanOf(g.Type))
	}
	return span
}

func (g *ParamGroup) ASTString(depth int) string {
	var sb strings.Builder
	sb.WriteString("ParamGroup")
	for _, name := range g.Names {
		fmt.Fprintf(&sb, " %q", name.Data)
	}
	if g.Type != nil {
		fmt.Fprintf(&sb, "\n%sType: %s", indent(depth+1), g.Type.ASTString(depth+1))
	}
	return sb.String()
}

// Lam is a lambda abstraction, `\x (y : t) => e`.
type Lam struct {
	Backslash lexer.Token
	Params    []*ParamGroup
	Body      Node
}

func (l *Lam) Span() lexer.Span {
	return l.Backslash.Span.Add(spanOf(l.Body))
}

func (l *Lam) ASTString(depth int) string {
	var sb strings.Builder
	sb.WriteString("Lam")
	for _, g := range l.Params {
		fmt.Fprintf(&sb, "\n%sParam: %s", indent(depth+1), g.ASTString(depth+1))
	}
	fmt.Fprintf(&sb, "\n%sBody: %s", indent(depth+1), l.Body.ASTString(depth+1))
	return sb.String()
}

// Pi is a dependent function type, `(x y : t1) -> t2`.
type Pi struct {
	Start lexer.Token // the opening paren of the binder
	Param *ParamGroup // annotation always present
	Body  Node
}

func (p *Pi) Span() lexer.Span {
	return p.Start.Span.Add(spanOf(p.Body))
}

func (p *Pi) ASTString(depth int) string {
	return fmt.Sprintf("Pi\n%sParam: %s\n%sBody: %s",
		indent(depth+1), p.Param.ASTString(depth+1),
		indent(depth+1), p.Body.ASTString(depth+1))
}

// Arrow is a non-dependent function type, `t1 -> t2`.
type Arrow struct {
	Domain   Node
	Codomain Node
}

func (a *Arrow) Span() lexer.Span {
	return spanOf(a.Domain).Add(spanOf(a.Codomain))
}

func (a *Arrow) ASTString(depth int) string {
	return fmt.Sprintf("Arrow\n%sDomain: %s\n%sCodomain: %s",
		indent(depth+1), a.Domain.ASTString(depth+1),
		indent(depth+1), a.Codomain.ASTString(depth+1))
}

// App is a binary application. Multi-argument application is
// left-nested by the parser.
type App struct {
	Fn  Node
	Arg Node
}

func (a *App) Span() lexer.Span {
	return spanOf(a.Fn).Add(spanOf(a.Arg))
}

func (a *App) ASTString(depth int) string {
	return fmt.Sprintf("App\n%sFn: %s\n%sArg: %s",
		indent(depth+1), a.Fn.ASTString(depth+1),
		indent(depth+1), a.Arg.ASTString(depth+1))
}

// Illegal is a placeholder for source that could not be parsed. The
// parser records the error separately and continues.
type Illegal struct {
	SpanOf lexer.Span
	Msg    string
}

func (i *Illegal) Span() lexer.Span {
	return i.SpanOf
}

func (i *Illegal) ASTString(depth int) string {
	return fmt.Sprintf("Illegal %q", i.Msg)
}

func PrintAST(n Node) {
	fmt.Println(n.ASTString(0))
}
