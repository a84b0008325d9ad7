package ast

import (
	"fmt"
	"strings"

	"github.com/silky/pikelet/lexer"
)

// Module is a parsed `.pi` file: a `module name;` header followed by
// declarations.
type Module struct {
	ModuleTok    lexer.Token
	Name         lexer.Token
	Declarations []Node
}

func (m *Module) Span() lexer.Span {
	span := m.ModuleTok.Span.Add(m.Name.Span)
	if len(m.Declarations) > 0 {
		span = span.Add(spanOf(m.Declarations[len(m.Declarations)-1]))
	}
	return span
}

func (m *Module) ASTString(depth int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Module %q", m.Name.Data)
	for _, d := range m.Declarations {
		fmt.Fprintf(&sb, "\n%s%s", indent(depth+1), d.ASTString(depth+1))
	}
	return sb.String()
}

// Exposing lists the definitions imported from a module: either
// everything, `(..)`, or an exact set, `(foo, bar)`.
type Exposing struct {
	LParen lexer.Token
	All    bool
	Names  []lexer.Token
	RParen lexer.Token
}

func (e *Exposing) Span() lexer.Span {
	return e.LParen.Span.Add(e.RParen.Span)
}

func (e *Exposing) ASTString(depth int) string {
	if e.All {
		return "Exposing (..)"
	}
	names := make([]string, len(e.Names))
	for i, n := range e.Names {
		names[i] = n.Data
	}
	return fmt.Sprintf("Exposing (%s)", strings.Join(names, ", "))
}

// Import brings another module's declarations into scope:
//
//	import foo;
//	import foo as my-foo;
//	import foo as my-foo (..);
type Import struct {
	ImportTok lexer.Token
	Name      lexer.Token
	Rename    *lexer.Token
	Exposing  *Exposing
	End       lexer.Span
}

func (i *Import) Span() lexer.Span {
	return i.ImportTok.Span.Add(i.End)
}

func (i *Import) ASTString(depth int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Import %q", i.Name.Data)
	if i.Rename != nil {
		fmt.Fprintf(&sb, " as %q", i.Rename.Data)
	}
	if i.Exposing != nil {
		fmt.Fprintf(&sb, " %s", i.Exposing.ASTString(depth))
	}
	return sb.String()
}

// Claim states that a definition abides by a type, `foo : some-type`.
type Claim struct {
	Name lexer.Token
	Ann  Node
}

func (c *Claim) Span() lexer.Span {
	return c.Name.Span.Add(spanOf(c.Ann))
}

func (c *Claim) ASTString(depth int) string {
	return fmt.Sprintf("Claim %q\n%sAnn: %s", c.Name.Data,
		indent(depth+1), c.Ann.ASTString(depth+1))
}

// Definition gives the body of a term, `foo x (y : t) = some-body`.
type Definition struct {
	Name   lexer.Token
	Params []*ParamGroup
	Body   Node
}

func (d *Definition) Span() lexer.Span {
	return d.Name.Span.Add(spanOf(d.Body))
}

func (d *Definition) ASTString(depth int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Definition %q", d.Name.Data)
	for _, g := range d.Params {
		fmt.Fprintf(&sb, "\n%sParam: %s", indent(depth+1), g.ASTString(depth+1))
	}
	fmt.Fprintf(&sb, "\n%sBody: %s", indent(depth+1), d.Body.ASTString(depth+1))
	return sb.String()
}
