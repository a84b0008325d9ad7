// Package parser turns token streams into concrete syntax trees. It
// accumulates parse errors and recovers with ast.Illegal nodes rather
// than stopping at the first problem.
package parser

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/silky/pikelet/ast"
	"github.com/silky/pikelet/lexer"
)

const debug = false

// ParseError describes a single syntax error with the span of the
// offending source.
type ParseError struct {
	Span lexer.Span
	Msg  string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Msg)
}

type parser struct {
	l      *lexer.Lexer
	tok    lexer.Token
	buf    []lexer.Token // rework this when you need to start backtracking.
	errors []ParseError
	indent int
}

func (p *parser) trace(msg string) func() {
	if debug {
		fmt.Printf("%*s%s\n", p.indent*2, "", msg)
		p.indent++
		return func() {
			p.indent--
		}
	}
	return func() {}
}

func (p *parser) next() {
	if len(p.buf) > 0 {
		p.tok = p.buf[0]
		p.buf = p.buf[1:]
		return
	}
	p.tok = p.l.Next()
}

func (p *parser) peek() lexer.Token {
	if len(p.buf) == 0 {
		p.buf = append(p.buf, p.l.Next())
	}
	return p.buf[0]
}

func (p *parser) errorf(span lexer.Span, format string, args ...any) {
	p.errors = append(p.errors, ParseError{Span: span, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) illegal(span lexer.Span, format string, args ...any) *ast.Illegal {
	p.errorf(span, format, args...)
	return &ast.Illegal{SpanOf: span, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(ttyp lexer.TokenType) lexer.Token {
	tok := p.tok
	if tok.Type != ttyp {
		p.errorf(tok.Span, "expected %q, found %q", ttyp, tok.Type)
		return lexer.Token{Type: ttyp, Span: tok.Span}
	}
	p.next()
	return tok
}

// ParseTerm parses a single term from src, as entered at the REPL.
func ParseTerm(src string) (ast.Node, []ParseError) {
	p := &parser{l: lexer.NewStringLexer(src)}
	p.next()
	term := p.parseTerm()
	if p.tok.Type != lexer.EOF {
		p.errorf(p.tok.Span, "unexpected %q after term", p.tok.Type)
	}
	return term, p.errors
}

// ParseModule parses one `.pi` file.
func ParseModule(fsys fs.FS, filename string) (*ast.Module, []ParseError, error) {
	l, err := lexer.NewLexer(fsys, filename)
	if err != nil {
		return nil, nil, err
	}
	p := &parser{l: l}
	p.next()
	m := p.parseModule()
	return m, p.errors, nil
}

// Term grammar, loosest binding first:
//
//	term  = expr (":" term)?          annotation, right assoc
//	expr  = "\" params "=>" term      lambda
//	      | arrow
//	arrow = app ("->" arrow)?         right assoc; Pi via reparse
//	app   = atom atom*                left assoc
//	atom  = "Type" Number? | Ident | "(" term ")"
func (p *parser) parseTerm() ast.Node {
	defer p.trace("parseTerm")()
	x := p.parseExpr()
	if p.tok.Type == lexer.Colon {
		p.next()
		ty := p.parseTerm()
		return &ast.Ann{X: x, Type: ty}
	}
	return x
}

func (p *parser) parseExpr() ast.Node {
	defer p.trace("parseExpr")()
	if p.tok.Type == lexer.Backslash {
		return p.parseLam()
	}
	return p.parseArrow()
}

func (p *parser) parseArrow() ast.Node {
	defer p.trace("parseArrow")()
	binder := p.parseApp()
	if p.tok.Type != lexer.RightArrow {
		return binder
	}
	p.next()
	body := p.parseExpr()
	return p.reparsePi(binder, body)
}

// reparsePi resolves the ambiguity between `(x : t1) -> t2` and
// `t1 -> t2`. A parenthesized annotation whose left side is a spine of
// variables becomes a Pi binder; anything else is a plain arrow.
func (p *parser) reparsePi(binder, body ast.Node) ast.Node {
	parens, ok := binder.(*ast.Parens)
	if !ok {
		return &ast.Arrow{Domain: binder, Codomain: body}
	}
	ann, ok := parens.X.(*ast.Ann)
	if !ok {
		return &ast.Arrow{Domain: binder, Codomain: body}
	}
	names, ok := paramNames(ann.X, nil)
	if !ok {
		p.errorf(ann.X.Span(), "identifiers expected in pi type binder")
		return p.illegalNode(parens.Span())
	}
	return &ast.Pi{
		Start: parens.LParen,
		Param: &ast.ParamGroup{Names: names, Type: ann.Type},
		Body:  body,
	}
}

func (p *parser) illegalNode(span lexer.Span) ast.Node {
	return &ast.Illegal{SpanOf: span, Msg: "invalid pi type binder"}
}

func paramNames(n ast.Node, names []lexer.Token) ([]lexer.Token, bool) {
	switch n := n.(type) {
	case *ast.Var:
		return append(names, n.Name), true
	case *ast.App:
		names, ok := paramNames(n.Fn, names)
		if !ok {
			return nil, false
		}
		return paramNames(n.Arg, names)
	}
	return nil, false
}

func (p *parser) parseLam() ast.Node {
	defer p.trace("parseLam")()
	backslash := p.expect(lexer.Backslash)
	params := p.parseParams(lexer.FatArrow)
	p.expect(lexer.FatArrow)
	body := p.parseTerm()
	return &ast.Lam{Backslash: backslash, Params: params, Body: body}
}

// parseParams parses a parameter list: bare names, or parenthesized
// groups `(x y : t)`, until the given terminator.
func (p *parser) parseParams(until lexer.TokenType) []*ast.ParamGroup {
	defer p.trace("parseParams")()
	var params []*ast.ParamGroup
	for p.tok.Type != until && p.tok.Type != lexer.EOF {
		switch p.tok.Type {
		case lexer.Ident:
			name := p.tok
			p.next()
			// a bare annotated parameter, `\x : t => e`, is only valid
			// as the sole parameter
			if p.tok.Type == lexer.Colon && len(params) == 0 {
				p.next()
				ty := p.parseTerm()
				return append(params, &ast.ParamGroup{Names: []lexer.Token{name}, Type: ty})
			}
			params = append(params, &ast.ParamGroup{Names: []lexer.Token{name}})
		case lexer.LeftParen:
			p.next()
			var names []lexer.Token
			for p.tok.Type == lexer.Ident {
				names = append(names, p.tok)
				p.next()
			}
			if len(names) == 0 {
				p.errorf(p.tok.Span, "expected parameter name, found %q", p.tok.Type)
			}
			p.expect(lexer.Colon)
			ty := p.parseTerm()
			p.expect(lexer.RightParen)
			params = append(params, &ast.ParamGroup{Names: names, Type: ty})
		default:
			p.errorf(p.tok.Span, "expected parameter, found %q", p.tok.Type)
			p.next()
			return params
		}
	}
	if len(params) == 0 {
		p.errorf(p.tok.Span, "expected at least one parameter")
	}
	return params
}

func (p *parser) parseApp() ast.Node {
	defer p.trace("parseApp")()
	x := p.parseAtom()
	for p.tok.BeginsTerm() {
		// a lambda argument must be parenthesized
		if p.tok.Type == lexer.Backslash {
			break
		}
		arg := p.parseAtom()
		x = &ast.App{Fn: x, Arg: arg}
	}
	return x
}

func (p *parser) parseAtom() ast.Node {
	defer p.trace("parseAtom")()
	switch p.tok.Type {
	case lexer.Universe:
		universe := p.tok
		p.next()
		if p.tok.Type == lexer.Number {
			level := p.tok
			p.next()
			u := &ast.UniverseTerm{Universe: universe, Level: &level}
			if _, err := u.LevelValue(); err != nil {
				return p.illegal(level.Span, "integer literal %q overflows a universe level", level.Data)
			}
			return u
		}
		return &ast.UniverseTerm{Universe: universe}
	case lexer.Ident:
		v := &ast.Var{Name: p.tok}
		p.next()
		return v
	case lexer.LeftParen:
		lparen := p.tok
		p.next()
		x := p.parseTerm()
		rparen := p.expect(lexer.RightParen)
		return &ast.Parens{LParen: lparen, X: x, RParen: rparen}
	default:
		tok := p.tok
		p.next()
		return p.illegal(tok.Span, "expected a term, found %q", tok.Type)
	}
}

// ParseReplCommand interprets one line entered at the REPL. Commands
// start with a colon; anything else is a term to evaluate.
func ParseReplCommand(line string) (ast.ReplCommand, []ParseError) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return &ReplNoOp, nil
	}
	if strings.HasPrefix(trimmed, ":") {
		cmd, rest, _ := strings.Cut(trimmed, " ")
		switch cmd {
		case ":?", ":h", ":help":
			return &ReplHelp, nil
		case ":q", ":quit":
			return &ReplQuit, nil
		case ":t", ":type":
			term, errs := ParseTerm(rest)
			if len(errs) > 0 {
				return &ast.ReplError{SpanOf: term.Span()}, errs
			}
			return &ast.ReplTypeOf{Term: term}, nil
		default:
			err := ParseError{Msg: fmt.Sprintf("unknown REPL command %q", cmd)}
			return &ast.ReplError{}, []ParseError{err}
		}
	}
	term, errs := ParseTerm(trimmed)
	if len(errs) > 0 {
		return &ast.ReplError{SpanOf: term.Span()}, errs
	}
	return &ast.ReplEval{Term: term}, nil
}

var (
	// the stateless commands are shared
	ReplNoOp ast.ReplNoOp
	ReplHelp ast.ReplHelp
	ReplQuit ast.ReplQuit
)
