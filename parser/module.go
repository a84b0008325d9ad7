package parser

import (
	"github.com/silky/pikelet/ast"
	"github.com/silky/pikelet/lexer"
)

func (p *parser) parseModule() *ast.Module {
	defer p.trace("parseModule")()
	var m ast.Module
	m.ModuleTok = p.expect(lexer.Module)
	m.Name = p.expect(lexer.Ident)
	p.expect(lexer.Semicolon)
	for p.tok.Type != lexer.EOF {
		decl := p.parseDeclaration()
		m.Declarations = append(m.Declarations, decl)
	}
	return &m
}

// parseDeclaration parses one of:
//
//	import foo;
//	import foo as bar (..);
//	foo : some-type;
//	foo x (y : t) = some-body;
//
// On error it skips to the next semicolon so that later declarations
// still parse.
func (p *parser) parseDeclaration() ast.Node {
	defer p.trace("parseDeclaration")()
	before := len(p.errors)
	var decl ast.Node
	switch p.tok.Type {
	case lexer.Import:
		decl = p.parseImport()
	case lexer.Ident:
		name := p.tok
		p.next()
		switch p.tok.Type {
		case lexer.Colon:
			p.next()
			ann := p.parseTerm()
			decl = &ast.Claim{Name: name, Ann: ann}
		case lexer.Ident, lexer.LeftParen, lexer.Equals:
			var params []*ast.ParamGroup
			if p.tok.Type != lexer.Equals {
				params = p.parseParams(lexer.Equals)
			}
			p.expect(lexer.Equals)
			body := p.parseTerm()
			decl = &ast.Definition{Name: name, Params: params, Body: body}
		default:
			decl = p.illegal(p.tok.Span, "expected %q or %q after declaration name, found %q",
				lexer.Colon, lexer.Equals, p.tok.Type)
		}
	default:
		decl = p.illegal(p.tok.Span, "expected a declaration, found %q", p.tok.Type)
	}
	if len(p.errors) > before {
		p.recoverToSemicolon()
		return &ast.Illegal{SpanOf: decl.Span(), Msg: p.errors[before].Msg}
	}
	p.expect(lexer.Semicolon)
	return decl
}

func (p *parser) parseImport() ast.Node {
	defer p.trace("parseImport")()
	var imp ast.Import
	imp.ImportTok = p.expect(lexer.Import)
	imp.Name = p.expect(lexer.Ident)
	imp.End = imp.Name.Span
	if p.tok.Type == lexer.As {
		p.next()
		rename := p.expect(lexer.Ident)
		imp.Rename = &rename
		imp.End = rename.Span
	}
	if p.tok.Type == lexer.LeftParen {
		exp := p.parseExposing()
		imp.Exposing = exp
		imp.End = exp.RParen.Span
	}
	return &imp
}

func (p *parser) parseExposing() *ast.Exposing {
	defer p.trace("parseExposing")()
	var exp ast.Exposing
	exp.LParen = p.expect(lexer.LeftParen)
	if p.tok.Type == lexer.DotDot {
		exp.All = true
		p.next()
	} else {
		for p.tok.Type == lexer.Ident {
			exp.Names = append(exp.Names, p.tok)
			p.next()
			if p.tok.Type != lexer.Comma {
				break
			}
			p.next()
		}
		if len(exp.Names) == 0 {
			p.errorf(p.tok.Span, "expected %q or import names, found %q", lexer.DotDot, p.tok.Type)
		}
	}
	exp.RParen = p.expect(lexer.RightParen)
	return &exp
}

func (p *parser) recoverToSemicolon() {
	for p.tok.Type != lexer.Semicolon && p.tok.Type != lexer.EOF {
		p.next()
	}
	if p.tok.Type == lexer.Semicolon {
		p.next()
	}
}
