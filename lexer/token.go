package lexer

import (
	"fmt"
)

type TokenType int

const (
	EOF TokenType = iota

	Backslash
	Colon
	Comma
	Semicolon
	Equals
	LeftParen
	RightParen

	RightArrow
	FatArrow
	DotDot

	Module
	Import
	As
	Universe

	Ident
	Number
	Whitespace
	LineComment
	Illegal
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case Backslash:
		return `\`
	case Colon:
		return ":"
	case Comma:
		return ","
	case Semicolon:
		return ";"
	case Equals:
		return "="
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case RightArrow:
		return "->"
	case FatArrow:
		return "=>"
	case DotDot:
		return ".."
	case Module:
		return "module"
	case Import:
		return "import"
	case As:
		return "as"
	case Universe:
		return "Type"
	case Ident:
		return "Ident"
	case Number:
		return "Number"
	case Whitespace:
		return "Whitespace"
	case LineComment:
		return "LineComment"
	case Illegal:
		return "Illegal"
	default:
		panic("unreachable")
	}
}

var SingleCharTokens = map[rune]TokenType{
	'\\': Backslash,
	':':  Colon,
	',':  Comma,
	';':  Semicolon,
	'=':  Equals,
	'(':  LeftParen,
	')':  RightParen,
}

var DoubleCharTokens = map[[2]rune]TokenType{
	{'-', '>'}: RightArrow,
	{'=', '>'}: FatArrow,
	{'.', '.'}: DotDot,
}

var Keywords = map[string]TokenType{
	"module": Module,
	"import": Import,
	"as":     As,
	"Type":   Universe,
}

type Pos struct {
	Offset int
	Line   int
	Column int
}

func (p Pos) Min(other Pos) Pos {
	if p.Column == 0 {
		return other
	}
	if other.Column == 0 {
		return p
	}
	if p.Offset < other.Offset {
		return p
	}
	return other
}

func (p Pos) Max(other Pos) Pos {
	if p.Column == 0 {
		return other
	}
	if other.Column == 0 {
		return p
	}
	if p.Offset > other.Offset {
		return p
	}
	return other
}

type Span struct {
	Start Pos
	End   Pos
}

func (span Span) Add(other Span) Span {
	return Span{span.Start.Min(other.Start), span.End.Max(other.End)}
}

func (s Span) String() string {
	if s.Start == s.End {
		return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Column)
	}
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%d:%d-%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

type Token struct {
	Type TokenType
	Span Span
	Data string
}

func (t Token) String() string {
	if t.Data == "" {
		return fmt.Sprintf("%s:%s", t.Span, t.Type)
	}
	return fmt.Sprintf("%s:%s %q", t.Span, t.Type, t.Data)
}

func (a Token) Eq(b Token) bool {
	return a.Type == b.Type && a.Data == b.Data
}

func (a Token) ExactEq(b Token) bool {
	return a.Type == b.Type && a.Span == b.Span && a.Data == b.Data
}

// BeginsTerm reports whether a term can start with this token. The
// parser uses it to decide whether an application spine continues.
func (t Token) BeginsTerm() bool {
	switch t.Type {
	case Backslash, LeftParen, Ident, Number, Universe:
		return true
	}
	return false
}
