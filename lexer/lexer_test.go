package lexer_test

import (
	"testing"
	"testing/fstest"

	"github.com/kr/pretty"
	. "github.com/silky/pikelet/lexer"
)

func lex(t *testing.T, src string) []Token {
	t.Helper()
	l, err := NewLexer(fstest.MapFS{
		"test.pi": &fstest.MapFile{Data: []byte(src)},
	}, "test.pi")
	if err != nil {
		t.Fatal(err)
	}
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func checkTokens(t *testing.T, src string, want []Token) {
	t.Helper()
	got := lex(t, src)
	if len(got) != len(want) {
		t.Fatalf("lexed %d tokens, want %d:\n%# v", len(got), len(want), pretty.Formatter(got))
	}
	for i := range want {
		if !got[i].Eq(want[i]) {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexTerm(t *testing.T) {
	checkTokens(t, `\x => x y`, []Token{
		{Type: Backslash},
		{Type: Ident, Data: "x"},
		{Type: FatArrow},
		{Type: Ident, Data: "x"},
		{Type: Ident, Data: "y"},
		{Type: EOF},
	})
}

func TestLexPi(t *testing.T) {
	checkTokens(t, `(x : Type) -> x`, []Token{
		{Type: LeftParen},
		{Type: Ident, Data: "x"},
		{Type: Colon},
		{Type: Universe},
		{Type: RightParen},
		{Type: RightArrow},
		{Type: Ident, Data: "x"},
		{Type: EOF},
	})
}

func TestLexUniverseLevel(t *testing.T) {
	checkTokens(t, `Type 1`, []Token{
		{Type: Universe},
		{Type: Number, Data: "1"},
		{Type: EOF},
	})
}

func TestLexDeclarations(t *testing.T) {
	checkTokens(t, "module prelude;\n\nimport base as b (..);\nid : (a : Type) -> a -> a", []Token{
		{Type: Module},
		{Type: Ident, Data: "prelude"},
		{Type: Semicolon},
		{Type: Import},
		{Type: Ident, Data: "base"},
		{Type: As},
		{Type: Ident, Data: "b"},
		{Type: LeftParen},
		{Type: DotDot},
		{Type: RightParen},
		{Type: Semicolon},
		{Type: Ident, Data: "id"},
		{Type: Colon},
		{Type: LeftParen},
		{Type: Ident, Data: "a"},
		{Type: Colon},
		{Type: Universe},
		{Type: RightParen},
		{Type: RightArrow},
		{Type: Ident, Data: "a"},
		{Type: RightArrow},
		{Type: Ident, Data: "a"},
		{Type: EOF},
	})
}

func TestLexComment(t *testing.T) {
	checkTokens(t, "x -- the variable\ny", []Token{
		{Type: Ident, Data: "x"},
		{Type: Ident, Data: "y"},
		{Type: EOF},
	})
}

func TestLexSpans(t *testing.T) {
	toks := lex(t, "ab ->\n  cd")
	want := []Span{
		{Pos{0, 1, 1}, Pos{1, 1, 2}},
		{Pos{3, 1, 4}, Pos{4, 1, 5}},
		{Pos{8, 2, 3}, Pos{9, 2, 4}},
	}
	for i, span := range want {
		if toks[i].Span != span {
			t.Errorf("token %d (%v): got span %#v, want %#v", i, toks[i], toks[i].Span, span)
		}
	}
}

func TestLexIllegal(t *testing.T) {
	toks := lex(t, "x @ y")
	if toks[1].Type != Illegal {
		t.Fatalf("got %v, want Illegal", toks[1])
	}
}
