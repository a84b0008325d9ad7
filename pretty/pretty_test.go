package pretty_test

import (
	"testing"

	"github.com/silky/pikelet/core"
	"github.com/silky/pikelet/parser"
	. "github.com/silky/pikelet/pretty"
)

func translate(t *testing.T, src string) core.Term {
	t.Helper()
	node, errs := parser.ParseTerm(src)
	if len(errs) > 0 {
		t.Fatalf("parse %q: %v", src, errs)
	}
	term, err := core.FromConcrete(node)
	if err != nil {
		t.Fatalf("translate %q: %v", src, err)
	}
	return term
}

func TestRender(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`Type`, `Type`},
		{`Type 2`, `Type 2`},
		{`Type -> Type`, `Type -> Type`},
		{`(Type -> Type) -> Type`, `(Type -> Type) -> Type`},
		{`Type -> Type -> Type`, `Type -> Type -> Type`},
		{`(a : Type) -> a -> a`, `(a : Type) -> a -> a`},
		{`\x => x`, `\x => x`},
		{`\(x : Type) => x`, `\(x : Type) => x`},
		{`\x y => x`, `\x y => x`},
		{`\x (y : Type) => x`, `\x (y : Type) => x`},
		{`f g x`, `f g x`},
		{`f (g x)`, `f (g x)`},
		{`f (\x => x)`, `f (\x => x)`},
		{`(f : Type -> Type) x`, `(f : Type -> Type) x`},
		{`x : Type`, `x : Type`},
		{`(\x => x) : Type -> Type`, `(\x => x) : Type -> Type`},
	}
	for _, tt := range tests {
		if got := Term(translate(t, tt.src)); got != tt.want {
			t.Errorf("render %q: got %q, want %q", tt.src, got, tt.want)
		}
	}
}

// Rendering and reparsing a term must reproduce it up to alpha
// equivalence.
func TestRenderRoundTrip(t *testing.T) {
	srcs := []string{
		`(a : Type) -> (b : Type) -> a -> b`,
		`\(f : Type -> Type) (a : Type) => f a`,
		`((\x => x) : Type 1 -> Type 1) Type`,
	}
	for _, src := range srcs {
		orig := translate(t, src)
		again := translate(t, Term(orig))
		if !core.AlphaEq(orig, again) {
			t.Errorf("round trip %q: rendered as %q, reparsed differently", src, Term(orig))
		}
	}
}

func TestAnnTerm(t *testing.T) {
	got := AnnTerm(translate(t, `Type`), translate(t, `Type 1`))
	if want := `Type : Type 1`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = AnnTerm(translate(t, `\x => x`), translate(t, `Type 1 -> Type 1`))
	if want := `(\x => x) : Type 1 -> Type 1`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDebugIndices(t *testing.T) {
	p := New(Options{DebugIndices: true})
	got := p.Term(translate(t, `\x => \y => x`))
	if want := `\x y => x#1`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
