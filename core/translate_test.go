package core_test

import (
	"testing"

	"github.com/silky/pikelet/bind"
	. "github.com/silky/pikelet/core"
	"github.com/silky/pikelet/parser"
)

func translate(t *testing.T, src string) Term {
	t.Helper()
	node, errs := parser.ParseTerm(src)
	if len(errs) > 0 {
		t.Fatalf("parse %q: %v", src, errs)
	}
	term, err := FromConcrete(node)
	if err != nil {
		t.Fatalf("translate %q: %v", src, err)
	}
	return term
}

func TestTranslateMultiParamLam(t *testing.T) {
	got := translate(t, `\x y => x`)
	want := lam("x", nil, lam("y", nil, free("x")))
	if !AlphaEq(got, want) {
		t.Errorf("got %#v, want nested single-parameter lambdas", got)
	}
}

func TestTranslateSharedGroupAnnotation(t *testing.T) {
	got := translate(t, `\(x y : Type) => y`)
	want := lam("x", universe(0), lam("y", universe(0), free("y")))
	if !AlphaEq(got, want) {
		t.Errorf("got %#v, want both parameters annotated with Type", got)
	}
}

func TestTranslateArrowIsAbstractPi(t *testing.T) {
	got := translate(t, `a -> b`)
	p, ok := got.(*Pi)
	if !ok {
		t.Fatalf("got %T, want *Pi", got)
	}
	if _, ok := p.Scope.Param.Name.(bind.Abstract); !ok {
		t.Errorf("parameter name: got %T, want bind.Abstract", p.Scope.Param.Name)
	}
	// b mentions no binder, so it must stay free
	if !AlphaEq(p.Scope.Body, free("b")) {
		t.Errorf("codomain: got %#v, want free b", p.Scope.Body)
	}
}

func TestTranslateDependentPi(t *testing.T) {
	got := translate(t, `(a : Type) -> a -> a`)
	outer, ok := got.(*Pi)
	if !ok {
		t.Fatalf("got %T, want *Pi", got)
	}
	inner := outer.Scope.Body.(*Pi)
	// the domain of the inner arrow refers to the outer binder, one
	// level up from inside its own scope
	if !AlphaEq(inner.Scope.Param.Val, bound("a", 0)) {
		t.Errorf("inner domain: got %#v, want bound at 0", inner.Scope.Param.Val)
	}
	if !AlphaEq(inner.Scope.Body, bound("a", 1)) {
		t.Errorf("inner codomain: got %#v, want bound at 1", inner.Scope.Body)
	}
}

func TestTranslateAppLeftNested(t *testing.T) {
	got := translate(t, `f x y`)
	app, ok := got.(*App)
	if !ok {
		t.Fatalf("got %T, want *App", got)
	}
	if _, ok := app.Fn.(*App); !ok {
		t.Errorf("fn: got %T, want *App", app.Fn)
	}
}

func TestTranslateAnn(t *testing.T) {
	got := translate(t, `x : Type`)
	ann, ok := got.(*Ann)
	if !ok {
		t.Fatalf("got %T, want *Ann", got)
	}
	if !AlphaEq(ann.Type, universe(0)) {
		t.Errorf("type: got %#v, want Type 0", ann.Type)
	}
}

func TestTranslateUniverseLevel(t *testing.T) {
	got := translate(t, `Type 3`)
	if !AlphaEq(got, universe(3)) {
		t.Errorf("got %#v, want Type 3", got)
	}
}

func TestTranslateWildcardBinder(t *testing.T) {
	got := translate(t, `\_ => Type`)
	l := got.(*Lam)
	if _, ok := l.Scope.Param.Name.(bind.Abstract); !ok {
		t.Errorf("parameter name: got %T, want bind.Abstract", l.Scope.Param.Name)
	}
}

func TestTranslateWildcardTermFails(t *testing.T) {
	node, errs := parser.ParseTerm(`_`)
	if len(errs) > 0 {
		t.Fatalf("parse: %v", errs)
	}
	if _, err := FromConcrete(node); err == nil {
		t.Error("`_` in term position must not translate")
	}
}

func TestTranslateKeepsSpans(t *testing.T) {
	got := translate(t, `f x`)
	span := got.Span()
	if span.Start.Column != 1 || span.End.Column != 3 {
		t.Errorf("span: got %v, want 1:1-3", span)
	}
}
