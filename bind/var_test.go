package bind_test

import (
	"testing"

	"github.com/silky/pikelet/bind"
)

func TestNameEquality(t *testing.T) {
	tests := []struct {
		a, b bind.Name
		want bool
	}{
		{bind.User("x"), bind.User("x"), true},
		{bind.User("x"), bind.User("y"), false},
		{bind.Gen(0), bind.Gen(0), true},
		{bind.Gen(0), bind.Gen(1), false},
		{bind.User("x"), bind.Gen(0), false},
		{bind.Abstract{}, bind.Abstract{}, false},
		{bind.Abstract{}, bind.User("_"), false},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAbstractNeverEqualToItself(t *testing.T) {
	a := bind.Abstract{}
	if a.Equal(a) {
		t.Error("an abstract name must not equal itself")
	}
}

func TestFreshGen(t *testing.T) {
	g := bind.NewFreshGen()
	for want := bind.GenID(0); want < 3; want++ {
		if got := g.Next(); got != want {
			t.Errorf("Next() = %v, want %v", got, want)
		}
	}
	g2 := bind.NewFreshGen()
	if got := g2.Next(); got != 0 {
		t.Errorf("a new generator must restart at 0, got %v", got)
	}
}

func TestDebruijn(t *testing.T) {
	if got := bind.Debruijn(0).Succ(); got != 1 {
		t.Errorf("Succ() = %v, want 1", got)
	}
	if _, ok := bind.Debruijn(0).Pred(); ok {
		t.Error("Pred() at zero must fail")
	}
	if got, ok := bind.Debruijn(2).Pred(); !ok || got != 1 {
		t.Errorf("Pred() = %v, %v, want 1, true", got, ok)
	}
}

func TestClose0(t *testing.T) {
	v := bind.Close0(bind.Free{Name: bind.User("x")}, bind.User("x"))
	bound, ok := v.(bind.Bound)
	if !ok {
		t.Fatalf("got %T, want bind.Bound", v)
	}
	if bound.Binder.Val != 0 {
		t.Errorf("index: got %v, want 0", bound.Binder.Val)
	}
	// display name is kept
	if bound.Binder.Name.String() != "x" {
		t.Errorf("name: got %q, want %q", bound.Binder.Name, "x")
	}
}

func TestCloseIsNoOpForOtherNames(t *testing.T) {
	v := bind.Close0(bind.Free{Name: bind.User("y")}, bind.User("x"))
	if _, ok := v.(bind.Free); !ok {
		t.Fatalf("got %T, want bind.Free", v)
	}
}

func TestCloseLeavesBound(t *testing.T) {
	orig := bind.Bound{Binder: bind.Named[bind.Debruijn]{Name: bind.User("x"), Val: 3}}
	v := bind.Close0(orig, bind.User("x"))
	if v != bind.Var(orig) {
		t.Fatalf("got %v, want %v", v, orig)
	}
}

func TestNamedEqualIgnoresName(t *testing.T) {
	eq := func(a, b int) bool { return a == b }
	a := bind.Named[int]{Name: bind.User("x"), Val: 1}
	b := bind.Named[int]{Name: bind.User("y"), Val: 1}
	if !a.Equal(b, eq) {
		t.Error("equality must ignore the display name")
	}
	c := bind.Named[int]{Name: bind.User("x"), Val: 2}
	if a.Equal(c, eq) {
		t.Error("equality must compare the values")
	}
}

func TestMatches(t *testing.T) {
	bound := bind.Bound{Binder: bind.Named[bind.Debruijn]{Name: bind.User("x"), Val: 1}}
	if bind.Matches(bound, 0) {
		t.Error("index 1 must not match level 0")
	}
	if !bind.Matches(bound, 1) {
		t.Error("index 1 must match level 1")
	}
	if bind.Matches(bind.Free{Name: bind.User("x")}, 0) {
		t.Error("a free variable matches no level")
	}
}
