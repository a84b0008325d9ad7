// Package bind implements the locally nameless representation of
// variable binding: bound variables carry de Bruijn indices, free
// variables carry names. Closing a term converts matching free names
// to indices; instantiation replaces indices without any renaming, so
// substitution is capture-avoiding by construction.
package bind

import "fmt"

// Name is the name of a free variable.
type Name interface {
	fmt.Stringer
	isName()

	// Equal reports whether two names refer to the same variable.
	// Abstract names never do, not even to themselves.
	Equal(Name) bool
}

var (
	_ Name = User("")
	_ Name = Gen(0)
	_ Name = Abstract{}
)

// User is a name originating from user input.
type User string

func (User) isName() {}

func (n User) Equal(other Name) bool {
	o, ok := other.(User)
	return ok && n == o
}

func (n User) String() string { return string(n) }

// Gen is a name manufactured by a FreshGen.
type Gen GenID

func (Gen) isName() {}

func (n Gen) Equal(other Name) bool {
	o, ok := other.(Gen)
	return ok && n == o
}

func (n Gen) String() string { return fmt.Sprintf("$%d", uint32(n)) }

// Abstract is the "don't care" name, `_`. It is used for the binder of
// a non-dependent function type: `t1 -> t2` is stored as
// `(_ : t1) -> t2`. In that spine `_` could stand for any of the
// binders, so comparing abstract names always reports false. This
// keeps wildcard names from ever capturing a variable.
type Abstract struct{}

func (Abstract) isName() {}

func (Abstract) Equal(Name) bool { return false }

func (Abstract) String() string { return "_" }

// GenID is an id handed out by a FreshGen.
type GenID uint32

// FreshGen produces names that cannot collide with anything else in
// its session. One generator is threaded through each REPL or
// elaboration session; it is never shared.
type FreshGen struct {
	nextGen GenID
}

func NewFreshGen() *FreshGen {
	return &FreshGen{}
}

// Next returns a strictly increasing GenID, starting at 0.
func (g *FreshGen) Next() GenID {
	id := g.nextGen
	g.nextGen++
	return id
}

// Fresh returns a new generated name.
func (g *FreshGen) Fresh() Name {
	return Gen(g.Next())
}

// Debruijn counts the binders between a variable use and the binder
// that introduced it. 0 is the innermost binder:
//
//	λx.∀y.λz. x z (y z)
//	λ  ∀  λ   2 0 (1 0)
type Debruijn uint32

// Succ moves the index under one more binder.
func (d Debruijn) Succ() Debruijn {
	return d + 1
}

// Pred moves the index out of a binder. It fails at zero, where the
// variable belongs to the binder being removed.
func (d Debruijn) Pred() (Debruijn, bool) {
	if d == 0 {
		return 0, false
	}
	return d - 1, true
}

func (d Debruijn) String() string { return fmt.Sprintf("%d", uint32(d)) }

// Named pairs a value with a name kept purely for display. Equality
// must ignore the name: once indices are in place, structural
// comparison of terms is alpha-equivalence, and surface names play no
// part in it.
type Named[T any] struct {
	Name Name
	Val  T
}

// Equal compares the underlying values with eq, ignoring the names.
func (n Named[T]) Equal(other Named[T], eq func(T, T) bool) bool {
	return eq(n.Val, other.Val)
}

// OnFree decides what a close traversal does with a free name: return
// the index to bind it at, or report false to leave it alone.
type OnFree func(Name) (Debruijn, bool)

// Var is a variable that is either free or bound.
type Var interface {
	fmt.Stringer
	isVar()
}

var (
	_ Var = Free{}
	_ Var = Bound{}
)

// Free is a named free variable.
type Free struct {
	Name Name
}

func (Free) isVar() {}

func (v Free) String() string { return v.Name.String() }

// Bound is a variable bound by a lambda or pi binder.
type Bound struct {
	Binder Named[Debruijn]
}

func (Bound) isVar() {}

func (v Bound) String() string { return v.Binder.Name.String() }

// DebugString renders a bound variable with its index, `x#1`.
func (v Bound) DebugString() string {
	return fmt.Sprintf("%s#%s", v.Binder.Name, v.Binder.Val)
}

// Close captures a free variable: if onFree matches the name, the
// variable becomes bound at the returned level. Bound variables and
// unmatched names pass through untouched.
func Close(v Var, onFree OnFree) Var {
	free, ok := v.(Free)
	if !ok {
		return v
	}
	level, ok := onFree(free.Name)
	if !ok {
		return v
	}
	return Bound{Binder: Named[Debruijn]{Name: free.Name, Val: level}}
}

// Close0 captures a single name at the current binder.
func Close0(v Var, name Name) Var {
	return Close(v, func(found Name) (Debruijn, bool) {
		if name.Equal(found) {
			return 0, true
		}
		return 0, false
	})
}

// Matches reports whether v is bound at the given level. It is the
// test used when opening a scope during substitution.
func Matches(v Var, level Debruijn) bool {
	bound, ok := v.(Bound)
	return ok && bound.Binder.Val == level
}

// Eq compares two variables structurally: free variables by name,
// bound variables by index alone.
func Eq(a, b Var) bool {
	switch a := a.(type) {
	case Free:
		b, ok := b.(Free)
		return ok && a.Name.Equal(b.Name)
	case Bound:
		b, ok := b.(Bound)
		return ok && a.Binder.Val == b.Binder.Val
	}
	return false
}
