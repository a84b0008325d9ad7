package semantics

import (
	"github.com/silky/pikelet/bind"
	"github.com/silky/pikelet/core"
)

// Context is the typing environment: a persistent list of claims
// (name : type) and definitions (name = term). Extending returns a new
// context sharing the old one's tail, so a caller can hold on to any
// intermediate context and the entries it sees never change.
type Context struct {
	node *node
}

type node struct {
	name bind.Name
	ty   core.Type
	def  core.Term
	next *node
}

// NewContext returns the empty context.
func NewContext() Context {
	return Context{}
}

// Extend adds a claim, `name : ty`.
func (c Context) Extend(name bind.Name, ty core.Type) Context {
	return Context{node: &node{name: name, ty: ty, next: c.node}}
}

// Define adds a definition, `name = def`. The claim for the name, if
// any, is a separate entry.
func (c Context) Define(name bind.Name, def core.Term) Context {
	return Context{node: &node{name: name, def: def, next: c.node}}
}

// LookupType finds the type claimed for a name, innermost first.
func (c Context) LookupType(name bind.Name) (core.Type, bool) {
	for n := c.node; n != nil; n = n.next {
		if n.ty != nil && name.Equal(n.name) {
			return n.ty, true
		}
	}
	return nil, false
}

// LookupDefinition finds the term a name is defined to be, innermost
// first. Names bound by a lambda or pi have a claim but no definition,
// so they stay neutral under normalization.
func (c Context) LookupDefinition(name bind.Name) (core.Term, bool) {
	for n := c.node; n != nil; n = n.next {
		if n.def != nil && name.Equal(n.name) {
			return n.def, true
		}
	}
	return nil, false
}
