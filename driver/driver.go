// Package driver loads pikelet source files, translates their
// declarations to core terms, and checks them. It is the engine behind
// `pikelet check` and the file arguments of `pikelet repl`.
package driver

import (
	"fmt"
	"io/fs"

	set "github.com/hashicorp/go-set/v2"
	"github.com/silky/pikelet/ast"
	"github.com/silky/pikelet/bind"
	"github.com/silky/pikelet/core"
	"github.com/silky/pikelet/diag"
	"github.com/silky/pikelet/lexer"
	"github.com/silky/pikelet/parser"
	"github.com/silky/pikelet/pretty"
	"github.com/silky/pikelet/semantics"
	"golang.org/x/mod/module"
)

// Program is a checked set of modules, in load order.
type Program struct {
	Modules []*Module
	byName  map[string]*Module
}

// Module is one checked source file.
type Module struct {
	Name    string
	File    string
	Entries []Entry
	byName  map[string]int
}

// Entry is a top-level name: its checked type, and its definition when
// one was given.
type Entry struct {
	Name string
	Type core.Type
	Def  core.Term
}

// Lookup finds a module's entry by name.
func (m *Module) Lookup(name string) (Entry, bool) {
	i, ok := m.byName[name]
	if !ok {
		return Entry{}, false
	}
	return m.Entries[i], true
}

// Module finds a loaded module by name.
func (p *Program) Module(name string) (*Module, bool) {
	m, ok := p.byName[name]
	return m, ok
}

// Context builds a checking context holding every entry of every
// loaded module, in load order. The REPL seeds its session with it.
func (p *Program) Context() semantics.Context {
	ctx := semantics.NewContext()
	for _, m := range p.Modules {
		for _, e := range m.Entries {
			ctx = extendEntry(ctx, e)
		}
	}
	return ctx
}

func extendEntry(ctx semantics.Context, e Entry) semantics.Context {
	name := bind.User(e.Name)
	ctx = ctx.Extend(name, e.Type)
	if e.Def != nil {
		ctx = ctx.Define(name, e.Def)
	}
	return ctx
}

// Check loads, translates and checks the given files in order. Modules
// resolve imports against the files loaded before them; there is no
// search path. The returned diagnostics are empty iff every file
// checked cleanly.
func Check(fsys fs.FS, files ...string) (*Program, []diag.Diagnostic) {
	l := &loader{
		fsys: fsys,
		gen:  bind.NewFreshGen(),
		prog: &Program{byName: map[string]*Module{}},
	}
	for _, file := range files {
		l.loadFile(file)
	}
	return l.prog, l.diags
}

type loader struct {
	fsys  fs.FS
	gen   *bind.FreshGen
	prog  *Program
	diags []diag.Diagnostic
}

func (l *loader) errorf(span lexer.Span, format string, args ...any) {
	d := diag.New(diag.Error, fmt.Sprintf(format, args...), diag.Label{Span: span})
	l.diags = append(l.diags, d)
}

// report converts a translation or checking failure to a diagnostic.
func (l *loader) report(err error) {
	switch err := err.(type) {
	case semantics.TypeError:
		l.diags = append(l.diags, err.Diagnostic())
	case core.TranslateError:
		l.errorf(err.Span, "%s", err.Msg)
	default:
		l.diags = append(l.diags, diag.New(diag.Bug, err.Error(), diag.Label{}))
	}
}

func (l *loader) loadFile(file string) {
	m, perrs, err := parser.ParseModule(l.fsys, file)
	if err != nil {
		l.diags = append(l.diags, diag.New(diag.Error, err.Error(), diag.Label{}))
		return
	}
	for _, perr := range perrs {
		l.errorf(perr.Span, "%s", perr.Msg)
	}

	name := m.Name.Data
	if err := module.CheckImportPath(name); err != nil {
		l.errorf(m.Name.Span, "invalid module name %q", name)
	}
	if _, dup := l.prog.byName[name]; dup {
		l.errorf(m.Name.Span, "module %q is already loaded", name)
		return
	}

	checked := l.checkModule(file, m)
	l.prog.Modules = append(l.prog.Modules, checked)
	l.prog.byName[name] = checked
}

func (l *loader) checkModule(file string, m *ast.Module) *Module {
	out := &Module{Name: m.Name.Data, File: file, byName: map[string]int{}}
	ctx := semantics.NewContext()
	claimed := set.New[string](0)
	defined := set.New[string](0)
	claims := map[string]core.Type{}
	var claimOrder []string

	for _, decl := range m.Declarations {
		switch decl := decl.(type) {
		case *ast.Import:
			ctx = l.applyImport(ctx, decl)
		case *ast.Claim:
			name := decl.Name.Data
			if !claimed.Insert(name) {
				l.errorf(decl.Name.Span, "`%s` is already claimed", name)
				continue
			}
			ty, ok := l.checkClaim(ctx, decl)
			if !ok {
				continue
			}
			claims[name] = ty
			claimOrder = append(claimOrder, name)
			ctx = ctx.Extend(bind.User(name), ty)
		case *ast.Definition:
			name := decl.Name.Data
			if !defined.Insert(name) {
				l.errorf(decl.Name.Span, "`%s` is already defined", name)
				continue
			}
			def, ty, ok := l.checkDefinition(ctx, decl, claims[name])
			if !ok {
				continue
			}
			if _, hasClaim := claims[name]; !hasClaim {
				ctx = ctx.Extend(bind.User(name), ty)
			}
			ctx = ctx.Define(bind.User(name), def)
			out.byName[name] = len(out.Entries)
			out.Entries = append(out.Entries, Entry{Name: name, Type: ty, Def: def})
		case *ast.Illegal:
			// the parse error is already recorded
		default:
			l.errorf(decl.Span(), "unexpected declaration")
		}
	}

	// claims that never received a definition are still exported
	for _, name := range claimOrder {
		if _, ok := out.byName[name]; ok {
			continue
		}
		out.byName[name] = len(out.Entries)
		out.Entries = append(out.Entries, Entry{Name: name, Type: claims[name]})
	}
	return out
}

// checkClaim checks that a claim's annotation is a type and returns
// its normal form.
func (l *loader) checkClaim(ctx semantics.Context, c *ast.Claim) (core.Type, bool) {
	ty, err := core.FromConcrete(c.Ann)
	if err != nil {
		l.report(err)
		return nil, false
	}
	if _, err := semantics.InferUniverse(l.gen, ctx, ty); err != nil {
		l.report(err)
		return nil, false
	}
	nty, err := semantics.Normalize(ctx, ty)
	if err != nil {
		l.report(err)
		return nil, false
	}
	return nty, true
}

// checkDefinition translates `name params = body` to a term, checking
// it against the claim when there is one and inferring otherwise.
func (l *loader) checkDefinition(ctx semantics.Context, d *ast.Definition, claim core.Type) (core.Term, core.Type, bool) {
	body, err := core.FromConcrete(d.Body)
	if err != nil {
		l.report(err)
		return nil, nil, false
	}
	def := body
	if len(d.Params) > 0 {
		def, err = core.DesugarLam(d.Span(), d.Params, body)
		if err != nil {
			l.report(err)
			return nil, nil, false
		}
	}
	if claim != nil {
		if _, err := semantics.Check(l.gen, ctx, def, claim); err != nil {
			l.report(err)
			return nil, nil, false
		}
		return def, claim, true
	}
	_, ty, err := semantics.Infer(l.gen, ctx, def)
	if err != nil {
		l.report(err)
		return nil, nil, false
	}
	return def, ty, true
}

// applyImport splices an earlier module's entries into the context.
// `import foo;` and `import foo (..);` expose everything; an explicit
// list exposes exactly those names.
func (l *loader) applyImport(ctx semantics.Context, imp *ast.Import) semantics.Context {
	name := imp.Name.Data
	if err := module.CheckImportPath(name); err != nil {
		l.errorf(imp.Name.Span, "invalid import name %q", name)
		return ctx
	}
	dep, ok := l.prog.Module(name)
	if !ok {
		l.errorf(imp.Name.Span, "cannot find module `%s`", name)
		return ctx
	}
	if imp.Exposing != nil && !imp.Exposing.All {
		want := set.New[string](len(imp.Exposing.Names))
		for _, tok := range imp.Exposing.Names {
			if _, ok := dep.Lookup(tok.Data); !ok {
				l.errorf(tok.Span, "module `%s` does not export `%s`", name, tok.Data)
				continue
			}
			want.Insert(tok.Data)
		}
		for _, e := range dep.Entries {
			if want.Contains(e.Name) {
				ctx = extendEntry(ctx, e)
			}
		}
		return ctx
	}
	for _, e := range dep.Entries {
		ctx = extendEntry(ctx, e)
	}
	return ctx
}

// ShowEntry renders an entry the way the REPL prints evaluations.
func ShowEntry(e Entry) string {
	if e.Def == nil {
		return fmt.Sprintf("%s : %s", e.Name, pretty.Term(e.Type))
	}
	return fmt.Sprintf("%s = %s", e.Name, pretty.AnnTerm(e.Def, e.Type))
}
