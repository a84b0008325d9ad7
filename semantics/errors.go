// Package semantics implements the bidirectional type checker and the
// normalizer over core terms.
package semantics

import (
	"fmt"

	"github.com/silky/pikelet/bind"
	"github.com/silky/pikelet/core"
	"github.com/silky/pikelet/diag"
	"github.com/silky/pikelet/lexer"
	"github.com/silky/pikelet/pretty"
)

// TypeError is a problem with the user's program, discovered during
// checking. Type errors are ordinary values: they carry the spans and
// types needed to render a diagnostic and never abort the process.
type TypeError interface {
	error
	Diagnostic() diag.Diagnostic
	isTypeError()
}

var (
	_ TypeError = NotAFunctionType{}
	_ TypeError = FunctionParamNeedsAnnotation{}
	_ TypeError = Mismatch{}
	_ TypeError = UnexpectedFunction{}
	_ TypeError = ExpectedUniverse{}
	_ TypeError = UndefinedName{}
	_ TypeError = Internal{}
)

// NotAFunctionType reports an argument applied to a term whose type is
// not a pi type.
type NotAFunctionType struct {
	FnSpan  lexer.Span
	ArgSpan lexer.Span
	Found   core.Type
}

func (NotAFunctionType) isTypeError() {}

func (e NotAFunctionType) Error() string {
	return fmt.Sprintf("applied an argument to a non-function type `%s`", pretty.Term(e.Found))
}

func (e NotAFunctionType) Diagnostic() diag.Diagnostic {
	msg := fmt.Sprintf("applied an argument to a term that was not a function - found type `%s`", pretty.Term(e.Found))
	return diag.New(diag.Error, msg, diag.Label{Span: e.FnSpan, Msg: "the term"}).
		WithSecondary(e.ArgSpan, "the applied argument")
}

// FunctionParamNeedsAnnotation reports a binder whose type cannot be
// determined: an unannotated pi parameter, or a lambda in a position
// with no expected type.
type FunctionParamNeedsAnnotation struct {
	ParamSpan lexer.Span
	Name      bind.Name
}

func (FunctionParamNeedsAnnotation) isTypeError() {}

func (e FunctionParamNeedsAnnotation) Error() string {
	return fmt.Sprintf("type annotation needed for the function parameter `%s`", e.Name)
}

func (e FunctionParamNeedsAnnotation) Diagnostic() diag.Diagnostic {
	return diag.New(diag.Error, e.Error(),
		diag.Label{Span: e.ParamSpan, Msg: "the parameter that requires an annotation"})
}

// Mismatch reports a term whose inferred type differs from the
// expected one.
type Mismatch struct {
	Span     lexer.Span
	Found    core.Type
	Expected core.Type
}

func (Mismatch) isTypeError() {}

func (e Mismatch) Error() string {
	return fmt.Sprintf("type mismatch: found `%s` but `%s` was expected",
		pretty.Term(e.Found), pretty.Term(e.Expected))
}

func (e Mismatch) Diagnostic() diag.Diagnostic {
	msg := fmt.Sprintf("found a term of type `%s`, but expected a term of type `%s`",
		pretty.Term(e.Found), pretty.Term(e.Expected))
	return diag.New(diag.Error, msg, diag.Label{Span: e.Span, Msg: "the term"})
}

// UnexpectedFunction reports a lambda checked against a type that is
// not a pi type.
type UnexpectedFunction struct {
	Span     lexer.Span
	Expected core.Type
}

func (UnexpectedFunction) isTypeError() {}

func (e UnexpectedFunction) Error() string {
	return fmt.Sprintf("found a function but expected `%s`", pretty.Term(e.Expected))
}

func (e UnexpectedFunction) Diagnostic() diag.Diagnostic {
	msg := fmt.Sprintf("found a function but expected a term of type `%s`", pretty.Term(e.Expected))
	return diag.New(diag.Error, msg, diag.Label{Span: e.Span, Msg: "the function"})
}

// ExpectedUniverse reports an annotation that is not a type.
type ExpectedUniverse struct {
	Span  lexer.Span
	Found core.Type
}

func (ExpectedUniverse) isTypeError() {}

func (e ExpectedUniverse) Error() string {
	return fmt.Sprintf("found `%s` but a universe was expected", pretty.Term(e.Found))
}

func (e ExpectedUniverse) Diagnostic() diag.Diagnostic {
	msg := fmt.Sprintf("expected type, found value `%s`", pretty.Term(e.Found))
	return diag.New(diag.Error, msg, diag.Label{Span: e.Span, Msg: "the value"})
}

// UndefinedName reports a variable that is not in scope.
type UndefinedName struct {
	VarSpan lexer.Span
	Name    bind.Name
}

func (UndefinedName) isTypeError() {}

func (e UndefinedName) Error() string {
	return fmt.Sprintf("undefined name `%s`", e.Name)
}

func (e UndefinedName) Diagnostic() diag.Diagnostic {
	msg := fmt.Sprintf("cannot find `%s` in scope", e.Name)
	return diag.New(diag.Error, msg, diag.Label{Span: e.VarSpan, Msg: "not found in this scope"})
}

// InternalError is a violated invariant in the checker or normalizer
// itself. These are bugs: they are never reachable from a well-formed
// program, and they render with Bug severity so they are not mistaken
// for user errors.
type InternalError interface {
	error
	Diagnostic() diag.Diagnostic
	isInternalError()
}

var (
	_ InternalError = UnsubstitutedDebruijnIndex{}
	_ InternalError = InternalUndefinedName{}
)

// UnsubstitutedDebruijnIndex reports a bound variable that survived to
// a position where every binder should already have been opened.
type UnsubstitutedDebruijnIndex struct {
	Span  lexer.Span
	Name  bind.Name
	Index bind.Debruijn
}

func (UnsubstitutedDebruijnIndex) isInternalError() {}

func (e UnsubstitutedDebruijnIndex) Error() string {
	return fmt.Sprintf("unsubstituted debruijn index: `%s#%s`", e.Name, e.Index)
}

func (e UnsubstitutedDebruijnIndex) Diagnostic() diag.Diagnostic {
	return diag.New(diag.Bug, e.Error(), diag.Label{Span: e.Span, Msg: "index found here"})
}

// InternalUndefinedName reports a lookup failure in a context the
// engine itself extended; user-written names fail with the ordinary
// UndefinedName instead.
type InternalUndefinedName struct {
	VarSpan lexer.Span
	Name    bind.Name
}

func (InternalUndefinedName) isInternalError() {}

func (e InternalUndefinedName) Error() string {
	return fmt.Sprintf("cannot find `%s` in scope", e.Name)
}

func (e InternalUndefinedName) Diagnostic() diag.Diagnostic {
	return diag.New(diag.Bug, e.Error(), diag.Label{Span: e.VarSpan, Msg: "not found in this scope"})
}

// Internal wraps an InternalError as a TypeError so that it propagates
// through the same return paths.
type Internal struct {
	Err InternalError
}

func (Internal) isTypeError() {}

func (e Internal) Error() string {
	return fmt.Sprintf("internal error - this is a bug! %s", e.Err)
}

func (e Internal) Diagnostic() diag.Diagnostic {
	return e.Err.Diagnostic()
}

func (e Internal) Unwrap() error {
	return e.Err
}

// wrapInternal converts normalizer failures for the checker's return
// paths. TypeErrors pass through; anything internal is tagged.
func wrapInternal(err error) error {
	switch err := err.(type) {
	case nil:
		return nil
	case TypeError:
		return err
	case InternalError:
		return Internal{Err: err}
	default:
		return err
	}
}
