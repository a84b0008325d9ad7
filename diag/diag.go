// Package diag defines the diagnostic records the front end renders:
// a severity, a message anchored at a primary span, and any number of
// secondary labelled spans.
package diag

import (
	"fmt"
	"strings"

	"github.com/silky/pikelet/lexer"
)

type Severity int

const (
	// Error is a problem in the user's program.
	Error Severity = iota
	// Bug is a violated invariant inside the elaborator itself. It is
	// rendered distinctly so it is never mistaken for a user mistake.
	Bug
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Bug:
		return "bug"
	default:
		panic("unreachable")
	}
}

type Label struct {
	Span lexer.Span
	Msg  string
}

type Diagnostic struct {
	Severity  Severity
	Message   string
	Primary   Label
	Secondary []Label
}

func New(severity Severity, message string, primary Label) Diagnostic {
	return Diagnostic{Severity: severity, Message: message, Primary: primary}
}

func (d Diagnostic) WithSecondary(span lexer.Span, msg string) Diagnostic {
	d.Secondary = append(d.Secondary, Label{Span: span, Msg: msg})
	return d
}

// Show renders the diagnostic as plain text:
//
//	error: found a term of type `a`, but expected a term of type `b`
//	  --> 2:5: the term
//	   = 1:1: the expected type came from here
func (d Diagnostic) Show() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", d.Severity, d.Message)
	if d.Primary.Msg != "" {
		fmt.Fprintf(&sb, "\n  --> %s: %s", d.Primary.Span, d.Primary.Msg)
	} else {
		fmt.Fprintf(&sb, "\n  --> %s", d.Primary.Span)
	}
	for _, label := range d.Secondary {
		fmt.Fprintf(&sb, "\n   = %s: %s", label.Span, label.Msg)
	}
	return sb.String()
}
