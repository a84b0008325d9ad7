package ast

import (
	"fmt"

	"github.com/silky/pikelet/lexer"
)

// ReplCommand is one line entered at the REPL.
type ReplCommand interface {
	isReplCommand()
}

var (
	_ ReplCommand = (*ReplEval)(nil)
	_ ReplCommand = (*ReplTypeOf)(nil)
	_ ReplCommand = (*ReplHelp)(nil)
	_ ReplCommand = (*ReplQuit)(nil)
	_ ReplCommand = (*ReplNoOp)(nil)
	_ ReplCommand = (*ReplError)(nil)
)

// ReplEval evaluates a term: `<term>`.
type ReplEval struct {
	Term Node
}

// ReplTypeOf infers the type of a term: `:t <term>`, `:type <term>`.
type ReplTypeOf struct {
	Term Node
}

// ReplHelp prints the help text: `:?`, `:h`, `:help`.
type ReplHelp struct{}

// ReplQuit exits the REPL: `:q`, `:quit`.
type ReplQuit struct{}

// ReplNoOp is an empty line.
type ReplNoOp struct{}

// ReplError is a command that could not be parsed. Used for error
// recovery; the parse errors carry the detail.
type ReplError struct {
	SpanOf lexer.Span
}

func (*ReplEval) isReplCommand()   {}
func (*ReplTypeOf) isReplCommand() {}
func (*ReplHelp) isReplCommand()   {}
func (*ReplQuit) isReplCommand()   {}
func (*ReplNoOp) isReplCommand()   {}
func (*ReplError) isReplCommand()  {}

func (r *ReplError) String() string {
	return fmt.Sprintf("ReplError at %s", r.SpanOf)
}
