// Package repl implements the interactive read-eval-print loop.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/silky/pikelet/ast"
	"github.com/silky/pikelet/bind"
	"github.com/silky/pikelet/core"
	"github.com/silky/pikelet/diag"
	"github.com/silky/pikelet/driver"
	"github.com/silky/pikelet/parser"
	"github.com/silky/pikelet/pretty"
	"github.com/silky/pikelet/semantics"
)

const (
	version  = "0.1.0"
	homepage = "https://github.com/silky/pikelet"
)

var logoText = []string{
	`    ____  _ __        __     __     `,
	`   / __ \(_) /_____  / /__  / /_    `,
	`  / /_/ / / //_/ _ \/ / _ \/ __/    `,
	` / ____/ / ,< /  __/ /  __/ /_      `,
	`/_/   /_/_/|_|\___/_/\___/\__/      `,
	``,
}

var helpText = []string{
	``,
	`Command       Arguments   Purpose`,
	``,
	`<expr>                    evaluate a term`,
	`:? :h :help               display this help text`,
	`:q :quit                  quit the repl`,
	`:t :type      <expr>      infer the type of an expression`,
	``,
}

// Session is the state of one interactive session: the fresh-name
// generator and the context holding everything loaded or claimed so
// far. It is not safe for concurrent use and is never shared.
type Session struct {
	gen *bind.FreshGen
	ctx semantics.Context
}

func NewSession(ctx semantics.Context) *Session {
	return &Session{gen: bind.NewFreshGen(), ctx: ctx}
}

// ParseErrors carries the parser's accumulated errors for one line.
type ParseErrors []parser.ParseError

func (e ParseErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Eval interprets one input line and returns the text to print. quit
// reports that the session should end.
func (s *Session) Eval(line string) (output string, quit bool, err error) {
	cmd, perrs := parser.ParseReplCommand(line)
	if len(perrs) > 0 {
		return "", false, ParseErrors(perrs)
	}
	switch cmd := cmd.(type) {
	case *ast.ReplNoOp:
		return "", false, nil
	case *ast.ReplHelp:
		return strings.Join(helpText, "\n"), false, nil
	case *ast.ReplQuit:
		return "", true, nil
	case *ast.ReplEval:
		term, err := core.FromConcrete(cmd.Term)
		if err != nil {
			return "", false, err
		}
		_, ty, err := semantics.Infer(s.gen, s.ctx, term)
		if err != nil {
			return "", false, err
		}
		value, err := semantics.Normalize(s.ctx, term)
		if err != nil {
			return "", false, err
		}
		return pretty.AnnTerm(value, ty), false, nil
	case *ast.ReplTypeOf:
		term, err := core.FromConcrete(cmd.Term)
		if err != nil {
			return "", false, err
		}
		_, ty, err := semantics.Infer(s.gen, s.ctx, term)
		if err != nil {
			return "", false, err
		}
		return pretty.Term(ty), false, nil
	default:
		return "", false, nil
	}
}

// Opts configures Run. The zero value of Prompt and HistoryFile means
// the defaults from DefaultConfig; an explicitly empty HistoryFile in
// the config disables history.
type Opts struct {
	Prompt      string
	HistoryFile string
	Files       []string
	Out         io.Writer
}

// Run loads the given files, then reads and evaluates lines until the
// user quits. When stdin is not a terminal the banner and line editing
// are skipped and lines are read straight through.
func Run(fsys fs.FS, opts Opts) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	prog, diags := driver.Check(fsys, opts.Files...)
	for _, d := range diags {
		fmt.Fprintln(out, d.Show())
	}
	session := NewSession(prog.Context())

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return runPlain(session, out)
	}

	printBanner(out)

	var store *HistoryStore
	if opts.HistoryFile != "" {
		var err error
		store, err = OpenHistory(opts.HistoryFile)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()
	}

	rl := liner.NewLiner()
	defer rl.Close()
	rl.SetCtrlCAborts(true)
	if store != nil {
		lines, err := store.All()
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		for _, line := range lines {
			rl.AppendHistory(line)
		}
	}

	for {
		line, err := rl.Prompt(opts.Prompt)
		switch err {
		case nil:
		case liner.ErrPromptAborted:
			fmt.Fprintln(out, "Interrupt")
			continue
		case io.EOF:
			fmt.Fprintln(out, "Bye bye")
			return nil
		default:
			return fmt.Errorf("read line: %w", err)
		}

		if strings.TrimSpace(line) != "" {
			rl.AppendHistory(line)
			if store != nil {
				if _, err := store.Add(line); err != nil {
					return fmt.Errorf("record history: %w", err)
				}
			}
		}
		if quit := evalPrint(session, out, line); quit {
			fmt.Fprintln(out, "Bye bye")
			return nil
		}
	}
}

func runPlain(session *Session, out io.Writer) error {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if quit := evalPrint(session, out, sc.Text()); quit {
			break
		}
	}
	return sc.Err()
}

func evalPrint(session *Session, out io.Writer, line string) (quit bool) {
	output, quit, err := session.Eval(line)
	if err != nil {
		fmt.Fprintln(out, renderErr(err))
		return false
	}
	if output != "" {
		fmt.Fprintln(out, output)
	}
	return quit
}

func printBanner(out io.Writer) {
	for i, line := range logoText {
		switch i {
		case 2:
			fmt.Fprintf(out, "%sVersion %s\n", line, version)
		case 3:
			fmt.Fprintf(out, "%s%s\n", line, homepage)
		case 4:
			fmt.Fprintf(out, "%s:? for help\n", line)
		default:
			fmt.Fprintln(out, line)
		}
	}
}

func renderErr(err error) string {
	switch err := err.(type) {
	case semantics.TypeError:
		return err.Diagnostic().Show()
	case core.TranslateError:
		return diag.New(diag.Error, err.Msg, diag.Label{Span: err.Span}).Show()
	case ParseErrors:
		shown := make([]string, len(err))
		for i, perr := range err {
			shown[i] = diag.New(diag.Error, perr.Msg, diag.Label{Span: perr.Span}).Show()
		}
		return strings.Join(shown, "\n")
	default:
		return err.Error()
	}
}
