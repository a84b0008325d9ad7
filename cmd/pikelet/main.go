// Command pikelet is the entry point: an interactive REPL and a batch
// checker for .pi files.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/silky/pikelet/driver"
	"github.com/silky/pikelet/repl"
)

func usage() {
	fmt.Fprint(os.Stderr, "usage: pikelet <command> [arguments]\n\n")
	fmt.Fprint(os.Stderr, "commands:\n")
	fmt.Fprint(os.Stderr, "  repl [-prompt p] [-history file] [-config file] [file ...]\n")
	fmt.Fprint(os.Stderr, "  check file ...\n")
	os.Exit(2)
}

func errExit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		usage()
	}
	switch args[0] {
	case "repl":
		runRepl(args[1:])
	case "check":
		runCheck(args[1:])
	default:
		usage()
	}
}

func runRepl(args []string) {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	config := fs.String("config", "pikelet.yaml", "YAML config file")
	prompt := fs.String("prompt", "", "prompt shown before expressions")
	history := fs.String("history", "", "history database, overriding the config")
	fs.Parse(args)

	fsys := os.DirFS(".")
	cfg, err := repl.LoadConfig(fsys, *config)
	if err != nil {
		errExit(err)
	}
	if *prompt != "" {
		cfg.Prompt = *prompt
	}
	if *history != "" {
		cfg.HistoryFile = *history
	}
	err = repl.Run(fsys, repl.Opts{
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.HistoryFile,
		Files:       append(cfg.Files, fs.Args()...),
	})
	if err != nil {
		errExit(err)
	}
}

func runCheck(args []string) {
	if len(args) == 0 {
		usage()
	}
	_, diags := driver.Check(os.DirFS("."), args...)
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Show())
	}
	if len(diags) > 0 {
		os.Exit(1)
	}
}
