package repl

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/silky/pikelet/driver"
	"github.com/silky/pikelet/semantics"
)

func eval(t *testing.T, s *Session, line string) string {
	t.Helper()
	output, quit, err := s.Eval(line)
	if err != nil {
		t.Fatalf("eval %q: %v", line, err)
	}
	if quit {
		t.Fatalf("eval %q quit the session", line)
	}
	return output
}

func TestEvalTerm(t *testing.T) {
	s := NewSession(semantics.NewContext())
	if got := eval(t, s, `Type`); got != `Type : Type 1` {
		t.Errorf("got %q, want %q", got, `Type : Type 1`)
	}
}

func TestEvalBetaReduces(t *testing.T) {
	s := NewSession(semantics.NewContext())
	got := eval(t, s, `((\x => x) : Type 1 -> Type 1) Type`)
	if got != `Type : Type 1` {
		t.Errorf("got %q, want %q", got, `Type : Type 1`)
	}
}

func TestTypeOf(t *testing.T) {
	s := NewSession(semantics.NewContext())
	if got := eval(t, s, `:t Type -> Type`); got != `Type 1` {
		t.Errorf("got %q, want %q", got, `Type 1`)
	}
}

func TestHelpQuitAndEmpty(t *testing.T) {
	s := NewSession(semantics.NewContext())
	if got := eval(t, s, `:?`); !strings.Contains(got, "display this help text") {
		t.Errorf("help output: got %q", got)
	}
	if got := eval(t, s, `   `); got != "" {
		t.Errorf("empty line: got %q", got)
	}
	_, quit, err := s.Eval(`:q`)
	if err != nil || !quit {
		t.Errorf("quit: got (%v, %v), want (true, nil)", quit, err)
	}
}

func TestEvalUndefinedName(t *testing.T) {
	s := NewSession(semantics.NewContext())
	_, _, err := s.Eval(`foo`)
	var undef semantics.UndefinedName
	if !errors.As(err, &undef) {
		t.Fatalf("got %v, want UndefinedName", err)
	}
	if !strings.Contains(renderErr(err), "cannot find `foo` in scope") {
		t.Errorf("rendered: got %q", renderErr(err))
	}
}

func TestEvalUnknownCommand(t *testing.T) {
	s := NewSession(semantics.NewContext())
	_, _, err := s.Eval(`:nope`)
	var perrs ParseErrors
	if !errors.As(err, &perrs) {
		t.Fatalf("got %v, want ParseErrors", err)
	}
}

func TestEvalWithLoadedModule(t *testing.T) {
	fsys := fstest.MapFS{"prelude.pi": &fstest.MapFile{Data: []byte(
		"module prelude;\n\nid : (a : Type) -> a -> a;\nid a x = x;\n",
	)}}
	prog, diags := driver.Check(fsys, "prelude.pi")
	if len(diags) > 0 {
		t.Fatalf("diagnostics: %v", diags)
	}
	s := NewSession(prog.Context())
	if got := eval(t, s, `:t id`); got != `(a : Type) -> a -> a` {
		t.Errorf("got %q, want %q", got, `(a : Type) -> a -> a`)
	}
	if got := eval(t, s, `id`); got != `(\a x => x) : (a : Type) -> a -> a` {
		t.Errorf("got %q, want %q", got, `(\a x => x) : (a : Type) -> a -> a`)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.db")
	store, err := OpenHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := []string{`Type`, `:t Type`, `\x => x`}
	for _, line := range lines {
		if _, err := store.Add(line); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	store, err = OpenHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	got, err := store.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(lines) {
		t.Fatalf("got %d lines, want %d", len(got), len(lines))
	}
	for i := range lines {
		if got[i] != lines[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], lines[i])
		}
	}
}

func TestLoadConfig(t *testing.T) {
	fsys := fstest.MapFS{"pikelet.yaml": &fstest.MapFile{Data: []byte(
		"prompt: \"λ> \"\nhistory-file: .pikelet-history\nfiles:\n  - prelude.pi\n",
	)}}
	cfg, err := LoadConfig(fsys, "pikelet.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "λ> " || cfg.HistoryFile != ".pikelet-history" {
		t.Errorf("got %+v", cfg)
	}
	if len(cfg.Files) != 1 || cfg.Files[0] != "prelude.pi" {
		t.Errorf("files: got %v, want [prelude.pi]", cfg.Files)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(fstest.MapFS{}, "pikelet.yaml")
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultConfig()
	if cfg.Prompt != def.Prompt || cfg.HistoryFile != def.HistoryFile || len(cfg.Files) != 0 {
		t.Errorf("got %+v, want defaults", cfg)
	}
}
