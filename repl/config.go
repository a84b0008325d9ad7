package repl

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Config holds the REPL defaults a user can override from a YAML file:
//
//	prompt: "λ> "
//	history-file: ".pikelet-history"
//	files:
//	  - prelude.pi
type Config struct {
	Prompt      string   `yaml:"prompt"`
	HistoryFile string   `yaml:"history-file"`
	Files       []string `yaml:"files"` // modules loaded before the first prompt
}

func DefaultConfig() Config {
	return Config{
		Prompt:      "Pikelet> ",
		HistoryFile: "repl-history",
	}
}

// LoadConfig reads overrides from a YAML file. A missing file is not
// an error; the defaults stand.
func LoadConfig(fsys fs.FS, path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := fs.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
