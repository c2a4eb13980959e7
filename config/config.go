// Package config loads the optional lox.toml file that tunes the
// interpreter and the repl. Settings are deliberately few; a missing
// file just means defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// ConfigFile is looked up from the working directory upwards.
	ConfigFile = "lox.toml"

	defaultMaxCallDepth = 1024
	defaultPrompt       = "> "
)

type Config struct {
	Interp InterpConfig `toml:"interp"`
	Repl   ReplConfig   `toml:"repl"`
}

type InterpConfig struct {
	// MaxCallDepth bounds call recursion; exceeding it is a runtime
	// "stack overflow" error instead of exhausting the host stack.
	MaxCallDepth int `toml:"max_call_depth"`
}

type ReplConfig struct {
	Prompt string `toml:"prompt"`
}

// Default returns the configuration used when no lox.toml exists.
func Default() *Config {
	return &Config{
		Interp: InterpConfig{MaxCallDepth: defaultMaxCallDepth},
		Repl:   ReplConfig{Prompt: defaultPrompt},
	}
}

// FindAndLoad walks up from startDir looking for lox.toml and loads
// the first one found; no file means defaults.
func FindAndLoad(startDir string) (*Config, error) {
	path := FindConfigFile(startDir)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// FindConfigFile walks up from startDir to the filesystem root.
func FindConfigFile(startDir string) string {
	dir := startDir
	for {
		path := filepath.Join(dir, ConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load reads a config file; unset values fall back to defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if cfg.Interp.MaxCallDepth <= 0 {
		cfg.Interp.MaxCallDepth = defaultMaxCallDepth
	}
	if cfg.Repl.Prompt == "" {
		cfg.Repl.Prompt = defaultPrompt
	}
	return cfg, nil
}
