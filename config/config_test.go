package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"lox/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	if cfg.Interp.MaxCallDepth != 1024 {
		t.Errorf("expected default max_call_depth 1024, got=%d", cfg.Interp.MaxCallDepth)
	}
	if cfg.Repl.Prompt != "> " {
		t.Errorf("expected default prompt %q, got=%q", "> ", cfg.Repl.Prompt)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFile)
	err := os.WriteFile(path, []byte(`
[interp]
max_call_depth = 64

[repl]
prompt = "lox> "
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Interp.MaxCallDepth != 64 {
		t.Errorf("expected 64, got=%d", cfg.Interp.MaxCallDepth)
	}
	if cfg.Repl.Prompt != "lox> " {
		t.Errorf("expected %q, got=%q", "lox> ", cfg.Repl.Prompt)
	}
}

func TestLoadPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFile)
	if err := os.WriteFile(path, []byte("[interp]\nmax_call_depth = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	// zero and missing values fall back to defaults.
	if cfg.Interp.MaxCallDepth != 1024 {
		t.Errorf("expected 1024, got=%d", cfg.Interp.MaxCallDepth)
	}
	if cfg.Repl.Prompt != "> " {
		t.Errorf("expected default prompt, got=%q", cfg.Repl.Prompt)
	}
}

func TestFindAndLoad(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, config.ConfigFile)
	if err := os.WriteFile(path, []byte("[repl]\nprompt = \":: \"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.FindAndLoad(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Repl.Prompt != ":: " {
		t.Errorf("expected the config two levels up to be found, got=%q", cfg.Repl.Prompt)
	}
}

func TestFindAndLoadMissing(t *testing.T) {
	cfg, err := config.FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Interp.MaxCallDepth != 1024 {
		t.Errorf("expected defaults when no file exists, got=%d", cfg.Interp.MaxCallDepth)
	}
}
