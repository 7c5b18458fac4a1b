package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[display]
line_numbers = false
clock = true
tab_width = 4

[mouse]
enabled = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.LineNumbers {
		t.Error("line_numbers should be false")
	}
	if !cfg.Display.ColumnNumbers {
		t.Error("column_numbers should keep its default")
	}
	if !cfg.Display.Clock {
		t.Error("clock should be true")
	}
	if cfg.Display.TabWidth != 4 {
		t.Errorf("tab_width = %d, want 4", cfg.Display.TabWidth)
	}
	if cfg.Mouse.Enabled {
		t.Error("mouse should be disabled")
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[display\nline_numbers = maybe")
	_, err := Load(path)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Load err = %v, want *ParseError", err)
	}
	if pe.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", pe.Path, path)
	}
}

func TestLoadClampsTabWidth(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[display]\ntab_width = 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.TabWidth != 8 {
		t.Errorf("tab_width = %d, want 8", cfg.Display.TabWidth)
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[display]\ntab_width = 4\n")

	got := make(chan Config, 1)
	w, err := Watch(path, func(cfg Config) {
		select {
		case got <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[display]\ntab_width = 2\n"), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	select {
	case cfg := <-got:
		if cfg.Display.TabWidth != 2 {
			t.Errorf("reloaded tab_width = %d, want 2", cfg.Display.TabWidth)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[display]\ntab_width = 4\n")

	got := make(chan Config, 1)
	w, err := Watch(path, func(cfg Config) { got <- cfg })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	other := filepath.Join(dir, "other.toml")
	if err := os.WriteFile(other, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatalf("writing other file: %v", err)
	}

	select {
	case <-got:
		t.Error("unrelated file change triggered a reload")
	case <-time.After(500 * time.Millisecond):
	}
}
