// Package config loads editor configuration from a TOML file and watches
// it for changes so settings apply without a restart.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full editor configuration.
type Config struct {
	Display DisplayConfig `toml:"display"`
	Mouse   MouseConfig   `toml:"mouse"`
}

// DisplayConfig controls the redisplay engine.
type DisplayConfig struct {
	// LineNumbers shows the cursor line in the mode line.
	LineNumbers bool `toml:"line_numbers"`

	// ColumnNumbers shows the cursor column in the mode line.
	ColumnNumbers bool `toml:"column_numbers"`

	// Clock shows the time of day in the mode line.
	Clock bool `toml:"clock"`

	// TabWidth is the distance between tab stops for new buffers.
	TabWidth int `toml:"tab_width"`
}

// MouseConfig controls terminal mouse tracking.
type MouseConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			LineNumbers:   true,
			ColumnNumbers: true,
			TabWidth:      8,
		},
		Mouse: MouseConfig{Enabled: true},
	}
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads the configuration at path, applying defaults for anything
// unset. A missing file is not an error and yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ParseError{Path: path, Err: err}
	}
	if cfg.Display.TabWidth <= 0 {
		cfg.Display.TabWidth = 8
	}
	return cfg, nil
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mg", "config.toml")
}
