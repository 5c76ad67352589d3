// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const configFileName = "config.toml"

// Default values.
const (
	DefaultTheme           = "classic"
	DefaultAutosaveSeconds = 3
)

// Config holds the full configuration for todoish.
type Config struct {
	// Paths
	DataFile string `toml:"data_file"`

	// Output
	Theme   string `toml:"theme"` // classic, neon, mono
	NoColor bool   `toml:"no_color"`

	// Persistence
	AutosaveSeconds int `toml:"autosave_seconds"`
}

// Default returns the built-in configuration. DataFile is left empty;
// Load resolves it so the home directory is only touched once.
func Default() Config {
	return Config{
		Theme:           DefaultTheme,
		AutosaveSeconds: DefaultAutosaveSeconds,
	}
}

// AutosaveDelay converts the configured seconds to a duration.
func (c Config) AutosaveDelay() time.Duration {
	if c.AutosaveSeconds <= 0 {
		return time.Duration(DefaultAutosaveSeconds) * time.Second
	}
	return time.Duration(c.AutosaveSeconds) * time.Second
}

// Dir returns ~/.todoish, creating it with owner-only permissions.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	dir := filepath.Join(home, ".todoish")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	return dir, nil
}

// Load reads ~/.todoish/config.toml over the defaults. A missing file is
// not an error. TODOISH_DATA overrides the data file path.
func Load() (Config, error) {
	cfg := Default()

	dir, err := Dir()
	if err != nil {
		return cfg, err
	}

	if err := loadFile(filepath.Join(dir, configFileName), &cfg); err != nil {
		return cfg, err
	}

	if env := strings.TrimSpace(os.Getenv("TODOISH_DATA")); env != "" {
		cfg.DataFile = env
	}
	if cfg.DataFile == "" {
		cfg.DataFile = filepath.Join(dir, "todos.json")
	} else {
		cfg.DataFile = expandTilde(cfg.DataFile)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// expandTilde resolves a leading ~/ against the home directory.
func expandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}
