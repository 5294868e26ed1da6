// Package config handles loading and saving user configuration for bstats.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/f3rmion/battlestats/internal/export"
	"github.com/f3rmion/battlestats/internal/stats"
	"gopkg.in/yaml.v3"
)

// FileName is the config file inside the config directory.
const FileName = "config.yaml"

// KeystoreName is the SQLite file holding the API key.
const KeystoreName = "keys.db"

// Config holds all user configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Lookup LookupConfig `yaml:"lookup"`
	Export ExportConfig `yaml:"export"`
}

// APIConfig points at the Torn API and profile pages.
type APIConfig struct {
	BaseURL    string `yaml:"base_url"`
	ProfileURL string `yaml:"profile_url"` // id is appended
}

// LookupConfig controls YATA profile lookups.
type LookupConfig struct {
	Delay       time.Duration `yaml:"delay"`       // minimum time per lookup task
	Concurrency int           `yaml:"concurrency"` // 0 = no limit
	Timeout     time.Duration `yaml:"timeout"`     // 0 = wait forever
}

// ExportConfig controls where exports go.
type ExportConfig struct {
	Dir        string `yaml:"dir"`
	DateLayout string `yaml:"date_layout"` // Go layout for the file name date
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    "https://api.torn.com",
			ProfileURL: stats.DefaultProfileURL,
		},
		Lookup: LookupConfig{
			Delay: export.DefaultLookupDelay,
		},
		Export: ExportConfig{
			Dir:        ".",
			DateLayout: export.DefaultDateLayout,
		},
	}
}

// Load reads the config file at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bstats"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "bstats"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
