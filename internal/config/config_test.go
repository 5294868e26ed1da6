package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Lookup.Delay != 250*time.Millisecond {
		t.Errorf("Delay = %v, want 250ms", cfg.Lookup.Delay)
	}
	if cfg.API.BaseURL != "https://api.torn.com" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := "lookup:\n  delay: 1s\n  concurrency: 4\nexport:\n  dir: /tmp/out\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Lookup.Delay != time.Second || cfg.Lookup.Concurrency != 4 {
		t.Errorf("Lookup = %+v", cfg.Lookup)
	}
	if cfg.Export.Dir != "/tmp/out" {
		t.Errorf("Export.Dir = %q", cfg.Export.Dir)
	}
	if cfg.Export.DateLayout == "" {
		t.Error("unset keys should keep their defaults")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.Lookup.Timeout = 5 * time.Second
	cfg.API.BaseURL = "http://localhost:9999"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if *got != *cfg {
		t.Errorf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	os.WriteFile(path, []byte("lookup: [not, a, map"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}
