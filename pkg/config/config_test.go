package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mlmac-seid/london-train-network/pkg/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "railnet.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.Engine != "neato" || cfg.Layout.Seed != 42 {
		t.Errorf("Unexpected layout defaults: %+v", cfg.Layout)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Unexpected cache default: %+v", cfg.Cache)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "railnet.toml")
	content := `
[layout]
engine = "fdp"
seed = 7

[output]
formats = ["svg", "png", "json"]
dir = "out"

[cache]
backend = "redis"
addr = "localhost:6379"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.Engine != "fdp" || cfg.Layout.Seed != 7 {
		t.Errorf("Layout not overridden: %+v", cfg.Layout)
	}
	// Unset keys keep their defaults
	if cfg.Layout.Width != 1200 {
		t.Errorf("Width should keep default, got %d", cfg.Layout.Width)
	}
	if len(cfg.Output.Formats) != 3 {
		t.Errorf("Formats not overridden: %v", cfg.Output.Formats)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.Addr != "localhost:6379" {
		t.Errorf("Cache not overridden: %+v", cfg.Cache)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "railnet.toml")
	if err := os.WriteFile(path, []byte("[layout\nengine="), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for malformed TOML")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Expected INVALID_INPUT code, got %v", err)
	}
}
