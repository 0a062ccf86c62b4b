// Package config loads optional railnet.toml settings.
//
// Every setting has a flag counterpart; the file only provides defaults so
// repeated runs against the same dataset don't need long command lines.
// Flags win over file values, file values win over built-in defaults.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mlmac-seid/london-train-network/pkg/errors"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "railnet.toml"

// Config holds file-configurable settings.
type Config struct {
	// Layout controls the force-directed rendering.
	Layout LayoutConfig `toml:"layout"`

	// Output controls artifact generation.
	Output OutputConfig `toml:"output"`

	// Cache selects and configures the cache backend.
	Cache CacheConfig `toml:"cache"`
}

// LayoutConfig configures the layout engine.
type LayoutConfig struct {
	Engine string `toml:"engine"`
	Seed   uint64 `toml:"seed"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// OutputConfig configures artifact formats and destination.
type OutputConfig struct {
	Formats []string `toml:"formats"`
	Dir     string   `toml:"dir"`
}

// CacheConfig configures the cache backend.
// Backend is "file", "redis", or "none".
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Engine: "neato",
			Seed:   42,
			Width:  1200,
			Height: 800,
		},
		Output: OutputConfig{
			Formats: []string{"svg"},
			Dir:     ".",
		},
		Cache: CacheConfig{
			Backend: "file",
		},
	}
}

// Load reads path on top of the defaults. A missing file is not an error
// and yields the defaults unchanged; a malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	return cfg, nil
}
