package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the meshinfo settings. Values come from the TOML file given
// with --config, then from explicitly set flags.
type Config struct {
	// MeshType is the mesh the file is loaded into: "tri" or "poly".
	MeshType string `toml:"mesh_type"`
	// Convert, when set, imports the loaded mesh into a mesh of this type
	// and reports what could be carried over.
	Convert string `toml:"convert"`
	// Compact removes deleted elements before reporting.
	Compact bool `toml:"compact"`
	// EnableAll enables every optional component before loading.
	EnableAll bool `toml:"enable_all"`
	// Check verifies every stored reference.
	Check bool `toml:"check"`
	// Verbose and Quiet select the log level, as -v/-vv/-q.
	Verbose int  `toml:"verbose"`
	Quiet   bool `toml:"quiet"`
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() Config {
	return Config{MeshType: "tri", Check: true}
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	d := toml.NewDecoder(f)
	d.DisallowUnknownFields()
	if err := d.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("meshinfo: config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the mesh types.
func (c Config) Validate() error {
	if !validMeshType(c.MeshType) {
		return fmt.Errorf("meshinfo: unknown mesh type %q", c.MeshType)
	}
	if c.Convert != "" && !validMeshType(c.Convert) {
		return fmt.Errorf("meshinfo: unknown conversion mesh type %q", c.Convert)
	}
	return nil
}

func validMeshType(s string) bool {
	return s == "tri" || s == "poly"
}

// LogLevel maps the verbosity settings to a slog level.
func (c Config) LogLevel() slog.Level {
	return LevelFromFlags(c.Verbose > 1, c.Verbose == 1, c.Quiet)
}

// LevelFromFlags returns the slog level for the given flags: debug for vv,
// info for v, error for q, warn otherwise.
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
