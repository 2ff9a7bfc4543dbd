// Package config loads archdiagram settings from a TOML file.
//
// A typical archdiagram.toml:
//
//	output_dir = "docs/diagrams"
//	assets_dir = "./assets"
//	detailed   = false
//	no_cache   = false
//
//	[diagrams.architecture]
//	formats = ["png", "svg"]
//
//	[diagrams.workflow]
//	formats = ["png"]
//
// Every field is optional. Command-line flags override file values.
package config

import (
	"errors"
	"io/fs"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	aerrors "github.com/thetiptop/archdiagram/pkg/errors"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "archdiagram.toml"

// Config holds the settings shared by all commands.
type Config struct {
	OutputDir string                   `toml:"output_dir"`
	AssetsDir string                   `toml:"assets_dir"`
	Detailed  bool                     `toml:"detailed"`
	NoCache   bool                     `toml:"no_cache"`
	Diagrams  map[string]DiagramConfig `toml:"diagrams"`
}

// DiagramConfig holds per-diagram settings.
type DiagramConfig struct {
	Formats []string `toml:"formats"`
}

// Default returns the configuration used when no file is present:
// output to the working directory, icons from ./assets.
func Default() Config {
	return Config{
		OutputDir: ".",
		AssetsDir: "./assets",
		Diagrams:  map[string]DiagramConfig{},
	}
}

// Load reads the TOML file at path on top of [Default].
//
// If path is empty, [DefaultFile] is tried and a missing file is not an
// error. An explicitly named file must exist. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, aerrors.Wrap(aerrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, aerrors.Wrap(aerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, aerrors.New(aerrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if cfg.Diagrams == nil {
		cfg.Diagrams = map[string]DiagramConfig{}
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return cfg, nil
}

// Validate checks that every configured diagram is one of known.
func (c Config) Validate(known []string) error {
	for name := range c.Diagrams {
		if !slices.Contains(known, name) {
			return aerrors.New(aerrors.ErrCodeInvalidConfig, "unknown diagram %q in config (available: %s)", name, strings.Join(known, ", "))
		}
	}
	return nil
}

// FormatsFor returns the configured formats for the named diagram,
// or fallback if none are configured.
func (c Config) FormatsFor(name string, fallback []string) []string {
	if dc, ok := c.Diagrams[name]; ok && len(dc.Formats) > 0 {
		return slices.Clone(dc.Formats)
	}
	return slices.Clone(fallback)
}
