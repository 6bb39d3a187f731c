package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Options represents the regionck.yaml (or regionck.toml) configuration.
type Options struct {
	Log     LogOptions     `yaml:"log,omitempty" toml:"log,omitempty"`
	Explain ExplainOptions `yaml:"explain,omitempty" toml:"explain,omitempty"`
	Render  RenderOptions  `yaml:"render,omitempty" toml:"render,omitempty"`

	// VerifyScopes checks after every node that its annotated regions are
	// bound by an enclosing binder. Violations are internal errors.
	VerifyScopes bool `yaml:"verify_scopes,omitempty" toml:"verify_scopes,omitempty"`

	Exports ExportOptions `yaml:"exports,omitempty" toml:"exports,omitempty"`
}

type LogOptions struct {
	// Verbosity follows commonlog: 0 is errors only, higher is chattier.
	Verbosity int `yaml:"verbosity,omitempty" toml:"verbosity,omitempty"`

	// File receives log output instead of stderr when set.
	File string `yaml:"file,omitempty" toml:"file,omitempty"`
}

type ExplainOptions struct {
	// Enabled attaches a provenance trace to escape errors. Defaults to true.
	Enabled *bool `yaml:"enabled,omitempty" toml:"enabled,omitempty"`

	// MaxDepth bounds the nesting of trace items.
	MaxDepth int `yaml:"max_depth,omitempty" toml:"max_depth,omitempty"`
}

type RenderOptions struct {
	// Color is one of auto, always or never.
	Color string `yaml:"color,omitempty" toml:"color,omitempty"`
}

type ExportOptions struct {
	// Database is the path of the exported signature store.
	// Empty disables recording.
	Database string `yaml:"database,omitempty" toml:"database,omitempty"`
}

// ExplainEnabled reports whether escape errors carry a trace.
func (o *Options) ExplainEnabled() bool {
	return o.Explain.Enabled == nil || *o.Explain.Enabled
}

// DefaultOptions returns the configuration used when no file is present.
func DefaultOptions() *Options {
	o := &Options{}
	o.setDefaults()
	return o
}

// LoadOptions reads and parses a regionck.yaml file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading options %s: %w", path, err)
	}
	return ParseOptions(data, path)
}

// ParseOptions parses configuration content from bytes. Files ending in
// .toml are read as TOML, everything else as YAML.
// The path argument is used for error messages and relative paths.
func ParseOptions(data []byte, path string) (*Options, error) {
	var o Options
	var err error
	if filepath.Ext(path) == ".toml" {
		err = toml.Unmarshal(data, &o)
	} else {
		err = yaml.Unmarshal(data, &o)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := o.validate(path); err != nil {
		return nil, err
	}
	o.setDefaults()
	if o.Exports.Database != "" && !filepath.IsAbs(o.Exports.Database) && o.Exports.Database != ":memory:" {
		o.Exports.Database = filepath.Join(filepath.Dir(path), o.Exports.Database)
	}
	return &o, nil
}

// FindOptions searches for regionck.yaml starting from dir and walking up
// to parent directories.
// Returns the path to the file and nil error if found,
// or empty string and nil error if not found.
func FindOptions(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range OptionsFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors.
func (o *Options) validate(path string) error {
	if o.Log.Verbosity < 0 {
		return fmt.Errorf("%s: log.verbosity must not be negative", path)
	}
	if o.Explain.MaxDepth < 0 {
		return fmt.Errorf("%s: explain.max_depth must not be negative", path)
	}
	switch o.Render.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: render.color must be one of %s, %s, %s; got %q",
			path, ColorAuto, ColorAlways, ColorNever, o.Render.Color)
	}
	return nil
}

// setDefaults fills in default values for omitted fields.
func (o *Options) setDefaults() {
	if o.Explain.MaxDepth == 0 {
		o.Explain.MaxDepth = DefaultExplainDepth
	}
	if o.Render.Color == "" {
		o.Render.Color = DefaultColorMode
	}
}
