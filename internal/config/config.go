// Package config loads the datutils CLI configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/discochess/datutils"
)

// Config holds settings shared by every datutils command.
type Config struct {
	Format  string `yaml:"format"`  // Envelope format: msgpack or cbor
	Scheme  string `yaml:"scheme"`  // Forced compression scheme; empty derives it from the path
	Output  string `yaml:"output"`  // Inspect output: json or yaml
	Verbose bool   `yaml:"verbose"` // Debug logging
	Metrics bool   `yaml:"metrics"` // Print collected metrics on exit
}

// Default returns a Config with the library defaults.
func Default() *Config {
	return &Config{
		Format: datutils.FormatMsgpack.String(),
		Output: "json",
	}
}

// Load reads a YAML file over the defaults and validates the result.
// Keys missing from the file keep their default values.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that every name in c is known.
func (c *Config) Validate() error {
	if _, err := datutils.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if c.Scheme != "" {
		if _, err := datutils.ParseScheme(c.Scheme); err != nil {
			return fmt.Errorf("scheme: %w", err)
		}
	}
	switch c.Output {
	case "json", "yaml":
	default:
		return fmt.Errorf("output must be json or yaml, got %q", c.Output)
	}
	return nil
}

// Options converts c into client options. c must be valid.
func (c *Config) Options() []datutils.Option {
	var opts []datutils.Option
	if f, err := datutils.ParseFormat(c.Format); err == nil {
		opts = append(opts, datutils.WithFormat(f))
	}
	if c.Scheme != "" {
		if s, err := datutils.ParseScheme(c.Scheme); err == nil {
			opts = append(opts, datutils.WithScheme(s))
		}
	}
	return opts
}
