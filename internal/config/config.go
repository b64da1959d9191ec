package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level modfuse.yaml configuration.
type Config struct {
	// Entry is the module the bundle starts from.
	Entry string `yaml:"entry"`

	// Output is the bundle file to write; empty means stdout.
	Output string `yaml:"output,omitempty"`

	// Separator overrides the namespace separator between module id
	// and binding name. Defaults to "$$".
	Separator string `yaml:"separator,omitempty"`

	// Cache is the parse-metadata cache path. "off" disables caching.
	Cache string `yaml:"cache,omitempty"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Entry == "" {
		return fmt.Errorf("entry is required")
	}
	if c.Separator != "" && strings.ContainsAny(c.Separator, " \t\n") {
		return fmt.Errorf("separator must not contain whitespace")
	}
	return nil
}

// EffectiveSeparator returns the configured separator or the default.
func (c *Config) EffectiveSeparator() string {
	if c.Separator == "" {
		return DefaultSeparator
	}
	return c.Separator
}
