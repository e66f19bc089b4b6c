// Package config loads the small YAML-driven settings the CLI and
// long-running hosts use to configure an Engine, grounded on
// perbu-vcltest's and mrz1836-mage-x's gopkg.in/yaml.v3 config loaders.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the subset of engine behavior a host can tune without
// recompiling: which builtin categories are registered, the default
// processString recursion depth, and whether evaluate() defaults to
// parse-only (syntax-checking) mode.
type Config struct {
	EnabledCategories []string `yaml:"enabled_categories"`
	RecursionLevels   int      `yaml:"recursion_levels"`
	ParseOnlyDefault  bool     `yaml:"parse_only_default"`
}

// defaultCategories mirrors registry.registerAll's grouping.
var defaultCategories = []string{"math", "convert", "string", "encoding", "date", "survey"}

// Load reads and parses a YAML configuration file, applying defaults
// for any field the file omits.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.EnabledCategories) == 0 {
		cfg.EnabledCategories = defaultCategories
	}
	if cfg.RecursionLevels == 0 {
		cfg.RecursionLevels = 1
	}
}

// CategoryEnabled reports whether name is among cfg's enabled builtin
// categories.
func (c *Config) CategoryEnabled(name string) bool {
	for _, n := range c.EnabledCategories {
		if n == name {
			return true
		}
	}
	return false
}
