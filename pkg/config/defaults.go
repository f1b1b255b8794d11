package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultConfigYAML string

// loadDefaultConfig loads the embedded default configuration.
//
// The embedded file is part of the binary, so a decode failure is a
// programming error and panics.
//
// Returns:
//   - *Config: the default configuration
func loadDefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err != nil {
		panic("config: invalid embedded default.yml: " + err.Error())
	}
	return &cfg
}

// DefaultConfig returns a fresh copy of the built-in configuration.
func DefaultConfig() *Config {
	return loadDefaultConfig()
}
