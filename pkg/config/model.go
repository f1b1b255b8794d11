// Package config loads the loxtest configuration.
//
// Configuration is optional. Without a .loxtest.yml or .loxtest.toml file
// in the working directory the built-in defaults drive the rlox workflow:
// build with "cargo build", run ./target/debug/rlox against tests/*.lox
// expecting success and tests/error/*.lox expecting failure.
package config

import "path/filepath"

// ConfigFileName is the file auto-discovered in the working directory.
const ConfigFileName = ".loxtest.yml"

// TOMLConfigFileName is discovered when ConfigFileName is absent. It suits
// projects that keep their settings next to Cargo.toml.
const TOMLConfigFileName = ".loxtest.toml"

// DefaultMaxConfigFileSize limits how much of a config file is read (1MB).
const DefaultMaxConfigFileSize int64 = 1 << 20

// Config is the root configuration structure.
type Config struct {
	// WorkingDir is the directory builds and test runs start in. Relative
	// values are resolved against the directory holding the config file.
	WorkingDir string `yaml:"working_dir,omitempty" toml:"working_dir"`

	// Build is the build command line, split with shell-like quoting.
	Build string `yaml:"build" toml:"build"`

	// Executable is the program under test. It receives one case path.
	Executable string `yaml:"executable" toml:"executable"`

	// TestsDir holds the cases expected to succeed.
	TestsDir string `yaml:"tests_dir" toml:"tests_dir"`

	// ErrorSubdir names the directory inside TestsDir holding the cases
	// expected to fail.
	ErrorSubdir string `yaml:"error_subdir" toml:"error_subdir"`

	// Pattern is a comma-separated glob filter on case file names.
	// Patterns starting with ! exclude.
	Pattern string `yaml:"pattern,omitempty" toml:"pattern"`

	// AggregateFailures controls whether failed verdicts make the run fail.
	// Default: true. When false only a build or launch failure fails the run.
	AggregateFailures *bool `yaml:"aggregate_failures,omitempty" toml:"aggregate_failures"`

	// source is the config file path, empty for built-in defaults.
	source string `yaml:"-" toml:"-"`
}

// ErrorDir returns the directory of cases expected to fail, relative to
// WorkingDir.
//
// Returns:
//   - string: TestsDir joined with ErrorSubdir
func (c *Config) ErrorDir() string {
	return filepath.Join(c.TestsDir, c.ErrorSubdir)
}

// IsAggregateFailures returns whether failed verdicts fail the run.
//
// Returns:
//   - bool: the configured value, true when unset
func (c *Config) IsAggregateFailures() bool {
	if c.AggregateFailures == nil {
		return true
	}
	return *c.AggregateFailures
}

// Source returns the path of the loaded config file, or "" for defaults.
func (c *Config) Source() string {
	return c.source
}
