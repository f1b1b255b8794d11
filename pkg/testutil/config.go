package testutil

import (
	"github.com/ajxudir/loxtest/pkg/config"
)

// ConfigBuilder provides a fluent API for building test configurations.
//
// It starts from the built-in defaults so tests only state what differs.
type ConfigBuilder struct {
	cfg *config.Config
}

// NewConfig creates a new ConfigBuilder from the built-in defaults.
//
// Returns:
//   - *ConfigBuilder: New builder instance ready for method chaining
func NewConfig() *ConfigBuilder {
	cfg := config.DefaultConfig()
	cfg.WorkingDir = "."
	return &ConfigBuilder{cfg: cfg}
}

// WithWorkingDir sets the directory builds and cases run in.
func (b *ConfigBuilder) WithWorkingDir(dir string) *ConfigBuilder {
	b.cfg.WorkingDir = dir
	return b
}

// WithBuild sets the build command line.
func (b *ConfigBuilder) WithBuild(cmd string) *ConfigBuilder {
	b.cfg.Build = cmd
	return b
}

// WithExecutable sets the program under test.
func (b *ConfigBuilder) WithExecutable(path string) *ConfigBuilder {
	b.cfg.Executable = path
	return b
}

// WithPattern sets the case file name filter.
func (b *ConfigBuilder) WithPattern(pattern string) *ConfigBuilder {
	b.cfg.Pattern = pattern
	return b
}

// WithAggregateFailures sets whether failed verdicts fail the run.
func (b *ConfigBuilder) WithAggregateFailures(aggregate bool) *ConfigBuilder {
	b.cfg.AggregateFailures = &aggregate
	return b
}

// Build returns the built configuration.
//
// Returns:
//   - *config.Config: The configured instance
func (b *ConfigBuilder) Build() *config.Config {
	return b.cfg
}
