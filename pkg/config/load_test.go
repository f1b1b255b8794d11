package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ajxudir/loxtest/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes content to .loxtest.yml in dir.
func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestDefaultConfig tests the embedded defaults.
//
// It verifies:
//   - Defaults match the original rlox workflow
//   - Failures are aggregated by default
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "cargo build", cfg.Build)
	assert.Equal(t, "./target/debug/rlox", cfg.Executable)
	assert.Equal(t, "tests", cfg.TestsDir)
	assert.Equal(t, "error", cfg.ErrorSubdir)
	assert.Equal(t, filepath.Join("tests", "error"), cfg.ErrorDir())
	assert.Equal(t, "*.lox", cfg.Pattern)
	assert.True(t, cfg.IsAggregateFailures())
	assert.Empty(t, cfg.Source())
}

// TestLoadConfig_NoFileUsesDefaults tests discovery without a config file.
func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.WorkingDir)
	assert.Equal(t, "cargo build", cfg.Build)
	assert.Empty(t, cfg.Source())
}

// TestLoadConfig_EmptyWorkDir tests that an empty working dir means ".".
func TestLoadConfig_EmptyWorkDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	if _, statErr := os.Stat(filepath.Join(wd, ConfigFileName)); statErr == nil {
		t.Skip("package directory has a config file")
	}

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.WorkingDir)
}

// TestLoadConfig_FileOverridesDefaults tests partial override of defaults.
//
// It verifies:
//   - Keys present in the file replace defaults
//   - Keys absent from the file keep their defaults
//   - working_dir defaults to the config file directory
func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "executable: ./target/release/rlox\naggregate_failures: false\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "./target/release/rlox", cfg.Executable)
	assert.False(t, cfg.IsAggregateFailures())
	assert.Equal(t, "cargo build", cfg.Build)
	assert.Equal(t, "tests", cfg.TestsDir)
	assert.Equal(t, dir, cfg.WorkingDir)
	assert.Equal(t, path, cfg.Source())
}

// TestLoadConfigFile_WorkingDir tests resolution of working_dir.
func TestLoadConfigFile_WorkingDir(t *testing.T) {
	t.Run("relative to config file", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "working_dir: interpreter\n")

		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "interpreter"), cfg.WorkingDir)
	})

	t.Run("absolute kept", func(t *testing.T) {
		dir := t.TempDir()
		abs := t.TempDir()
		path := writeConfig(t, dir, "working_dir: "+abs+"\n")

		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, abs, cfg.WorkingDir)
	})
}

// TestLoadConfigFile_EmptyFile tests that an empty file yields the defaults.
func TestLoadConfigFile_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "./target/debug/rlox", cfg.Executable)
}

// TestLoadConfigFile_Errors tests rejection of invalid files.
//
// It verifies:
//   - Unknown keys are rejected with line number and valid keys
//   - Type mismatches are rejected
//   - Syntax errors are rejected
//   - Semantic errors are rejected
//   - Missing and oversized files are errors
func TestLoadConfigFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{name: "unknown key", content: "build: make\nbogus: 1\n", contains: "unknown field 'bogus'"},
		{name: "type mismatch", content: "aggregate_failures: maybe\n", contains: "cannot unmarshal"},
		{name: "syntax error", content: "build: [unclosed\n", contains: "invalid YAML"},
		{name: "empty build", content: "build: ''\n", contains: "build: must not be empty"},
		{name: "unterminated quote in build", content: "build: cargo \"build\n", contains: "unterminated"},
		{name: "nested error subdir", content: "error_subdir: a/b\n", contains: "direct child"},
		{name: "bad pattern", content: "pattern: '[abc'\n", contains: "invalid pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := LoadConfig(dir)
			require.Error(t, err)
			_, ok := errors.IsValidationError(err)
			assert.True(t, ok, "expected validation error, got %T", err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}

	t.Run("unknown key lists valid keys", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "build: make\nexecutabel: ./x\n")

		_, err := LoadConfig(dir)
		ve, ok := errors.IsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "executabel", ve.Field)
		assert.Equal(t, 2, ve.Line)
		assert.Contains(t, ve.ValidKeys, "executable")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "# "+strings.Repeat("x", int(DefaultMaxConfigFileSize)))

		_, err := LoadConfigFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config file too large")
	})
}
