package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ajxudir/loxtest/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTOMLConfig writes content to .loxtest.toml in dir.
func writeTOMLConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, TOMLConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadConfig_TOML tests discovery and decoding of .loxtest.toml.
//
// It verifies:
//   - The TOML file is found when no YAML file exists
//   - Keys override the defaults and absent keys keep them
func TestLoadConfig_TOML(t *testing.T) {
	dir := t.TempDir()
	path := writeTOMLConfig(t, dir, `
build = "cargo build --release"
executable = "./target/release/rlox"
aggregate_failures = false
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "cargo build --release", cfg.Build)
	assert.Equal(t, "./target/release/rlox", cfg.Executable)
	assert.False(t, cfg.IsAggregateFailures())
	assert.Equal(t, "tests", cfg.TestsDir)
	assert.Equal(t, "*.lox", cfg.Pattern)
	assert.Equal(t, dir, cfg.WorkingDir)
	assert.Equal(t, path, cfg.Source())
}

// TestLoadConfig_YAMLPreferredOverTOML tests the discovery order.
func TestLoadConfig_YAMLPreferredOverTOML(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeConfig(t, dir, "build: make\n")
	writeTOMLConfig(t, dir, "build = \"ninja\"\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "make", cfg.Build)
	assert.Equal(t, yamlPath, cfg.Source())
}

// TestLoadConfigFile_TOMLEmpty tests that an empty TOML file yields defaults.
func TestLoadConfigFile_TOMLEmpty(t *testing.T) {
	path := writeTOMLConfig(t, t.TempDir(), "")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cargo build", cfg.Build)
	assert.True(t, cfg.IsAggregateFailures())
}

// TestLoadConfigFile_TOMLErrors tests rejection of invalid TOML files.
func TestLoadConfigFile_TOMLErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{name: "syntax error", content: "build = \"cargo\nexecutable = 1\n", contains: "invalid TOML"},
		{name: "type mismatch", content: "aggregate_failures = \"maybe\"\n", contains: "invalid TOML"},
		{name: "unknown key", content: "build = \"make\"\nbogus = 1\n", contains: "unknown field 'bogus'"},
		{name: "empty executable", content: "executable = \"\"\n", contains: "executable: must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeTOMLConfig(t, dir, tt.content)

			_, err := LoadConfig(dir)
			require.Error(t, err)
			_, ok := errors.IsValidationError(err)
			assert.True(t, ok, "expected validation error, got %T", err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}

	t.Run("unknown key lists valid keys", func(t *testing.T) {
		dir := t.TempDir()
		writeTOMLConfig(t, dir, "executabel = \"./x\"\n")

		_, err := LoadConfig(dir)
		ve, ok := errors.IsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "executabel", ve.Field)
		assert.Contains(t, ve.ValidKeys, "executable")
	})

	t.Run("syntax error reports line", func(t *testing.T) {
		dir := t.TempDir()
		writeTOMLConfig(t, dir, "build = \"make\"\nexecutable = \n")

		_, err := LoadConfig(dir)
		ve, ok := errors.IsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, 2, ve.Line)
	})
}
