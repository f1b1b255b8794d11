package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajxudir/loxtest/pkg/errors"
	"github.com/ajxudir/loxtest/pkg/verbose"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads the configuration for a run started in workDir.
//
// The first of .loxtest.yml and .loxtest.toml found in workDir is loaded on
// top of the built-in defaults. Otherwise the built-in defaults are used as is.
//
// Parameters:
//   - workDir: directory to look for a config file in; empty means "."
//
// Returns:
//   - *Config: the loaded and validated configuration
//   - error: *errors.ValidationError for invalid config, or an I/O error
func LoadConfig(workDir string) (*Config, error) {
	if workDir == "" {
		workDir = "."
	}

	for _, name := range []string{ConfigFileName, TOMLConfigFileName} {
		path := filepath.Join(workDir, name)
		_, err := os.Stat(path)
		switch {
		case err == nil:
			verbose.Infof("Found local config: %s", path)
			return LoadConfigFile(path)
		case !stderrors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := loadDefaultConfig()
	cfg.WorkingDir = workDir
	if err := cfg.Validate().Err(); err != nil {
		return nil, err
	}
	verbose.ConfigLoaded("")
	return cfg, nil
}

// LoadConfigFile loads a config file on top of the built-in defaults.
//
// Files ending in .toml are decoded as TOML, anything else as YAML.
// Keys missing from the file keep their default values. Unknown keys are
// rejected. A relative working_dir is resolved against the file's directory,
// and an absent one defaults to that directory.
//
// Parameters:
//   - path: path to the config file
//
// Returns:
//   - *Config: the loaded configuration
//   - error: error if the file is too large, unreadable, or invalid
func LoadConfigFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if info.Size() > DefaultMaxConfigFileSize {
		return nil, errors.NewConfigValidationError("",
			fmt.Sprintf("config file too large: %d bytes (max %d bytes)", info.Size(), DefaultMaxConfigFileSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	decode := decodeConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		decode = decodeTOMLConfig
	}

	cfg, result := decode(data)
	if result.HasErrors() {
		return nil, result.Err()
	}

	cfg.source = path
	base := filepath.Dir(path)
	switch {
	case cfg.WorkingDir == "":
		cfg.WorkingDir = base
	case !filepath.IsAbs(cfg.WorkingDir):
		cfg.WorkingDir = filepath.Join(base, cfg.WorkingDir)
	}

	result = cfg.Validate()
	for _, w := range result.Warnings {
		verbose.Printf("Config warning: %s", w)
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	verbose.ConfigLoaded(path)
	return cfg, nil
}

// decodeConfig strictly decodes YAML data over the built-in defaults.
//
// An empty document is valid and yields the defaults.
//
// Parameters:
//   - data: YAML configuration data as bytes
//
// Returns:
//   - *Config: the decoded configuration
//   - *errors.ValidationResult: decode errors, empty on success
func decodeConfig(data []byte) (*Config, *errors.ValidationResult) {
	result := errors.NewValidationResult()
	cfg := loadDefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		verbose.Printf("Config validation FAILED: YAML decode error: %v", err)
		result.AddError(describeDecodeError(err))
	}
	return cfg, result
}
