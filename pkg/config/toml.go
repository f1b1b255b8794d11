package config

import (
	stderrors "errors"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/ajxudir/loxtest/pkg/errors"
	"github.com/ajxudir/loxtest/pkg/verbose"
)

// decodeTOMLConfig decodes TOML data over the built-in defaults.
//
// The TOML decoder has no strict mode, so keys left undecoded are reported
// afterwards as unknown fields, matching the YAML behavior.
//
// Parameters:
//   - data: TOML configuration data as bytes
//
// Returns:
//   - *Config: the decoded configuration
//   - *errors.ValidationResult: decode errors, empty on success
func decodeTOMLConfig(data []byte) (*Config, *errors.ValidationResult) {
	result := errors.NewValidationResult()
	cfg := loadDefaultConfig()

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		verbose.Printf("Config validation FAILED: TOML decode error: %v", err)
		result.AddError(describeTOMLError(err))
		return cfg, result
	}

	undecoded := md.Undecoded()
	keys := make([]string, 0, len(undecoded))
	for _, key := range undecoded {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)
	for _, key := range keys {
		result.AddError(&errors.ValidationError{
			Field:     key,
			Message:   fmt.Sprintf("unknown field '%s'", key),
			ValidKeys: validKeys,
		})
	}
	return cfg, result
}

// describeTOMLError converts a TOML decode error into a ValidationError.
func describeTOMLError(err error) *errors.ValidationError {
	var perr toml.ParseError
	if stderrors.As(err, &perr) {
		return &errors.ValidationError{
			Field:   perr.LastKey,
			Message: fmt.Sprintf("invalid TOML: %s", perr.Message),
			Line:    perr.Position.Line,
		}
	}
	return &errors.ValidationError{Message: fmt.Sprintf("invalid TOML: %v", err)}
}
