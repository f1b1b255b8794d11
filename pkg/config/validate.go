package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ajxudir/loxtest/pkg/cmdexec"
	"github.com/ajxudir/loxtest/pkg/errors"
	"github.com/ajxudir/loxtest/pkg/utils"
)

// validKeys lists every key accepted in .loxtest.yml.
var validKeys = []string{
	"working_dir", "build", "executable", "tests_dir", "error_subdir", "pattern", "aggregate_failures",
}

var lineNumberRe = regexp.MustCompile(`line (\d+):`)

// Validate checks a loaded Config for required fields and valid values.
//
// Returns:
//   - *errors.ValidationResult: errors and warnings found
func (c *Config) Validate() *errors.ValidationResult {
	result := errors.NewValidationResult()

	if strings.TrimSpace(c.Build) == "" {
		result.AddError(&errors.ValidationError{
			Field:    "build",
			Message:  "must not be empty",
			Expected: "a command line such as 'cargo build'",
		})
	} else if _, _, err := cmdexec.ParseCommand(c.Build); err != nil {
		result.AddError(&errors.ValidationError{
			Field:   "build",
			Message: err.Error(),
			Hint:    "close the quote or escape it with a backslash",
		})
	}

	if strings.TrimSpace(c.Executable) == "" {
		result.AddError(&errors.ValidationError{
			Field:    "executable",
			Message:  "must not be empty",
			Expected: "path to the program under test, e.g. ./target/debug/rlox",
		})
	}

	if strings.TrimSpace(c.TestsDir) == "" {
		result.AddError(&errors.ValidationError{
			Field:    "tests_dir",
			Message:  "must not be empty",
			Expected: "directory of cases expected to succeed, e.g. tests",
		})
	}

	validateErrorSubdir(c.ErrorSubdir, result)

	if _, err := utils.ParseFilePatterns(c.Pattern); err != nil {
		result.AddError(&errors.ValidationError{
			Field:    "pattern",
			Message:  err.Error(),
			Expected: "comma-separated glob patterns, e.g. '*.lox,!scratch*'",
		})
	}

	if !c.IsAggregateFailures() {
		result.AddWarning("aggregate_failures is false: failed cases will not change the exit status")
	}

	return result
}

// validateErrorSubdir requires a single directory name nested in tests_dir.
func validateErrorSubdir(subdir string, result *errors.ValidationResult) {
	expected := "a single directory name inside tests_dir, e.g. error"
	switch {
	case strings.TrimSpace(subdir) == "":
		result.AddError(&errors.ValidationError{Field: "error_subdir", Message: "must not be empty", Expected: expected})
	case subdir == "." || subdir == "..":
		result.AddError(&errors.ValidationError{Field: "error_subdir", Message: fmt.Sprintf("%q is not a subdirectory", subdir), Expected: expected})
	case strings.ContainsAny(subdir, `/\`) || filepath.IsAbs(subdir):
		result.AddError(&errors.ValidationError{Field: "error_subdir", Message: fmt.Sprintf("%q must be a direct child of tests_dir", subdir), Expected: expected})
	}
}

// describeDecodeError converts a yaml.v3 decode error into a ValidationError.
//
// Parameters:
//   - err: error returned by yaml.Decoder.Decode
//
// Returns:
//   - *errors.ValidationError: error with field, line and valid keys when known
func describeDecodeError(err error) *errors.ValidationError {
	errMsg := err.Error()
	line := extractLineNumber(errMsg)

	switch {
	case strings.Contains(errMsg, "field ") && strings.Contains(errMsg, "not found"):
		field := extractField(errMsg)
		return &errors.ValidationError{
			Field:     field,
			Message:   fmt.Sprintf("unknown field '%s'", field),
			Line:      line,
			ValidKeys: validKeys,
		}
	case strings.Contains(errMsg, "cannot unmarshal"):
		return &errors.ValidationError{
			Message:  errMsg,
			Expected: extractExpectedType(errMsg),
		}
	default:
		return &errors.ValidationError{
			Message: fmt.Sprintf("invalid YAML: %s", errMsg),
			Line:    line,
		}
	}
}

// extractField extracts the field name from a yaml "field X not found" error.
func extractField(errMsg string) string {
	parts := strings.SplitN(errMsg, "field ", 2)
	if len(parts) < 2 {
		return ""
	}
	fieldPart := parts[1]
	if idx := strings.Index(fieldPart, " "); idx > 0 {
		return fieldPart[:idx]
	}
	return fieldPart
}

// extractLineNumber extracts the line number from a YAML error message.
//
// Returns:
//   - int: the line number, or 0 if not found
func extractLineNumber(errMsg string) int {
	matches := lineNumberRe.FindStringSubmatch(errMsg)
	if len(matches) >= 2 {
		var lineNum int
		_, _ = fmt.Sscanf(matches[1], "%d", &lineNum)
		return lineNum
	}
	return 0
}

// extractExpectedType extracts the target type from "cannot unmarshal X into Y".
func extractExpectedType(errMsg string) string {
	if idx := strings.Index(errMsg, "into "); idx >= 0 {
		typePart := errMsg[idx+5:]
		if endIdx := strings.IndexAny(typePart, " \n"); endIdx > 0 {
			return typePart[:endIdx]
		}
		return typePart
	}
	return ""
}
