package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation failure.
//
// Fields:
//   - Field: Name of the invalid field or setting
//   - Message: Description of what's wrong
//   - Expected: What the valid value should look like
//   - ValidKeys: List of valid options (for unknown-field errors)
//   - Line: Line number in the config file, 0 if unknown
//   - Hint: Actionable hint for fixing the error
//
// Example:
//
//	return &ValidationError{
//	    Field:    "tests_dir",
//	    Message:  "must not be empty",
//	    Expected: "a directory path relative to working_dir",
//	}
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string

	// Message describes what is wrong with the field.
	Message string

	// Expected describes what a valid value should look like.
	Expected string

	// ValidKeys lists valid options for enum-like fields.
	ValidKeys []string

	// Line is the 1-based line in the config file, 0 when unknown.
	Line int

	// Hint provides an actionable suggestion for fixing the error.
	Hint string
}

// Error implements the error interface.
//
// Returns:
//   - string: "field: message" when a field is known, otherwise the message
func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.Field != "" {
		sb.WriteString(fmt.Sprintf("%s: %s", e.Field, e.Message))
	} else {
		sb.WriteString(e.Message)
	}
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf(" (line %d)", e.Line))
	}
	return sb.String()
}

// VerboseError returns a detailed error message with schema hints.
//
// Returns:
//   - string: Detailed error with expected values and hints
func (e *ValidationError) VerboseError() string {
	var sb strings.Builder

	sb.WriteString(e.Error())

	if e.Expected != "" {
		sb.WriteString(fmt.Sprintf("\n    Expected: %s", e.Expected))
	}

	if len(e.ValidKeys) > 0 {
		sb.WriteString(fmt.Sprintf("\n    Valid keys: %s", strings.Join(e.ValidKeys, ", ")))
	}

	if e.Hint != "" {
		sb.WriteString(fmt.Sprintf("\n    Hint: %s", e.Hint))
	}

	return sb.String()
}

// IsValidationError checks if err is a ValidationError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ValidationError: The ValidationError if err is one, nil otherwise
//   - bool: true if err is a ValidationError
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// NewConfigValidationError creates a ValidationError for configuration issues.
//
// Parameters:
//   - field: The field name that failed validation
//   - message: Description of the error
//
// Returns:
//   - *ValidationError: New validation error
func NewConfigValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ValidationResult holds the results of config validation.
//
// Fields:
//   - Errors: Slice of validation errors
//   - Warnings: Slice of warning messages
type ValidationResult struct {
	// Errors contains all validation errors encountered.
	Errors []*ValidationError

	// Warnings contains non-fatal warning messages.
	Warnings []string
}

// NewValidationResult creates a new empty ValidationResult.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Errors:   make([]*ValidationError, 0),
		Warnings: make([]string, 0),
	}
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AddError adds a validation error to the result.
func (r *ValidationResult) AddError(err *ValidationError) {
	r.Errors = append(r.Errors, err)
}

// AddWarning adds a warning message to the result.
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Err returns the first validation error, or nil when the result is clean.
//
// Returns:
//   - error: The first *ValidationError, nil if there are none
func (r *ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

// ErrorMessage returns a formatted error message for all validation errors.
//
// Parameters:
//   - verbose: If true, includes expected values and hints per error
//
// Returns:
//   - string: Formatted error messages, or empty string if no errors
func (r *ValidationResult) ErrorMessage(verbose bool) string {
	if len(r.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Validation failed:\n")
	for _, err := range r.Errors {
		if verbose {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.VerboseError()))
		} else {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}
	return sb.String()
}
