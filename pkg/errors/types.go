package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
// These codes allow CI scripts to distinguish between different failure modes.
const (
	// ExitSuccess indicates the build succeeded and every case passed.
	ExitSuccess = 0

	// ExitTestFailure indicates at least one case produced a failed verdict.
	ExitTestFailure = 1

	// ExitBuildFailure indicates the build command exited non-zero and no
	// cases were executed.
	ExitBuildFailure = 2

	// ExitConfigError indicates a configuration or validation error.
	// The run could not start due to invalid config.
	ExitConfigError = 3

	// ExitLaunchFailure indicates a child process could not be started at all.
	ExitLaunchFailure = 4
)

// ExitError represents a command termination with a specific exit code.
//
// Use this error when a command needs to exit with a non-zero status
// while providing context about what went wrong.
//
// Fields:
//   - Code: Exit code (use constants ExitSuccess, ExitTestFailure, ...)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
//
// Example:
//
//	return &ExitError{
//	    Code:    ExitConfigError,
//	    Message: "failed to load config",
//	    Err:     err,
//	}
type ExitError struct {
	// Code is the exit code for the command.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
//
// Returns:
//   - string: The error message
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf creates an ExitError with the given code and formatted message.
//
// Parameters:
//   - code: Exit code
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - *ExitError: New exit error with formatted message
func NewExitErrorf(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// The lookup order is: nil → ExitSuccess, ExitError → its code,
// then the typed harness errors, and ExitTestFailure for anything else.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
//
// Example:
//
//	code := errors.GetExitCode(err)
//	os.Exit(code)
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if _, ok := IsLaunchError(err); ok {
		return ExitLaunchFailure
	}
	if _, ok := IsBuildFailure(err); ok {
		return ExitBuildFailure
	}
	if _, ok := IsValidationError(err); ok {
		return ExitConfigError
	}

	return ExitTestFailure
}

// IsExitError checks if err is an ExitError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ExitError: The ExitError if err is one, nil otherwise
//   - bool: true if err is an ExitError
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}

// BuildFailureError reports that the build command ran but exited non-zero.
//
// A build failure aborts the run before any case executes.
type BuildFailureError struct {
	// Command is the build command line as configured.
	Command string

	// ExitCode is the status the build command exited with.
	ExitCode int
}

// Error implements the error interface.
func (e *BuildFailureError) Error() string {
	return fmt.Sprintf("build failed: %q exited with status %d", e.Command, e.ExitCode)
}

// NewBuildFailureError creates a BuildFailureError.
func NewBuildFailureError(command string, exitCode int) *BuildFailureError {
	return &BuildFailureError{Command: command, ExitCode: exitCode}
}

// IsBuildFailure checks if err is a BuildFailureError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *BuildFailureError: The error if err is one, nil otherwise
//   - bool: true if err is a BuildFailureError
func IsBuildFailure(err error) (*BuildFailureError, bool) {
	var bfe *BuildFailureError
	if errors.As(err, &bfe) {
		return bfe, true
	}
	return nil, false
}

// LaunchError reports that a child process could not be started.
//
// This is distinct from a process that started and exited non-zero: nothing
// meaningful can proceed once the build tool or the executable under test
// cannot be launched, so the run stops immediately.
//
// Fields:
//   - Command: The program that failed to start
//   - Err: The underlying os/exec error
type LaunchError struct {
	Command string
	Err     error
}

// Error implements the error interface.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Command, e.Err)
}

// Unwrap returns the underlying os/exec error.
func (e *LaunchError) Unwrap() error {
	return e.Err
}

// NewLaunchError creates a LaunchError for the given command.
func NewLaunchError(command string, err error) *LaunchError {
	return &LaunchError{Command: command, Err: err}
}

// IsLaunchError checks if err is a LaunchError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *LaunchError: The LaunchError if err is one, nil otherwise
//   - bool: true if err is a LaunchError
func IsLaunchError(err error) (*LaunchError, bool) {
	var le *LaunchError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// TestFailureError summarizes a run in which some verdicts failed.
//
// Unexpected failures (Normal cases exiting non-zero) and missing expected
// failures (ExpectError cases exiting zero) are recorded as data during the
// run and only surface as this single error once every case has executed.
//
// Fields:
//   - Failed: Number of failed verdicts
//   - Total: Number of executed cases
//   - Cases: Paths of the failed cases in execution order
type TestFailureError struct {
	Failed int
	Total  int
	Cases  []string
}

// Error implements the error interface.
//
// Returns:
//   - string: Summary in the format "X of Y test cases failed"
func (e *TestFailureError) Error() string {
	return fmt.Sprintf("%d of %d test cases failed", e.Failed, e.Total)
}

// NewTestFailureError creates a TestFailureError.
//
// Parameters:
//   - failed: Number of failed verdicts
//   - total: Number of executed cases
//   - cases: Paths of the failed cases
//
// Returns:
//   - *TestFailureError: New test failure error
func NewTestFailureError(failed, total int, cases []string) *TestFailureError {
	return &TestFailureError{Failed: failed, Total: total, Cases: cases}
}

// IsTestFailure checks if err is a TestFailureError and returns it.
func IsTestFailure(err error) (*TestFailureError, bool) {
	var tfe *TestFailureError
	if errors.As(err, &tfe) {
		return tfe, true
	}
	return nil, false
}
