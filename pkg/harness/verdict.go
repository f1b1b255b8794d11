// Package harness runs a build followed by the test corpus and judges
// each case.
//
// The Orchestrator sequences the run as an explicit state machine: it
// builds the target, executes every Normal case, then every ExpectError
// case, and aggregates the verdicts. The Executor runs a single case,
// applies its category's pass rule and, when the verdict fails, performs
// one forced diagnostic re-run with output passed through.
//
// Everything is sequential. One child process runs at a time.
package harness

import (
	"time"

	"github.com/ajxudir/loxtest/pkg/catalog"
	"github.com/ajxudir/loxtest/pkg/cmdexec"
)

// Verbosity controls whether primary runs show their output.
//
// It is decided once from the command line and passed to the Executor and
// Orchestrator when they are created.
type Verbosity int

const (
	// Quiet runs the build and the primary case executions suppressed.
	Quiet Verbosity = iota

	// Verbose passes the output of every run through.
	Verbose
)

// VerbosityFromFlag maps the --verbose flag to a Verbosity.
func VerbosityFromFlag(verbose bool) Verbosity {
	if verbose {
		return Verbose
	}
	return Quiet
}

// Mode returns the invoker mode for primary runs at this verbosity.
func (v Verbosity) Mode() cmdexec.Mode {
	if v == Verbose {
		return cmdexec.ModePassthrough
	}
	return cmdexec.ModeSuppressed
}

// String returns "quiet" or "verbose".
func (v Verbosity) String() string {
	if v == Verbose {
		return "verbose"
	}
	return "quiet"
}

// ExecutionResult is the outcome of running the executable once.
type ExecutionResult struct {
	ExitCode int
}

// Succeeded reports whether the process exited with status 0.
func (r ExecutionResult) Succeeded() bool {
	return r.ExitCode == 0
}

// Judge applies the pass rule of a category to an execution result.
//
// A Normal case passes iff it succeeded. An ExpectError case passes iff it
// did not succeed. Any non-zero status counts as not succeeded.
//
// Parameters:
//   - category: The case's expected outcome
//   - result: The primary execution result
//
// Returns:
//   - bool: true if the case passed
func Judge(category catalog.Category, result ExecutionResult) bool {
	if category == catalog.ExpectError {
		return !result.Succeeded()
	}
	return result.Succeeded()
}

// Verdict is the judged outcome of one test case.
//
// Fields:
//   - Case: The test case that ran
//   - Passed: Result of the category's pass rule
//   - ExitCode: Exit status of the primary execution, for display only
//   - Duration: Wall time of the primary execution, for display only
//   - Diagnosed: Whether a diagnostic re-run was performed
type Verdict struct {
	Case      catalog.TestCase
	Passed    bool
	ExitCode  int
	Duration  time.Duration
	Diagnosed bool
}
