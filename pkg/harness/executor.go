package harness

import (
	"time"

	"github.com/ajxudir/loxtest/pkg/catalog"
	"github.com/ajxudir/loxtest/pkg/cmdexec"
	"github.com/ajxudir/loxtest/pkg/verbose"
	"github.com/ajxudir/loxtest/pkg/warnings"
)

// Executor runs single test cases against the executable under test.
//
// Fields:
//   - invoker: Runs the executable
//   - executable: Program under test, given one case path per run
//   - verbosity: Output mode for primary runs
type Executor struct {
	invoker    cmdexec.Invoker
	executable string
	verbosity  Verbosity
}

// Verify that Executor implements the CaseExecutor interface.
var _ CaseExecutor = (*Executor)(nil)

// NewExecutor creates an Executor.
//
// Parameters:
//   - invoker: Runs child processes
//   - executable: Program under test
//   - verbosity: Quiet suppresses primary runs, Verbose passes them through
//
// Returns:
//   - *Executor: A new executor
func NewExecutor(invoker cmdexec.Invoker, executable string, verbosity Verbosity) *Executor {
	return &Executor{
		invoker:    invoker,
		executable: executable,
		verbosity:  verbosity,
	}
}

// Execute runs one case and judges it.
//
// It performs the following operations:
//   - Step 1: Run the executable with the case path as its only argument
//   - Step 2: Apply the category's pass rule to the exit status
//   - Step 3: On a failed ExpectError verdict, warn that the case exited 0
//   - Step 4: On any failed verdict, re-run the case once with output passed through
//
// The diagnostic run never changes the verdict.
//
// Parameters:
//   - tc: The case to run
//
// Returns:
//   - Verdict: The primary verdict, or the zero Verdict when the primary
//     run could not start
//   - error: *errors.LaunchError when either run could not be started
func (e *Executor) Execute(tc catalog.TestCase) (Verdict, error) {
	start := time.Now()
	code, err := e.invoker.Run(e.executable, []string{tc.Path}, e.verbosity.Mode(), tc.Path)
	duration := time.Since(start)
	if err != nil {
		return Verdict{}, err
	}

	verdict := Verdict{
		Case:     tc,
		Passed:   Judge(tc.Category, ExecutionResult{ExitCode: code}),
		ExitCode: code,
		Duration: duration,
	}
	verbose.Printf("Verdict for %s (%s): exit %d, passed=%t", tc.Path, tc.Category, code, verdict.Passed)

	if verdict.Passed {
		return verdict, nil
	}

	if tc.Category == catalog.ExpectError {
		warnings.Linef("expected an error but %s exited 0", tc.Path)
	}
	if err := e.Rerun(tc); err != nil {
		return verdict, err
	}
	verdict.Diagnosed = true
	return verdict, nil
}

// Rerun executes a case again with output passed through, regardless of
// verbosity. The exit status of the diagnostic run is ignored.
//
// Parameters:
//   - tc: The case to re-run
//
// Returns:
//   - error: *errors.LaunchError when the executable could not be started
func (e *Executor) Rerun(tc catalog.TestCase) error {
	verbose.Printf("Diagnostic re-run of %s", tc.Path)
	_, err := e.invoker.Run(e.executable, []string{tc.Path}, cmdexec.ModePassthrough, tc.Path)
	return err
}
