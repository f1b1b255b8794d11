package harness

import (
	"fmt"
	"time"

	"github.com/ajxudir/loxtest/pkg/catalog"
	"github.com/ajxudir/loxtest/pkg/cmdexec"
	"github.com/ajxudir/loxtest/pkg/config"
	"github.com/ajxudir/loxtest/pkg/errors"
	"github.com/ajxudir/loxtest/pkg/verbose"
)

// State is a stage of a run.
type State int

const (
	// StateIdle is the state before Run is called.
	StateIdle State = iota

	// StateBuilding runs the build command.
	StateBuilding

	// StateRunningNormal executes the cases expected to succeed.
	StateRunningNormal

	// StateRunningErrorExpected executes the cases expected to fail.
	StateRunningErrorExpected

	// StateDone is reached once every case has a verdict.
	StateDone

	// StateAborted is reached from StateBuilding when the build fails.
	// No case executes after it.
	StateAborted
)

// String returns the state name used in debug output.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateBuilding:
		return "Building"
	case StateRunningNormal:
		return "RunningNormal"
	case StateRunningErrorExpected:
		return "RunningErrorExpected"
	case StateDone:
		return "Done"
	case StateAborted:
		return "Aborted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// TransitionHook is called after every state change.
type TransitionHook func(from, to State)

// Orchestrator sequences one run: build, Normal cases, ExpectError cases.
//
// A build that exits non-zero aborts the run before any case executes.
// Individual failed verdicts never stop a loop. A launch failure of the
// build tool or the executable stops the run immediately.
//
// Fields:
//   - invoker: Runs the build command
//   - cases: Provides the cases to execute
//   - executor: Runs and judges each case
//   - buildCmd: Build command line as configured
//   - verbosity: Output mode for the build
//   - aggregate: Whether failed verdicts fail the run
//   - state: Current state
//   - hook: Optional observer of state changes
type Orchestrator struct {
	invoker   cmdexec.Invoker
	cases     CaseSource
	executor  CaseExecutor
	buildCmd  string
	verbosity Verbosity
	aggregate bool
	state     State
	hook      TransitionHook
}

// NewOrchestrator creates an Orchestrator for one run.
//
// Parameters:
//   - cfg: Loaded configuration (build command, executable, aggregation policy)
//   - invoker: Runs the build and every case
//   - cases: Source of the Normal and ExpectError cases
//   - verbosity: Output mode for the build and primary case runs
//
// Returns:
//   - *Orchestrator: A new orchestrator in StateIdle
func NewOrchestrator(cfg *config.Config, invoker cmdexec.Invoker, cases CaseSource, verbosity Verbosity) *Orchestrator {
	return &Orchestrator{
		invoker:   invoker,
		cases:     cases,
		executor:  NewExecutor(invoker, cfg.Executable, verbosity),
		buildCmd:  cfg.Build,
		verbosity: verbosity,
		aggregate: cfg.IsAggregateFailures(),
		state:     StateIdle,
	}
}

// OnTransition registers a hook called after every state change.
func (o *Orchestrator) OnTransition(hook TransitionHook) {
	o.hook = hook
}

// State returns the current state.
func (o *Orchestrator) State() State {
	return o.state
}

// Run executes the whole pipeline once.
//
// It performs the following operations:
//   - Step 1: Enumerate the Normal and ExpectError cases
//   - Step 2: Build; a non-zero exit moves to StateAborted
//   - Step 3: Execute every Normal case in order
//   - Step 4: Execute every ExpectError case in order
//   - Step 5: Move to StateDone and aggregate the verdicts
//
// Returns:
//   - *Result: Verdicts collected so far; nil only if enumeration failed
//   - error: *errors.BuildFailureError, *errors.LaunchError,
//     *errors.TestFailureError when failures are aggregated, or nil
func (o *Orchestrator) Run() (*Result, error) {
	if o.state != StateIdle {
		return nil, fmt.Errorf("run already started (state %s)", o.state)
	}

	normal, expectError, err := o.cases.All()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{BuildCommand: o.buildCmd}
	finish := func() *Result {
		result.State = o.state
		result.TotalDuration = time.Since(start)
		return result
	}

	o.transition(StateBuilding)
	code, err := o.build()
	result.BuildExitCode = code
	if err != nil {
		o.transition(StateAborted)
		return finish(), err
	}

	o.transition(StateRunningNormal)
	result.Normal, err = o.runCases(normal)
	if err != nil {
		return finish(), err
	}

	o.transition(StateRunningErrorExpected)
	result.ExpectError, err = o.runCases(expectError)
	if err != nil {
		return finish(), err
	}

	o.transition(StateDone)
	finish()

	if result.Passed() {
		return result, nil
	}
	if !o.aggregate {
		verbose.Printf("%d failed case(s) not counted: aggregate_failures is false", result.FailedCount())
		return result, nil
	}
	return result, errors.NewTestFailureError(result.FailedCount(), result.Total(), result.failedPaths())
}

// build runs the configured build command.
//
// Returns:
//   - int: Exit code of the build, -1 if it did not run
//   - error: *errors.BuildFailureError on non-zero exit, *errors.LaunchError
//     when the build tool could not start, or a validation error for an
//     unparseable command line
func (o *Orchestrator) build() (int, error) {
	program, args, err := cmdexec.ParseCommand(o.buildCmd)
	if err != nil {
		return -1, errors.NewConfigValidationError("build", err.Error())
	}

	code, err := o.invoker.Run(program, args, o.verbosity.Mode(), o.buildCmd)
	if err != nil {
		return code, err
	}
	if code != 0 {
		return code, errors.NewBuildFailureError(o.buildCmd, code)
	}
	return code, nil
}

// runCases executes cases in order without stopping on failed verdicts.
//
// Returns:
//   - []Verdict: One verdict per case judged, including one whose
//     diagnostic re-run failed to launch
//   - error: The first launch failure, which stops the loop
func (o *Orchestrator) runCases(cases []catalog.TestCase) ([]Verdict, error) {
	verdicts := make([]Verdict, 0, len(cases))
	for _, tc := range cases {
		v, err := o.executor.Execute(tc)
		// A case judged before its diagnostic run failed to launch still counts.
		if v.Case.Path != "" {
			verdicts = append(verdicts, v)
		}
		if err != nil {
			return verdicts, err
		}
	}
	return verdicts, nil
}

// transition moves to state to and notifies observers.
func (o *Orchestrator) transition(to State) {
	from := o.state
	o.state = to
	verbose.StateChanged(from.String(), to.String())
	if o.hook != nil {
		o.hook(from, to)
	}
}
