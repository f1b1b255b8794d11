package testutil

import (
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/ajxudir/loxtest/pkg/cmdexec"
	"github.com/ajxudir/loxtest/pkg/errors"
)

// Call records one Run on a RecordingInvoker.
type Call struct {
	Command string
	Args    []string
	Mode    cmdexec.Mode
	Label   string
}

// Line returns the command and arguments joined by spaces.
func (c Call) Line() string {
	return strings.TrimSpace(c.Command + " " + strings.Join(c.Args, " "))
}

// RecordingInvoker is a cmdexec.Invoker that runs nothing.
//
// Exit codes are looked up by the call's label (the case path, or the build
// command line). Labels listed in Unlaunchable fail with *errors.LaunchError.
//
// Fields:
//   - ExitCodes: Exit code per label; missing labels exit 0
//   - Unlaunchable: Labels whose run fails to launch
//   - LaunchLimit: Labels that launch this many times, then fail to launch
type RecordingInvoker struct {
	ExitCodes    map[string]int
	Unlaunchable map[string]bool
	LaunchLimit  map[string]int

	mu    sync.Mutex
	calls []Call
}

// Verify that RecordingInvoker implements the Invoker interface.
var _ cmdexec.Invoker = (*RecordingInvoker)(nil)

// NewRecordingInvoker creates an invoker where every run exits 0.
func NewRecordingInvoker() *RecordingInvoker {
	return &RecordingInvoker{
		ExitCodes:    make(map[string]int),
		Unlaunchable: make(map[string]bool),
		LaunchLimit:  make(map[string]int),
	}
}

// ExitWith sets the exit code returned for label and returns the invoker.
func (r *RecordingInvoker) ExitWith(label string, code int) *RecordingInvoker {
	r.ExitCodes[label] = code
	return r
}

// FailLaunch makes runs for label fail to launch and returns the invoker.
func (r *RecordingInvoker) FailLaunch(label string) *RecordingInvoker {
	r.Unlaunchable[label] = true
	return r
}

// FailLaunchAfter lets label launch n times and makes later runs fail to
// launch. With n = 1 the primary run of a case succeeds and its diagnostic
// re-run cannot start.
func (r *RecordingInvoker) FailLaunchAfter(label string, n int) *RecordingInvoker {
	r.LaunchLimit[label] = n
	return r
}

// Run implements cmdexec.Invoker.
func (r *RecordingInvoker) Run(command string, args []string, mode cmdexec.Mode, label string) (int, error) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Command: command, Args: append([]string(nil), args...), Mode: mode, Label: label})
	runs := 0
	for _, c := range r.calls {
		if c.Label == label {
			runs++
		}
	}
	r.mu.Unlock()

	limit, limited := r.LaunchLimit[label]
	if r.Unlaunchable[label] || (limited && runs > limit) {
		return -1, errors.NewLaunchError(command, &os.PathError{Op: "fork/exec", Path: command, Err: syscall.ENOENT})
	}
	return r.ExitCodes[label], nil
}

// Calls returns a copy of every recorded call in order.
func (r *RecordingInvoker) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// CallsFor returns the recorded calls with the given label.
func (r *RecordingInvoker) CallsFor(label string) []Call {
	var out []Call
	for _, c := range r.Calls() {
		if c.Label == label {
			out = append(out, c)
		}
	}
	return out
}

// Labels returns the label of every recorded call in order.
func (r *RecordingInvoker) Labels() []string {
	calls := r.Calls()
	labels := make([]string, 0, len(calls))
	for _, c := range calls {
		labels = append(labels, c.Label)
	}
	return labels
}
