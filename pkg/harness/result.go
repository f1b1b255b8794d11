package harness

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ajxudir/loxtest/pkg/catalog"
	"github.com/ajxudir/loxtest/pkg/constants"
	"github.com/ajxudir/loxtest/pkg/output"
)

// Result is the aggregate outcome of one run.
//
// Fields:
//   - State: State the orchestrator stopped in
//   - BuildCommand: Build command line that ran
//   - BuildExitCode: Exit status of the build, -1 if it did not run
//   - Normal: Verdicts of the Normal cases in execution order
//   - ExpectError: Verdicts of the ExpectError cases in execution order
//   - TotalDuration: Wall time of the build and all cases
type Result struct {
	State         State
	BuildCommand  string
	BuildExitCode int
	Normal        []Verdict
	ExpectError   []Verdict
	TotalDuration time.Duration
}

// Verdicts returns all verdicts, Normal cases first.
func (r *Result) Verdicts() []Verdict {
	all := make([]Verdict, 0, len(r.Normal)+len(r.ExpectError))
	all = append(all, r.Normal...)
	return append(all, r.ExpectError...)
}

// Total returns the number of cases that produced a verdict.
func (r *Result) Total() int {
	return len(r.Normal) + len(r.ExpectError)
}

// Passed returns true if the run reached StateDone and every verdict passed.
//
// Returns:
//   - bool: false after an aborted build, a halted run, or any failed verdict
func (r *Result) Passed() bool {
	if r.State != StateDone {
		return false
	}
	return r.FailedCount() == 0
}

// PassedCount returns the number of passed verdicts.
func (r *Result) PassedCount() int {
	return r.Total() - r.FailedCount()
}

// FailedCount returns the number of failed verdicts.
func (r *Result) FailedCount() int {
	return len(r.FailedVerdicts())
}

// FailedVerdicts returns the failed verdicts in execution order.
//
// Returns:
//   - []Verdict: Failed verdicts; empty if none failed
func (r *Result) FailedVerdicts() []Verdict {
	var failed []Verdict
	for _, v := range r.Verdicts() {
		if !v.Passed {
			failed = append(failed, v)
		}
	}
	return failed
}

func (r *Result) failedPaths() []string {
	failed := r.FailedVerdicts()
	paths := make([]string, 0, len(failed))
	for _, v := range failed {
		paths = append(paths, v.Case.Path)
	}
	return paths
}

// Summary returns a one-line summary of the run.
//
// Returns:
//   - string: e.g. "All 12 test cases passed", "10/12 test cases passed (2 failed)",
//     or "Build failed, no test cases ran"
func (r *Result) Summary() string {
	if r.State == StateAborted {
		return fmt.Sprintf("Build failed (exit %d), no test cases ran", r.BuildExitCode)
	}

	total := r.Total()
	failed := r.FailedCount()
	switch {
	case total == 0 && r.State == StateDone:
		return "No test cases found"
	case failed == 0 && r.State == StateDone:
		return fmt.Sprintf("All %d test cases passed", total)
	case r.State != StateDone:
		return fmt.Sprintf("%d/%d test cases passed before the run stopped (%d failed)", total-failed, total, failed)
	default:
		return fmt.Sprintf("%d/%d test cases passed (%d failed)", total-failed, total, failed)
	}
}

// FormatResults returns a table of every verdict.
//
// Returns:
//   - string: Multi-line table with status, category, case, exit code and duration
func (r *Result) FormatResults() string {
	return r.formatResults(true)
}

// FormatResultsQuiet returns a table of failed verdicts only.
//
// Returns:
//   - string: Table of failures; empty if nothing failed
func (r *Result) FormatResultsQuiet() string {
	if r.FailedCount() == 0 {
		return ""
	}
	return r.formatResults(false)
}

const (
	caseColumn = 2

	// maxCaseWidth bounds the CASE column; deeper paths keep their file name.
	maxCaseWidth = 60
)

// formatResults renders verdicts with output.Table.
//
// Parameters:
//   - showPassing: When false, passed verdicts are omitted
//
// Returns:
//   - string: Formatted table, empty when no verdict is shown
func (r *Result) formatResults(showPassing bool) string {
	var rows [][]string
	for _, v := range r.Verdicts() {
		if !showPassing && v.Passed {
			continue
		}
		rows = append(rows, verdictRow(v))
	}
	if len(rows) == 0 {
		return ""
	}

	return output.NewTable("STATUS", "CATEGORY", "CASE", "EXIT", "TIME").
		Limit(caseColumn, maxCaseWidth).
		Render(rows)
}

// WriteReport writes the verdict table followed by the summary line.
//
// Parameters:
//   - w: Destination writer
//   - all: When true every verdict is listed, otherwise only failures
func (r *Result) WriteReport(w io.Writer, all bool) {
	table := r.FormatResultsQuiet()
	if all {
		table = r.FormatResults()
	}
	if table != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprint(w, table)
		_, _ = fmt.Fprintln(w)
	}

	icon := constants.IconSuccess
	if !r.Passed() {
		icon = constants.IconError
	}
	_, _ = fmt.Fprintf(w, "%s %s [%s]\n", icon, r.Summary(), formatDuration(r.TotalDuration))
}

// verdictRow returns the table cells for one verdict.
func verdictRow(v Verdict) []string {
	status := constants.IconCheckmark + " " + constants.StatusPass
	if !v.Passed {
		status = constants.IconCross + " " + constants.StatusFail
	}
	return []string{
		status,
		categoryLabel(v.Case.Category),
		v.Case.Path,
		strconv.Itoa(v.ExitCode),
		formatDuration(v.Duration),
	}
}

// categoryLabel names the expectation shown in reports.
func categoryLabel(c catalog.Category) string {
	if c == catalog.ExpectError {
		return constants.ExpectLabelError
	}
	return constants.ExpectLabelSuccess
}

// formatDuration formats a duration as milliseconds below one second and
// as seconds with one decimal otherwise.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
