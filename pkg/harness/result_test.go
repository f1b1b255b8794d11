package harness

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ajxudir/loxtest/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verdict(path string, category catalog.Category, passed bool, exitCode int) Verdict {
	return Verdict{
		Case:     catalog.TestCase{Path: path, Category: category},
		Passed:   passed,
		ExitCode: exitCode,
		Duration: 12 * time.Millisecond,
	}
}

func mixedResult() *Result {
	return &Result{
		State: StateDone,
		Normal: []Verdict{
			verdict("tests/a.lox", catalog.Normal, true, 0),
			verdict("tests/b.lox", catalog.Normal, false, 70),
		},
		ExpectError: []Verdict{
			verdict("tests/error/c.lox", catalog.ExpectError, true, 65),
			verdict("tests/error/d.lox", catalog.ExpectError, false, 0),
		},
		TotalDuration: 1500 * time.Millisecond,
	}
}

// TestResult_Counts tests the aggregate counters.
func TestResult_Counts(t *testing.T) {
	r := mixedResult()

	assert.Equal(t, 4, r.Total())
	assert.Equal(t, 2, r.PassedCount())
	assert.Equal(t, 2, r.FailedCount())
	assert.False(t, r.Passed())
	assert.Equal(t, []string{"tests/b.lox", "tests/error/d.lox"}, r.failedPaths())

	all := r.Verdicts()
	require.Len(t, all, 4)
	assert.Equal(t, "tests/a.lox", all[0].Case.Path)
	assert.Equal(t, "tests/error/d.lox", all[3].Case.Path)
}

// TestResult_Passed tests that only a completed run can pass.
func TestResult_Passed(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"done", StateDone, true},
		{"aborted", StateAborted, false},
		{"halted while running", StateRunningErrorExpected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Result{State: tt.state, Normal: []Verdict{verdict("tests/a.lox", catalog.Normal, true, 0)}}
			assert.Equal(t, tt.want, r.Passed())
		})
	}
}

// TestResult_Summary tests the one-line summary.
func TestResult_Summary(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		want   string
	}{
		{
			name:   "all passed",
			result: &Result{State: StateDone, Normal: []Verdict{verdict("tests/a.lox", catalog.Normal, true, 0)}},
			want:   "All 1 test cases passed",
		},
		{
			name:   "some failed",
			result: mixedResult(),
			want:   "2/4 test cases passed (2 failed)",
		},
		{
			name:   "no cases",
			result: &Result{State: StateDone},
			want:   "No test cases found",
		},
		{
			name:   "build failed",
			result: &Result{State: StateAborted, BuildExitCode: 101},
			want:   "Build failed (exit 101), no test cases ran",
		},
		{
			name:   "halted",
			result: &Result{State: StateRunningNormal, Normal: []Verdict{verdict("tests/a.lox", catalog.Normal, true, 0)}},
			want:   "1/1 test cases passed before the run stopped (0 failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Summary())
		})
	}
}

// TestResult_FormatResults tests the verdict table.
//
// It verifies:
//   - The full table lists every verdict with status and category
//   - The quiet table lists failures only
//   - The quiet table is empty when nothing failed
func TestResult_FormatResults(t *testing.T) {
	r := mixedResult()

	full := r.FormatResults()
	lines := strings.Split(strings.TrimSuffix(full, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "STATUS"))
	assert.Contains(t, lines[2], "✓ PASS")
	assert.Contains(t, lines[2], "expect ok")
	assert.Contains(t, lines[2], "tests/a.lox")
	assert.Contains(t, lines[3], "✗ FAIL")
	assert.Contains(t, lines[3], "70")
	assert.Contains(t, lines[5], "expect error")
	assert.Contains(t, lines[5], "12ms")

	quiet := r.FormatResultsQuiet()
	assert.NotContains(t, quiet, "tests/a.lox")
	assert.Contains(t, quiet, "tests/b.lox")
	assert.Contains(t, quiet, "tests/error/d.lox")

	passing := &Result{State: StateDone, Normal: []Verdict{verdict("tests/a.lox", catalog.Normal, true, 0)}}
	assert.Empty(t, passing.FormatResultsQuiet())
}

// TestResult_FormatResultsLongPath tests that deep case paths keep their
// file name in the table.
func TestResult_FormatResultsLongPath(t *testing.T) {
	long := "tests/" + strings.Repeat("nested/", 12) + "deep_case.lox"
	r := &Result{State: StateDone, Normal: []Verdict{verdict(long, catalog.Normal, false, 1)}}

	out := r.FormatResultsQuiet()
	assert.NotContains(t, out, long)
	assert.Contains(t, out, "…")
	assert.Contains(t, out, "nested/deep_case.lox")
}

// TestResult_WriteReport tests the final report.
func TestResult_WriteReport(t *testing.T) {
	t.Run("failures only", func(t *testing.T) {
		var buf bytes.Buffer
		mixedResult().WriteReport(&buf, false)

		out := buf.String()
		assert.NotContains(t, out, "tests/a.lox")
		assert.Contains(t, out, "tests/b.lox")
		assert.Contains(t, out, "❌ 2/4 test cases passed (2 failed) [1.5s]")
	})

	t.Run("all verdicts", func(t *testing.T) {
		var buf bytes.Buffer
		r := &Result{State: StateDone, Normal: []Verdict{verdict("tests/a.lox", catalog.Normal, true, 0)}}
		r.WriteReport(&buf, true)

		out := buf.String()
		assert.Contains(t, out, "tests/a.lox")
		assert.Contains(t, out, "🟢 All 1 test cases passed [0ms]")
	})

	t.Run("build failure has no table", func(t *testing.T) {
		var buf bytes.Buffer
		r := &Result{State: StateAborted, BuildExitCode: 1}
		r.WriteReport(&buf, true)
		assert.Equal(t, "❌ Build failed (exit 1), no test cases ran [0ms]\n", buf.String())
	})
}

// TestFormatDuration tests duration formatting.
func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0ms", formatDuration(0))
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "2.5s", formatDuration(2500*time.Millisecond))
}
