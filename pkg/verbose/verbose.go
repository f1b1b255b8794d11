// Package verbose provides debug logging for loxtest.
//
// Messages carry a [DEBUG] prefix and are only written once Enable has been
// called, which the CLI does for -v/--verbose. Continuation lines are
// indented under the message they belong to.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-runewidth"
)

const (
	prefix = "[DEBUG] "
	indent = "        "
)

var (
	enabled atomic.Bool

	mu     sync.Mutex
	writer io.Writer = os.Stderr
)

// Enable turns debug output on.
func Enable() { enabled.Store(true) }

// Disable turns debug output off.
func Disable() { enabled.Store(false) }

// IsEnabled reports whether debug output is on.
func IsEnabled() bool { return enabled.Load() }

// SetWriter redirects debug output. A nil writer is ignored.
func SetWriter(w io.Writer) {
	if w == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	writer = w
}

// emit writes a message and its detail lines as one block so concurrent
// callers cannot interleave them.
func emit(msg string, details ...string) {
	var sb strings.Builder
	sb.WriteString(prefix + msg + "\n")
	for _, d := range details {
		sb.WriteString(indent + d + "\n")
	}

	mu.Lock()
	defer mu.Unlock()
	_, _ = io.WriteString(writer, sb.String())
}

// Printf logs a formatted message.
func Printf(format string, args ...any) {
	if IsEnabled() {
		emit(fmt.Sprintf(format, args...))
	}
}

// Infof is Printf under the name used for discovery messages.
func Infof(format string, args ...any) {
	Printf(format, args...)
}

// CommandExec logs a command about to start and its working directory.
//
// Parameters:
//   - cmd: The rendered command line, see CommandLine
//   - workDir: Working directory of the child; empty means "."
func CommandExec(cmd, workDir string) {
	if !IsEnabled() {
		return
	}
	if workDir == "" {
		workDir = "."
	}
	emit("Executing: "+cmd, "Working dir: "+workDir)
}

// CommandResult logs how a command exited. Command lines longer than 60
// characters are truncated.
func CommandResult(cmd string, exitCode int) {
	if !IsEnabled() {
		return
	}
	if exitCode == 0 {
		emit("Command succeeded: " + truncate(cmd, 60))
		return
	}
	emit(fmt.Sprintf("Command failed (exit %d): %s", exitCode, truncate(cmd, 60)))
}

// ConfigLoaded logs the config file in use, or the built-in defaults when
// path is empty.
func ConfigLoaded(path string) {
	if !IsEnabled() {
		return
	}
	if path == "" {
		emit("Config: using built-in defaults")
		return
	}
	emit("Config loaded: " + path)
}

// StateChanged logs a run state transition.
func StateChanged(from, to string) {
	if IsEnabled() {
		emit(fmt.Sprintf("State: %s -> %s", from, to))
	}
}

// CasesFound logs the result of scanning one case directory.
//
// Parameters:
//   - category: The category the cases were tagged with
//   - dir: The scanned directory
//   - paths: The case paths in execution order, one detail line each
func CasesFound(category, dir string, paths []string) {
	if !IsEnabled() {
		return
	}
	details := make([]string, len(paths))
	for i, p := range paths {
		details[i] = "| " + truncate(p, 100)
	}
	emit(fmt.Sprintf("Found %d %s case(s) in %s", len(paths), category, dir), details...)
}

// CommandLine renders a command and its arguments as one line.
func CommandLine(command string, args []string) string {
	return strings.TrimSpace(command + " " + strings.Join(args, " "))
}

// truncate cuts s to maxLen display cells, ending in "..." when shortened.
// Cuts fall on rune boundaries.
func truncate(s string, maxLen int) string {
	return runewidth.Truncate(s, maxLen, "...")
}
