package verbose

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// TestEnableDisable tests the behavior of Enable and Disable functions.
//
// It verifies:
//   - Disable sets enabled state to false
//   - Enable sets enabled state to true
//   - IsEnabled returns correct state
func TestEnableDisable(t *testing.T) {
	Disable()
	assert.False(t, IsEnabled())

	Enable()
	assert.True(t, IsEnabled())

	Disable()
	assert.False(t, IsEnabled())
}

// TestSetWriter tests the behavior of SetWriter.
//
// It verifies:
//   - Writer can be set and messages are written to it
//   - nil writer parameter is ignored
func TestSetWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	SetWriter(buf)

	Enable()
	Printf("test message")
	Disable()

	assert.Contains(t, buf.String(), "[DEBUG] test message")

	SetWriter(nil)
	buf.Reset()
	Enable()
	Printf("another message")
	Disable()
	assert.Contains(t, buf.String(), "[DEBUG] another message")
}

// TestPrintf tests the behavior of Printf and Infof.
func TestPrintf(t *testing.T) {
	buf := &bytes.Buffer{}
	SetWriter(buf)

	Disable()
	Printf("should not appear")
	Infof("nor %s", "this")
	assert.Empty(t, buf.String())

	Enable()
	Printf("test %s %d", "arg", 42)
	Infof("formatted %d", 7)
	Disable()

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] test arg 42")
	assert.Contains(t, out, "[DEBUG] formatted 7")
}

// TestCommandExec tests logging of a command about to run.
func TestCommandExec(t *testing.T) {
	buf := &bytes.Buffer{}
	SetWriter(buf)

	Enable()
	CommandExec("cargo build", "")
	CommandExec("./target/debug/rlox tests/a.lox", "/work")
	Disable()

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] Executing: cargo build")
	assert.Contains(t, out, "Working dir: .")
	assert.Contains(t, out, "Working dir: /work")
}

// TestCommandResult tests success and failure lines and truncation.
func TestCommandResult(t *testing.T) {
	buf := &bytes.Buffer{}
	SetWriter(buf)

	Disable()
	CommandResult("cargo build", 0)
	assert.Empty(t, buf.String())

	Enable()
	CommandResult("cargo build", 0)
	CommandResult("rlox "+strings.Repeat("x", 100), 65)
	Disable()

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] Command succeeded: cargo build")
	assert.Contains(t, out, "[DEBUG] Command failed (exit 65): rlox xxx")
	assert.Contains(t, out, "...")
}

// TestConfigLoaded tests both the file and built-in default variants.
func TestConfigLoaded(t *testing.T) {
	buf := &bytes.Buffer{}
	SetWriter(buf)

	Enable()
	ConfigLoaded("")
	ConfigLoaded(".loxtest.yml")
	Disable()

	assert.Contains(t, buf.String(), "using built-in defaults")
	assert.Contains(t, buf.String(), "Config loaded: .loxtest.yml")
}

// TestStateChangedAndCasesFound tests the run progress helpers.
func TestStateChangedAndCasesFound(t *testing.T) {
	buf := &bytes.Buffer{}
	SetWriter(buf)

	Enable()
	StateChanged("Idle", "Building")
	CasesFound("normal", "tests", []string{"tests/a.lox", "tests/b.lox"})
	Disable()

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] State: Idle -> Building")
	assert.Contains(t, out, "[DEBUG] Found 2 normal case(s) in tests")
	assert.Contains(t, out, "| tests/b.lox")
}

// TestTruncate tests the truncate helper.
func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))

	multibyte := truncate("tests/ünïcödé_ünïcödé.lox", 10)
	assert.True(t, utf8.ValidString(multibyte))
	assert.Equal(t, "tests/ü...", multibyte)
}

// TestCommandLine tests rendering of a command with and without arguments.
func TestCommandLine(t *testing.T) {
	assert.Equal(t, "cargo", CommandLine("cargo", nil))
	assert.Equal(t, "cargo build --release", CommandLine("cargo", []string{"build", "--release"}))
}
