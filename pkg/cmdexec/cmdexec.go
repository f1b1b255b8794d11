// Package cmdexec runs child processes for loxtest.
//
// A child runs in one of two modes: suppressed, where its stdout and stderr
// are discarded, or passthrough, where they are forwarded live to the
// harness's own streams between a header and a footer naming the case.
// Calls block until the child exits. There is no timeout, so a child that
// never exits hangs the harness.
package cmdexec

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/ajxudir/loxtest/pkg/errors"
	"github.com/ajxudir/loxtest/pkg/verbose"
	"golang.org/x/term"
)

// Mode selects what happens to a child's output streams.
type Mode int

const (
	// ModeSuppressed discards the child's stdout and stderr entirely.
	ModeSuppressed Mode = iota

	// ModePassthrough forwards the child's stdout and stderr live, bracketed
	// by a header and footer.
	ModePassthrough
)

// String returns the lowercase mode name used in debug output.
func (m Mode) String() string {
	switch m {
	case ModeSuppressed:
		return "suppressed"
	case ModePassthrough:
		return "passthrough"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Invoker runs a single external process and reports its exit status.
//
// Standard implementation: *ProcessInvoker
type Invoker interface {
	// Run starts command with args, waits for it to exit and returns the
	// exit code. A non-zero exit is not an error. The error is non-nil only
	// when the process could not be started, and is then an *errors.LaunchError.
	//
	// Parameters:
	//   - command: Program to run (looked up on PATH when it has no separator)
	//   - args: Arguments passed to the program
	//   - mode: ModeSuppressed or ModePassthrough
	//   - label: Identifies the run in the passthrough header and footer
	//
	// Returns:
	//   - int: The process exit code
	//   - error: *errors.LaunchError when the process could not be started
	Run(command string, args []string, mode Mode, label string) (int, error)
}

// Verify that ProcessInvoker implements the Invoker interface.
var _ Invoker = (*ProcessInvoker)(nil)

// ProcessInvoker runs real child processes with os/exec.
//
// Fields:
//   - Dir: Working directory for every child; empty means the current directory
//   - Stdout: Destination for passthrough stdout, header and footer; nil means os.Stdout
//   - Stderr: Destination for passthrough stderr; nil means os.Stderr
type ProcessInvoker struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// NewProcessInvoker creates an invoker that runs children in dir and
// forwards passthrough output to the process's own stdout and stderr.
//
// Parameters:
//   - dir: Working directory for child processes
//
// Returns:
//   - *ProcessInvoker: A new invoker
func NewProcessInvoker(dir string) *ProcessInvoker {
	return &ProcessInvoker{Dir: dir}
}

// Run implements Invoker.
//
// It performs the following operations:
//   - Step 1: Build the exec.Cmd in the configured working directory
//   - Step 2: Wire output streams per mode (discard, or forward with header)
//   - Step 3: Run to completion and translate the result into an exit code
//   - Step 4: Close the passthrough block, also when the child never started
func (p *ProcessInvoker) Run(command string, args []string, mode Mode, label string) (int, error) {
	if strings.TrimSpace(command) == "" {
		return -1, errors.NewLaunchError(label, fmt.Errorf("empty command"))
	}

	line := verbose.CommandLine(command, args)
	verbose.CommandExec(line, p.Dir)

	cmd := exec.Command(command, args...)
	if p.Dir != "" {
		cmd.Dir = p.Dir
	}

	// A nil Stdout/Stderr on exec.Cmd is connected to the null device.
	if mode == ModePassthrough {
		stdout := p.stdout()
		cmd.Stdout = stdout
		cmd.Stderr = p.stderr()
		writeHeader(stdout, label)
	}

	err := cmd.Run()
	code, launchErr := exitCode(err)
	if launchErr != nil {
		verbose.Printf("Launch failed for %s: %v", line, launchErr)
		if mode == ModePassthrough {
			writeFooter(p.stdout(), label, "failed to launch")
		}
		return -1, errors.NewLaunchError(command, launchErr)
	}

	if mode == ModePassthrough {
		writeFooter(p.stdout(), label, fmt.Sprintf("exit %d", code))
	}
	verbose.CommandResult(line, code)
	return code, nil
}

// stdout returns the passthrough stdout destination.
func (p *ProcessInvoker) stdout() io.Writer {
	if p.Stdout != nil {
		return p.Stdout
	}
	return os.Stdout
}

// stderr returns the passthrough stderr destination.
func (p *ProcessInvoker) stderr() io.Writer {
	if p.Stderr != nil {
		return p.Stderr
	}
	return os.Stderr
}

// exitCode converts the result of exec.Cmd.Run into an exit code.
//
// A process that ran and exited non-zero yields its status and a nil error.
// A process killed by a signal has no status, so it yields -1, which still
// counts as not succeeded. Anything else means the process never ran.
//
// Parameters:
//   - err: Error returned by exec.Cmd.Run
//
// Returns:
//   - int: Exit code, -1 when unavailable
//   - error: Non-nil when the process could not be started
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

const (
	// defaultRuleWidth is used when the destination is not a terminal.
	defaultRuleWidth = 60

	// maxRuleWidth caps the rule on very wide terminals.
	maxRuleWidth = 120
)

// ruleWidth returns the width of the separator drawn for w.
//
// A terminal gets a rule spanning its width, anything else (pipes, files,
// buffers in tests) gets defaultRuleWidth.
func ruleWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultRuleWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultRuleWidth
	}
	if width > maxRuleWidth {
		return maxRuleWidth
	}
	return width
}

// rule returns the separator drawn above and below passthrough output.
func rule(w io.Writer) string {
	return strings.Repeat("─", ruleWidth(w))
}

// writeHeader marks the start of a passthrough run.
func writeHeader(w io.Writer, label string) {
	r := rule(w)
	_, _ = fmt.Fprintf(w, "%s\n▶ %s\n%s\n", r, label, r)
}

// writeFooter closes the block opened by writeHeader. status is the exit
// code, or the reason the child never ran.
func writeFooter(w io.Writer, label, status string) {
	r := rule(w)
	_, _ = fmt.Fprintf(w, "%s\n◀ end of %s (%s)\n%s\n", r, label, status, r)
}

// ParseCommand splits a configured command line into program and arguments.
//
// Quoting follows the usual shell rules for single and double quotes and
// backslash escapes, but no shell is involved: pipes, redirections and
// variable expansion are not supported.
//
// Parameters:
//   - cmdStr: Command line such as "cargo build --bin rlox"
//
// Returns:
//   - string: The program
//   - []string: The arguments, nil when there are none
//   - error: When cmdStr is blank or has an unterminated quote
//
// Example:
//
//	prog, args, err := cmdexec.ParseCommand(`cargo build --features "a b"`)
//	// prog = "cargo", args = ["build", "--features", "a b"]
func ParseCommand(cmdStr string) (string, []string, error) {
	args, err := parseCommandArgs(cmdStr)
	if err != nil {
		return "", nil, err
	}
	if len(args) == 0 {
		return "", nil, fmt.Errorf("empty command")
	}
	if len(args) == 1 {
		return args[0], nil, nil
	}
	return args[0], args[1:], nil
}

// parseCommandArgs parses a command string into arguments, respecting quotes.
//
// Quoted strings are treated as single arguments even if they contain
// spaces. A backslash escapes a following quote, backslash or space.
//
// Parameters:
//   - cmdStr: Command string to parse into arguments
//
// Returns:
//   - []string: Parsed command arguments
//   - error: When a quote is left open
func parseCommandArgs(cmdStr string) ([]string, error) {
	var args []string
	var current strings.Builder
	inQuote := false
	quoteChar := rune(0)
	hasToken := false

	runes := []rune(cmdStr)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\\' && i+1 < len(runes) && quoteChar != '\'' {
			next := runes[i+1]
			if next == '"' || next == '\'' || next == '\\' || next == ' ' {
				current.WriteRune(next)
				hasToken = true
				i++
				continue
			}
		}

		if r == '"' || r == '\'' {
			if !inQuote {
				inQuote = true
				quoteChar = r
				hasToken = true
				continue
			}
			if r == quoteChar {
				inQuote = false
				quoteChar = 0
				continue
			}
		}

		if !inQuote && (r == ' ' || r == '\t' || r == '\n') {
			if hasToken {
				args = append(args, current.String())
				current.Reset()
				hasToken = false
			}
			continue
		}

		current.WriteRune(r)
		hasToken = true
	}

	if inQuote {
		return nil, fmt.Errorf("unterminated %c quote in command %q", quoteChar, cmdStr)
	}
	if hasToken {
		args = append(args, current.String())
	}

	return args, nil
}
