package errors

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/ajxudir/loxtest/pkg/constants"
)

// Hint is an actionable suggestion shown under an error.
//
// Fields:
//   - Match: Reports whether the hint applies to an error
//   - Text: The suggestion itself
type Hint struct {
	Match func(err error) bool
	Text  string
}

// Hints are tried in order and the first match wins, so specific
// launch causes come before generic message patterns.
var Hints = []Hint{
	{
		Match: func(err error) bool { return errors.Is(err, exec.ErrNotFound) },
		Text:  "Program is not on PATH: install it (cargo comes from https://rustup.rs/) or fix 'build' in the config file",
	},
	{
		Match: isLaunchCause(os.ErrNotExist),
		Text:  "Executable not found: check that the build produces the path set in 'executable' (default ./target/debug/rlox)",
	},
	{
		Match: isLaunchCause(os.ErrPermission),
		Text:  "Permission denied: make sure the program has its execute bit set (chmod +x)",
	},
	{
		Match: messageContains("exec format error"),
		Text:  "Wrong binary format: rebuild the executable for this OS and architecture",
	},
	{
		Match: func(err error) bool { _, ok := IsBuildFailure(err); return ok },
		Text:  "The build step exited non-zero, so no tests were run: rerun with --verbose to see its output",
	},
	{
		Match: messageContains("unknown field"),
		Text:  "Valid keys: working_dir, build, executable, tests_dir, error_subdir, pattern, aggregate_failures",
	},
	{
		Match: messageContains("invalid yaml", "invalid toml"),
		Text:  "Check the config file syntax with a YAML or TOML linter",
	},
}

// isLaunchCause matches a LaunchError whose cause is target.
func isLaunchCause(target error) func(error) bool {
	return func(err error) bool {
		le, ok := IsLaunchError(err)
		return ok && errors.Is(le.Err, target)
	}
}

// messageContains matches errors whose lowercased message holds any of the
// patterns.
func messageContains(patterns ...string) func(error) bool {
	return func(err error) bool {
		msg := strings.ToLower(err.Error())
		for _, p := range patterns {
			if strings.Contains(msg, p) {
				return true
			}
		}
		return false
	}
}

// GetHint returns the first hint matching err, or "".
func GetHint(err error) string {
	if err == nil {
		return ""
	}
	for _, h := range Hints {
		if h.Match(err) {
			return h.Text
		}
	}
	return ""
}

// EnhanceErrorWithHint returns the error message with its hint, if any,
// on an indented second line.
//
// Example:
//
//	fmt.Fprintf(os.Stderr, "Error: %s\n", errors.EnhanceErrorWithHint(err))
func EnhanceErrorWithHint(err error) string {
	if err == nil {
		return ""
	}
	if hint := GetHint(err); hint != "" {
		return err.Error() + "\n  " + constants.IconLightbulb + " " + hint
	}
	return err.Error()
}
