// Package preflight checks that the build tool can be started before a run begins.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ajxudir/loxtest/pkg/cmdexec"
	"github.com/ajxudir/loxtest/pkg/config"
	"github.com/ajxudir/loxtest/pkg/verbose"
)

// CommandResolutionHints maps build tool names to installation instructions.
//
// Keys are command names, values are human-readable installation instructions with URLs.
var CommandResolutionHints = map[string]string{
	"cargo":  "Install Rust: https://rustup.rs/",
	"rustc":  "Install Rust: https://rustup.rs/",
	"make":   "Install make: build-essential (Debian/Ubuntu), Xcode Command Line Tools (macOS)",
	"cmake":  "Install CMake: https://cmake.org/download/",
	"ninja":  "Install Ninja: https://ninja-build.org/",
	"go":     "Install Go: https://go.dev/dl/",
	"just":   "Install just: https://github.com/casey/just#installation",
	"sh":     "Unix tool - typically pre-installed on Linux/macOS",
	"bash":   "Unix tool - typically pre-installed on Linux/macOS",
	"dotnet": "Install .NET SDK: https://dotnet.microsoft.com/download",
}

// ValidationError represents a build program that cannot be started.
//
// Fields:
//   - Command: The program named by the build command
//   - Hint: Installation instructions; empty if no hint is known
type ValidationError struct {
	Command string
	Hint    string
}

// Error returns a formatted error message with resolution instructions.
//
// Returns:
//   - string: Error message including the command and how to resolve it
func (e *ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("command not found: %s\n  Resolution: %s", e.Command, e.Hint)
	}
	return fmt.Sprintf("command not found: %s\n  Resolution: Ensure '%s' is installed and available in your PATH,\n             or change 'build' in %s.", e.Command, e.Command, config.ConfigFileName)
}

// ValidateResult holds the result of pre-flight validation.
//
// Fields:
//   - Errors: Programs that cannot be started
type ValidateResult struct {
	Errors []ValidationError
}

// HasErrors returns true if there are validation errors.
func (r *ValidateResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err returns the first validation error, or nil.
func (r *ValidateResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// ErrorMessage returns a formatted error message for all validation errors.
//
// Returns:
//   - string: Multi-line message; empty string if there are no errors
func (r *ValidateResult) ErrorMessage() string {
	if len(r.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Pre-flight validation failed:\n")
	for _, err := range r.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// ValidateBuild checks that the program of the build command can be started.
//
// It performs the following operations:
//   - Splits the build command and takes its program
//   - Looks a bare name up on PATH
//   - Resolves a path with a separator against the working directory and
//     checks that it is an executable file
//
// The executable under test is not checked: the build is what produces it.
//
// Parameters:
//   - cfg: Loaded configuration
//
// Returns:
//   - *ValidateResult: Result containing any validation errors; never nil
func ValidateBuild(cfg *config.Config) *ValidateResult {
	result := &ValidateResult{}

	program, _, err := cmdexec.ParseCommand(cfg.Build)
	if err != nil {
		// Reported by config validation.
		return result
	}

	verbose.Printf("Preflight: checking build program %q", program)
	if err := validateCommand(program, cfg.WorkingDir); err != nil {
		result.Errors = append(result.Errors, *err)
	}
	return result
}

// validateCommand checks that cmd names a program that can be started.
//
// Parameters:
//   - cmd: Program name or path
//   - dir: Directory relative paths are resolved against
//
// Returns:
//   - *ValidationError: Error with resolution hint if not found; nil otherwise
func validateCommand(cmd, dir string) *ValidationError {
	if cmd == "" {
		return nil
	}

	if !strings.ContainsRune(cmd, '/') && !strings.ContainsRune(cmd, filepath.Separator) {
		if _, err := exec.LookPath(cmd); err == nil {
			return nil
		}
	} else if isExecutableFile(resolve(cmd, dir)) {
		return nil
	}

	hint := GetResolutionHint(cmd)
	verbose.Printf("Preflight ERROR: command %q not found", cmd)
	return &ValidationError{Command: cmd, Hint: hint}
}

// resolve joins a relative path to dir.
func resolve(path, dir string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

// isExecutableFile reports whether path is a regular file with an execute bit.
// On Windows any regular file is accepted.
func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if filepath.Separator == '\\' {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

// GetResolutionHint returns the installation hint for a command, if available.
//
// Parameters:
//   - cmd: The command name to look up (e.g., "cargo")
//
// Returns:
//   - string: Installation instructions if available; empty string otherwise
func GetResolutionHint(cmd string) string {
	return CommandResolutionHints[cmd]
}
