// Package errors provides unified error types and display for loxtest.
//
// This package consolidates all error handling into a single location:
//   - ExitError: Command exit with specific exit code
//   - BuildFailureError: The build command exited non-zero
//   - LaunchError: A child process could not be started at all
//   - TestFailureError: One or more verdicts failed
//   - ValidationError: Configuration validation failures
//
// Error Display:
//
//	errors.PrintErrorWithHints(os.Stderr, errs, verbose)
//
// Exit Codes:
//
// Standard exit codes are defined for CI integration:
//   - ExitSuccess (0): Build succeeded and every case passed
//   - ExitTestFailure (1): One or more cases failed
//   - ExitBuildFailure (2): Build failed, no cases ran
//   - ExitConfigError (3): Configuration or validation error
//   - ExitLaunchFailure (4): A child process could not be launched
package errors
