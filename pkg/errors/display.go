package errors

import (
	"fmt"
	"io"
)

// PrintErrorWithHints prints errors with actionable hints to the writer.
//
// This is the single implementation for error display in the CLI.
// It formats errors consistently and looks up hints for each error.
//
// Parameters:
//   - w: Writer to output to (typically os.Stderr)
//   - errs: Slice of errors to display
//   - verbose: If true, includes additional details
//
// Output format:
//
//	Error: <error message>
//	  💡 <actionable hint if available>
func PrintErrorWithHints(w io.Writer, errs []error, verbose bool) {
	for _, err := range errs {
		printSingleError(w, err, verbose)
	}
}

// printSingleError prints a single error with formatting chosen by its type.
func printSingleError(w io.Writer, err error, verbose bool) {
	if err == nil {
		return
	}

	if ve, ok := IsValidationError(err); ok {
		if verbose {
			_, _ = fmt.Fprintf(w, "Validation Error: %s\n", ve.VerboseError())
		} else {
			_, _ = fmt.Fprintf(w, "Validation Error: %s\n", EnhanceErrorWithHint(ve))
		}
		return
	}

	if tfe, ok := IsTestFailure(err); ok {
		printTestFailure(w, tfe)
		return
	}

	if le, ok := IsLaunchError(err); ok {
		_, _ = fmt.Fprintf(w, "Fatal: %s\n", EnhanceErrorWithHint(le))
		return
	}

	_, _ = fmt.Fprintf(w, "Error: %s\n", EnhanceErrorWithHint(err))
}

// printTestFailure lists the failed cases under a one-line summary.
func printTestFailure(w io.Writer, err *TestFailureError) {
	_, _ = fmt.Fprintf(w, "FAILED: %s\n", err.Error())
	for _, c := range err.Cases {
		_, _ = fmt.Fprintf(w, "  - %s\n", c)
	}
}
