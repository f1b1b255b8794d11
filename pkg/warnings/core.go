// Package warnings prints user-facing warnings.
//
// Warnings are shown whether or not --verbose is set. Tests redirect them
// with SetWarningWriter.
package warnings

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// Linef writes one "WARNING: " line. A trailing newline in the formatted
// message is not doubled.
func Linef(format string, args ...any) {
	msg := strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")

	mu.Lock()
	defer mu.Unlock()
	_, _ = fmt.Fprintf(out, "WARNING: %s\n", msg)
}

// WarningWriter returns the current destination.
func WarningWriter() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// SetWarningWriter redirects warnings to w, or to os.Stderr when w is nil,
// and returns a function restoring the previous destination.
func SetWarningWriter(w io.Writer) (restore func()) {
	if w == nil {
		w = os.Stderr
	}

	mu.Lock()
	previous := out
	out = w
	mu.Unlock()

	return func() {
		mu.Lock()
		out = previous
		mu.Unlock()
	}
}
