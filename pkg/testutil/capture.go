// Package testutil provides shared test utilities for loxtest packages.
package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"
)

// redirect points *target at a pipe while fn runs and returns what was written.
//
// Parameters:
//   - t: Testing instance for helper marking
//   - target: Address of os.Stdout or os.Stderr
//   - fn: Function to execute while redirected
//
// Returns:
//   - string: All content written to the stream during fn
func redirect(t *testing.T, target **os.File, fn func()) string {
	t.Helper()

	original := *target
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	*target = w

	// Drain concurrently so a child writing more than the pipe buffer
	// cannot block fn.
	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	defer func() { *target = original }()
	fn()

	_ = w.Close()
	out := <-done
	_ = r.Close()
	return out
}

// CaptureStdout captures stdout during the execution of fn and returns the output as a string.
//
// The original stdout is restored after the function completes.
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return redirect(t, &os.Stdout, fn)
}

// CaptureStderr captures stderr during the execution of fn and returns the output as a string.
//
// The original stderr is restored after the function completes.
func CaptureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return redirect(t, &os.Stderr, fn)
}

// CaptureOutput captures both stdout and stderr during the execution of fn.
//
// Parameters:
//   - t: Testing instance for helper marking
//   - fn: Function to execute while capturing both streams
//
// Returns:
//   - stdout: All content written to stdout during fn execution
//   - stderr: All content written to stderr during fn execution
func CaptureOutput(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()
	stderr = redirect(t, &os.Stderr, func() {
		stdout = redirect(t, &os.Stdout, fn)
	})
	return stdout, stderr
}
