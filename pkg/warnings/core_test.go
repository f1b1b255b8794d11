package warnings

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSetWarningWriter tests redirection and restore.
//
// It verifies:
//   - Warnings go to the swapped writer
//   - The restore function puts the previous writer back
//   - A nil writer means os.Stderr
func TestSetWarningWriter(t *testing.T) {
	original := WarningWriter()

	var buf bytes.Buffer
	restore := SetWarningWriter(&buf)
	Linef("captured")
	restore()

	assert.Equal(t, "WARNING: captured\n", buf.String())
	assert.Equal(t, original, WarningWriter())

	restore = SetWarningWriter(nil)
	assert.Equal(t, os.Stderr, WarningWriter())
	restore()
	assert.Equal(t, original, WarningWriter())
}

// TestLinef tests formatting and newline handling.
func TestLinef(t *testing.T) {
	var buf bytes.Buffer
	restore := SetWarningWriter(&buf)
	defer restore()

	Linef("expected an error but %s exited 0", "tests/error/b.lox")
	Linef("already terminated\n")

	assert.Equal(t, "WARNING: expected an error but tests/error/b.lox exited 0\nWARNING: already terminated\n", buf.String())
}
