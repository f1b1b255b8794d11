// Package constants provides centralized string constants used throughout loxtest.
// This eliminates magic strings and provides a single source of truth for status values.
package constants

// Verdict status constants shown in the result table.
const (
	// StatusPass marks a case whose verdict passed.
	StatusPass = "PASS"

	// StatusFail marks a case whose verdict failed.
	StatusFail = "FAIL"
)

// Expectation labels shown in the CATEGORY column.
const (
	// ExpectLabelSuccess labels cases expected to exit 0.
	ExpectLabelSuccess = "expect ok"

	// ExpectLabelError labels cases expected to exit non-zero.
	ExpectLabelError = "expect error"
)

// Icon constants for status display.
const (
	// IconSuccess prefixes the summary of a passing run (green circle).
	IconSuccess = "🟢"

	// IconError prefixes the summary of a failing run (red X).
	IconError = "❌"

	// IconCheckmark indicates a passed case.
	IconCheckmark = "✓"

	// IconCross indicates a failed case.
	IconCross = "✗"

	// IconWarn is the warning prefix for messages.
	IconWarn = "⚠️"

	// IconLightbulb indicates a hint or suggestion.
	IconLightbulb = "💡"
)
