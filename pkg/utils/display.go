package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks text removed by ShortenLeft.
const Ellipsis = "…"

// DisplayWidth returns how many terminal cells s occupies.
//
// Status icons and CJK characters in case paths take two cells.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads s with spaces up to width cells. Wider strings are
// returned unchanged.
func PadRight(s string, width int) string {
	gap := width - DisplayWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// ShortenLeft fits s into width cells by dropping characters from the
// front and prefixing Ellipsis. The end of a case path carries the file
// name, so that is the part kept.
//
// Parameters:
//   - s: The text to fit
//   - width: Maximum display width; values below 2 disable shortening
//
// Returns:
//   - string: s itself when it fits, otherwise Ellipsis plus its tail
func ShortenLeft(s string, width int) string {
	if width < 2 || DisplayWidth(s) <= width {
		return s
	}

	budget := width - DisplayWidth(Ellipsis)
	runes := []rune(s)
	start := len(runes)
	used := 0
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > budget {
			break
		}
		used += w
		start--
	}
	return Ellipsis + string(runes[start:])
}
