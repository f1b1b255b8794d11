package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FilePatterns holds include and exclude glob patterns for file names.
type FilePatterns struct {
	Include []string
	Exclude []string
}

// ParseFilePatterns parses a comma-separated filter string into include/exclude patterns.
// Patterns starting with ! are treated as exclusion patterns.
//
// Parameters:
//   - filter: Comma-separated patterns (e.g., "*.lox,!*_bench.lox")
//
// Returns:
//   - FilePatterns: Parsed include and exclude patterns
//   - error: When a pattern is not a valid filepath.Match pattern
//
// Example:
//
//	patterns, _ := utils.ParseFilePatterns("*.lox,!scratch*")
//	// patterns.Include = ["*.lox"]
//	// patterns.Exclude = ["scratch*"]
func ParseFilePatterns(filter string) (FilePatterns, error) {
	var patterns FilePatterns
	for _, p := range strings.Split(filter, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		exclude := strings.HasPrefix(p, "!")
		p = strings.TrimPrefix(p, "!")
		if _, err := filepath.Match(p, ""); err != nil {
			return FilePatterns{}, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		if exclude {
			patterns.Exclude = append(patterns.Exclude, p)
		} else {
			patterns.Include = append(patterns.Include, p)
		}
	}
	return patterns, nil
}

// Matches reports whether a file name passes the filter.
// If include patterns exist, the name must match at least one.
// If the name matches any exclude pattern, it is rejected.
//
// Parameters:
//   - name: The base file name to check
//
// Returns:
//   - bool: true if the name matches the filter criteria
func (p FilePatterns) Matches(name string) bool {
	for _, pattern := range p.Exclude {
		if ok, _ := filepath.Match(pattern, name); ok {
			return false
		}
	}

	if len(p.Include) == 0 {
		return true
	}

	for _, pattern := range p.Include {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}

	return false
}
