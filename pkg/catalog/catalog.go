// Package catalog enumerates the test cases a run executes.
//
// Cases are plain files in two fixed locations: a primary directory of
// cases expected to succeed, and an error subdirectory nested inside it of
// cases expected to fail. Only direct regular-file entries count, and
// enumeration is in lexical filename order so that runs are reproducible.
package catalog

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ajxudir/loxtest/pkg/config"
	"github.com/ajxudir/loxtest/pkg/utils"
	"github.com/ajxudir/loxtest/pkg/verbose"
)

// Category is the expectation attached to a test case.
type Category int

const (
	// Normal cases are expected to exit with status 0.
	Normal Category = iota

	// ExpectError cases are expected to exit with a non-zero status.
	ExpectError
)

// String returns the category name used in logs and summaries.
func (c Category) String() string {
	switch c {
	case Normal:
		return "normal"
	case ExpectError:
		return "expect-error"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// TestCase is one input file for the executable under test.
//
// Fields:
//   - Path: Location of the file relative to the run's working directory
//   - Category: Whether the case should succeed or fail
type TestCase struct {
	Path     string
	Category Category
}

// Catalog lists test cases from the configured locations.
//
// Fields:
//   - root: Directory that case locations are relative to
//   - testsDir: Location of Normal cases, relative to root
//   - errorDir: Location of ExpectError cases, relative to root
//   - patterns: File name filter applied to both locations
type Catalog struct {
	root     string
	testsDir string
	errorDir string
	patterns utils.FilePatterns
}

// New creates a Catalog for the given configuration.
//
// Parameters:
//   - cfg: Loaded configuration; WorkingDir is the enumeration root
//
// Returns:
//   - *Catalog: The catalog
//   - error: When the configured pattern is invalid
func New(cfg *config.Config) (*Catalog, error) {
	patterns, err := utils.ParseFilePatterns(cfg.Pattern)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		root:     cfg.WorkingDir,
		testsDir: cfg.TestsDir,
		errorDir: cfg.ErrorDir(),
		patterns: patterns,
	}, nil
}

// Enumerate lists the cases directly inside dir, tagged with category.
//
// Subdirectories are skipped, which keeps the error subdirectory out of the
// Normal list. A location that does not exist yields no cases and no error.
// Returned paths are dir joined with the file name, so they stay valid for a
// child process started in the catalog root.
//
// Parameters:
//   - dir: Location relative to the catalog root
//   - category: Category assigned to every returned case
//
// Returns:
//   - []TestCase: Cases in lexical filename order, possibly empty
//   - error: When dir exists but cannot be read
func (c *Catalog) Enumerate(dir string, category Category) ([]TestCase, error) {
	entries, err := os.ReadDir(c.resolve(dir))
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			verbose.CasesFound(category.String(), dir, nil)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			if entry.Type()&os.ModeSymlink == 0 || !c.isRegularTarget(dir, entry.Name()) {
				continue
			}
		}
		if !c.patterns.Matches(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	cases := make([]TestCase, 0, len(names))
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		cases = append(cases, TestCase{Path: path, Category: category})
		paths = append(paths, path)
	}

	verbose.CasesFound(category.String(), dir, paths)
	return cases, nil
}

// All lists both locations.
//
// Returns:
//   - []TestCase: Normal cases from the primary location
//   - []TestCase: ExpectError cases from the error subdirectory
//   - error: When either location exists but cannot be read
func (c *Catalog) All() ([]TestCase, []TestCase, error) {
	normal, err := c.Enumerate(c.testsDir, Normal)
	if err != nil {
		return nil, nil, err
	}
	expectError, err := c.Enumerate(c.errorDir, ExpectError)
	if err != nil {
		return nil, nil, err
	}
	return normal, expectError, nil
}

// resolve returns dir as seen from the process's current directory.
func (c *Catalog) resolve(dir string) string {
	if c.root == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.root, dir)
}

// isRegularTarget follows a symlink and reports whether it points at a file.
func (c *Catalog) isRegularTarget(dir, name string) bool {
	info, err := os.Stat(filepath.Join(c.resolve(dir), name))
	return err == nil && info.Mode().IsRegular()
}
