package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Corpus lays out test case files in a temporary working directory.
//
// Files are created under the default locations: tests/ for cases expected
// to succeed and tests/error/ for cases expected to fail.
type Corpus struct {
	t    *testing.T
	root string
}

// NewCorpus creates an empty corpus in a fresh temporary directory.
func NewCorpus(t *testing.T) *Corpus {
	t.Helper()
	return &Corpus{t: t, root: t.TempDir()}
}

// Root returns the working directory holding the corpus.
func (c *Corpus) Root() string {
	return c.root
}

// Normal adds cases to tests/ and returns the corpus.
//
// Parameters:
//   - names: File names such as "a.lox"
func (c *Corpus) Normal(names ...string) *Corpus {
	c.t.Helper()
	for _, name := range names {
		c.Write(filepath.Join("tests", name), "print \"ok\";\n")
	}
	return c
}

// ExpectError adds cases to tests/error/ and returns the corpus.
//
// Parameters:
//   - names: File names such as "b.lox"
func (c *Corpus) ExpectError(names ...string) *Corpus {
	c.t.Helper()
	for _, name := range names {
		c.Write(filepath.Join("tests", "error", name), "print undefined;\n")
	}
	return c
}

// Write creates a file relative to the root, with parent directories.
//
// Parameters:
//   - rel: Path relative to Root
//   - content: File contents
func (c *Corpus) Write(rel, content string) {
	c.t.Helper()
	path := filepath.Join(c.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		c.t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		c.t.Fatalf("write %s: %v", path, err)
	}
}
