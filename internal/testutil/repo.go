// Package testutil provides temporary command repositories for tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// TestRepo represents a temporary command repository for testing.
type TestRepo struct {
	Path  string
	t     *testing.T
	files map[string]string
}

// NewTestRepo creates a new repository builder.
// Call Build() to create the actual directory.
func NewTestRepo(t *testing.T) *TestRepo {
	t.Helper()
	return &TestRepo{
		t:     t,
		files: make(map[string]string),
	}
}

// WithWorkflow adds workflows/<name>.md.
func (r *TestRepo) WithWorkflow(name, content string) *TestRepo {
	r.files[filepath.Join("workflows", name+".md")] = content
	return r
}

// WithTool adds tools/<name>.md.
func (r *TestRepo) WithTool(name, content string) *TestRepo {
	r.files[filepath.Join("tools", name+".md")] = content
	return r
}

// WithFile adds a file at a path relative to the repository root.
func (r *TestRepo) WithFile(path, content string) *TestRepo {
	r.files[path] = content
	return r
}

// Build creates the repository directory and all configured files.
func (r *TestRepo) Build() *TestRepo {
	r.t.Helper()

	r.Path = r.t.TempDir()

	paths := make([]string, 0, len(r.files))
	for p := range r.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		r.WriteFile(p, r.files[p])
	}
	return r
}

// Abs returns the absolute path of a repository-relative path.
func (r *TestRepo) Abs(relPath string) string {
	return filepath.Join(r.Path, relPath)
}

// WriteFile writes a file, creating directories as needed.
func (r *TestRepo) WriteFile(relPath, content string) {
	r.t.Helper()
	fullPath := r.Abs(relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		r.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		r.t.Fatalf("failed to write file %s: %v", relPath, err)
	}
}

// ReadFile reads a file relative to the repository root.
func (r *TestRepo) ReadFile(relPath string) string {
	r.t.Helper()
	content, err := os.ReadFile(r.Abs(relPath))
	if err != nil {
		r.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	return string(content)
}

// Exists reports whether a repository-relative path exists.
func (r *TestRepo) Exists(relPath string) bool {
	_, err := os.Stat(r.Abs(relPath))
	return err == nil
}
