package testutil

import "strings"

// AssertFileExists fails the test if the file does not exist.
func (r *TestRepo) AssertFileExists(relPath string) {
	r.t.Helper()
	if !r.Exists(relPath) {
		r.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (r *TestRepo) AssertFileNotExists(relPath string) {
	r.t.Helper()
	if r.Exists(relPath) {
		r.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (r *TestRepo) AssertFileContains(relPath, substr string) {
	r.t.Helper()
	content := r.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		r.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains the substring.
func (r *TestRepo) AssertFileNotContains(relPath, substr string) {
	r.t.Helper()
	content := r.ReadFile(relPath)
	if strings.Contains(content, substr) {
		r.t.Errorf("expected file %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileEquals fails the test if the file content differs from want.
func (r *TestRepo) AssertFileEquals(relPath, want string) {
	r.t.Helper()
	if got := r.ReadFile(relPath); got != want {
		r.t.Errorf("file %s mismatch:\ngot:\n%s\nwant:\n%s", relPath, got, want)
	}
}
