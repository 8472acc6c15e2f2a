package command

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCommand(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	layout := DefaultLayout(root)

	writeCommand(t, filepath.Join(root, "workflows", "full-review.md"), "# Review")
	writeCommand(t, filepath.Join(root, "workflows", "api-build.md"), "# Build")
	writeCommand(t, filepath.Join(root, "tools", "lint.md"), "# Lint")
	writeCommand(t, filepath.Join(root, "tools", "notes.txt"), "ignored")
	writeCommand(t, filepath.Join(root, "tools", "nested", "deep.md"), "ignored")

	entries, err := Discover(layout)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	var got []string
	for _, e := range entries {
		got = append(got, string(e.Kind)+":"+e.Name)
	}
	want := []string{"workflow:api-build", "workflow:full-review", "tool:lint"}
	if len(got) != len(want) {
		t.Fatalf("Discover() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %s, want %s", i, got[i], want[i])
		}
	}

	idx := NewIndex(entries)
	if !idx.Has("lint") || !idx.Has("full-review") || idx.Has("deep") {
		t.Errorf("unexpected index contents")
	}
	if idx.Len() != 3 {
		t.Errorf("Len() = %d, want 3", idx.Len())
	}
}

func TestDiscoverMissingDirs(t *testing.T) {
	entries, err := Discover(DefaultLayout(t.TempDir()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %v", entries)
	}
}

func TestFindAndKindOf(t *testing.T) {
	root := t.TempDir()
	layout := DefaultLayout(root)
	writeCommand(t, filepath.Join(root, "tools", "lint.md"), "# Lint")

	e, ok := Find(layout, "lint")
	if !ok || e.Kind != KindTool {
		t.Fatalf("Find(lint) = %+v, %v", e, ok)
	}
	if _, ok := Find(layout, "missing"); ok {
		t.Errorf("expected missing command not to be found")
	}

	if k := layout.KindOf(filepath.Join(root, "workflows", "x.md")); k != KindWorkflow {
		t.Errorf("KindOf(workflows/x.md) = %s", k)
	}
	if k := layout.KindOf(filepath.Join(root, "tools", "x.md")); k != KindTool {
		t.Errorf("KindOf(tools/x.md) = %s", k)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools", "doc-gen.md")
	writeCommand(t, path, "---\nversion: 1.0.0\n---\n# Doc\n")

	doc, err := Load(path, KindTool)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if doc.Name != "doc-gen" {
		t.Errorf("Name = %q, want doc-gen", doc.Name)
	}
	if doc.ID() != path {
		t.Errorf("ID() = %q, want %q", doc.ID(), path)
	}
	if v, ok := doc.Frontmatter.Version(); !ok || v != "1.0.0" {
		t.Errorf("Version() = %q, %v", v, ok)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nope.md"), KindTool); err == nil {
		t.Errorf("expected error for missing file")
	}
}
