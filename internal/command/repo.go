package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Layout locates the two command directories inside a repository.
type Layout struct {
	Root         string
	WorkflowsDir string // relative to Root
	ToolsDir     string // relative to Root
}

// DefaultLayout returns the conventional workflows/ and tools/ layout.
func DefaultLayout(root string) Layout {
	return Layout{Root: root, WorkflowsDir: "workflows", ToolsDir: "tools"}
}

// Dir returns the absolute-or-root-relative directory for a kind.
func (l Layout) Dir(kind Kind) string {
	if kind == KindWorkflow {
		return filepath.Join(l.Root, l.WorkflowsDir)
	}
	return filepath.Join(l.Root, l.ToolsDir)
}

// KindOf infers a command's kind from the directory containing path.
// Anything outside the workflows directory is treated as a tool.
func (l Layout) KindOf(path string) Kind {
	if filepath.Base(filepath.Dir(path)) == filepath.Base(l.WorkflowsDir) {
		return KindWorkflow
	}
	return KindTool
}

// Entry is a discovered command file.
type Entry struct {
	Name string
	Kind Kind
	Path string
}

// Discover lists the markdown files directly under each kind directory,
// workflows first, each sorted by name. A missing directory contributes
// nothing.
func Discover(l Layout) ([]Entry, error) {
	var entries []Entry
	for _, kind := range []Kind{KindWorkflow, KindTool} {
		dir := l.Dir(kind)
		dirEntries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("list %s: %w", dir, err)
		}

		var names []string
		for _, de := range dirEntries {
			if de.IsDir() || !strings.HasSuffix(de.Name(), ".md") {
				continue
			}
			names = append(names, de.Name())
		}
		sort.Strings(names)

		for _, name := range names {
			path := filepath.Join(dir, name)
			entries = append(entries, Entry{Name: NameFromPath(path), Kind: kind, Path: path})
		}
	}
	return entries, nil
}

// Find returns the file for a command name, checking workflows then tools.
func Find(l Layout, name string) (Entry, bool) {
	for _, kind := range []Kind{KindWorkflow, KindTool} {
		path := filepath.Join(l.Dir(kind), name+".md")
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return Entry{Name: name, Kind: kind, Path: path}, true
		}
	}
	return Entry{}, false
}

// Index is the set of command names known in a repository, across both kinds.
type Index struct {
	names map[string]Kind
}

// NewIndex builds an index from discovered entries.
func NewIndex(entries []Entry) *Index {
	idx := &Index{names: make(map[string]Kind, len(entries))}
	for _, e := range entries {
		idx.names[e.Name] = e.Kind
	}
	return idx
}

// IndexOf builds an index from bare names, assigning every name the given kind.
func IndexOf(kind Kind, names ...string) *Index {
	idx := &Index{names: make(map[string]Kind, len(names))}
	for _, n := range names {
		idx.names[n] = kind
	}
	return idx
}

// Has reports whether name is a known command.
func (i *Index) Has(name string) bool {
	if i == nil {
		return false
	}
	_, ok := i.names[name]
	return ok
}

// Len returns the number of known commands.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.names)
}
