// Package command models slash-command documents: markdown files that define
// one workflow or tool invocation template for an AI coding assistant.
package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind distinguishes multi-agent workflows from single-purpose tools.
type Kind string

const (
	KindWorkflow Kind = "workflow"
	KindTool     Kind = "tool"
)

// ParseKind parses a kind name as stored in the metadata file.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindWorkflow, KindTool:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown command kind %q", s)
}

// Document is the in-memory form of one command file. It is built fresh
// for every validation run or version operation and never cached.
type Document struct {
	// Name is the filename stem (e.g. "api-scaffold" for api-scaffold.md).
	Name string

	Kind Kind

	// Path is the file path the document was read from (may be empty in tests).
	Path string

	Content string

	// Lines is Content split on newlines.
	Lines []string

	Frontmatter Frontmatter
}

// New builds a Document from raw content.
func New(name string, kind Kind, path, content string) *Document {
	return &Document{
		Name:        name,
		Kind:        kind,
		Path:        path,
		Content:     content,
		Lines:       strings.Split(content, "\n"),
		Frontmatter: ParseFrontmatter(content),
	}
}

// Load reads a command file from disk.
func Load(path string, kind Kind) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read command %s: %w", path, err)
	}
	return New(NameFromPath(path), kind, path, string(content)), nil
}

// NameFromPath returns the command name for a file path: its base name
// without the .md extension.
func NameFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// ID identifies the document in findings: its path when known, else its name.
func (d *Document) ID() string {
	if d.Path != "" {
		return d.Path
	}
	return d.Name
}

// IsWorkflow reports whether workflow-specific rules apply.
func (d *Document) IsWorkflow() bool {
	return d.Kind == KindWorkflow
}
