// Package versions tracks semantic versions for command documents: the
// metadata store, the embedded version marker in each command file, and the
// project changelog.
package versions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/aidanlsb/slashcmd/internal/command"
)

// DefaultMetadataFile is the store's file name at the repository root.
const DefaultMetadataFile = ".command-metadata.json"

// TimestampLayout formats created/released/last_updated values.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Entry is one release of a command. Entries are never edited once appended.
type Entry struct {
	Version            string   `json:"version"`
	Released           string   `json:"released"`
	Changes            []string `json:"changes"`
	BreakingChanges    []string `json:"breaking_changes"`
	DeprecatedFeatures []string `json:"deprecated_features"`
}

// Metadata is the version record for one command.
type Metadata struct {
	Name           string       `json:"name"`
	Type           command.Kind `json:"type"`
	Description    string       `json:"description"`
	CurrentVersion string       `json:"current_version"`
	Created        string       `json:"created"`
	LastUpdated    string       `json:"last_updated"`
	Tags           []string     `json:"tags"`
	Dependencies   []string     `json:"dependencies"`
	VersionHistory []Entry      `json:"version_history"`
}

// LastUpdatedDate returns the date portion of LastUpdated.
func (m *Metadata) LastUpdatedDate() string {
	if len(m.LastUpdated) >= 10 {
		return m.LastUpdated[:10]
	}
	return m.LastUpdated
}

// clone returns a deep copy so a failed operation never leaks edits.
func (m *Metadata) clone() *Metadata {
	c := *m
	c.Tags = append([]string{}, m.Tags...)
	c.Dependencies = append([]string{}, m.Dependencies...)
	c.VersionHistory = make([]Entry, len(m.VersionHistory))
	for i, e := range m.VersionHistory {
		c.VersionHistory[i] = Entry{
			Version:            e.Version,
			Released:           e.Released,
			Changes:            append([]string{}, e.Changes...),
			BreakingChanges:    append([]string{}, e.BreakingChanges...),
			DeprecatedFeatures: append([]string{}, e.DeprecatedFeatures...),
		}
	}
	return &c
}

// normalize replaces nil lists with empty ones so the file shows [] not null.
func (m *Metadata) normalize() {
	if m.Tags == nil {
		m.Tags = []string{}
	}
	if m.Dependencies == nil {
		m.Dependencies = []string{}
	}
	if m.VersionHistory == nil {
		m.VersionHistory = []Entry{}
	}
	for i := range m.VersionHistory {
		e := &m.VersionHistory[i]
		if e.Changes == nil {
			e.Changes = []string{}
		}
		if e.BreakingChanges == nil {
			e.BreakingChanges = []string{}
		}
		if e.DeprecatedFeatures == nil {
			e.DeprecatedFeatures = []string{}
		}
	}
}

// Store maps command names to their metadata. It is loaded and saved whole.
type Store struct {
	path     string
	commands map[string]*Metadata
}

// LoadStore reads the store at path. A missing file yields an empty store.
func LoadStore(path string) (*Store, error) {
	s := &Store{path: path, commands: make(map[string]*Metadata)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s.commands); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", path, err)
	}
	for name, md := range s.commands {
		if md == nil {
			delete(s.commands, name)
			continue
		}
		if _, err := command.ParseKind(string(md.Type)); err != nil {
			return nil, fmt.Errorf("parse metadata %s: %s: %w", path, name, err)
		}
		md.normalize()
	}
	return s, nil
}

// Path returns the file the store is persisted to.
func (s *Store) Path() string {
	return s.path
}

// Has reports whether name is registered.
func (s *Store) Has(name string) bool {
	_, ok := s.commands[name]
	return ok
}

// Get returns a copy of the metadata for name.
func (s *Store) Get(name string) (*Metadata, bool) {
	md, ok := s.commands[name]
	if !ok {
		return nil, false
	}
	return md.clone(), true
}

// Names returns all registered names, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (s *Store) Len() int {
	return len(s.commands)
}

// marshalWith encodes the store, pretty-printed with sorted keys, as it
// would look with md put in place. The in-memory store is not changed.
func (s *Store) marshalWith(md *Metadata) ([]byte, error) {
	out := make(map[string]*Metadata, len(s.commands)+1)
	for name, existing := range s.commands {
		out[name] = existing
	}
	if md != nil {
		md.normalize()
		out[md.Name] = md
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	return append(data, '\n'), nil
}

// put installs md after it has been persisted.
func (s *Store) put(md *Metadata) {
	s.commands[md.Name] = md
}
