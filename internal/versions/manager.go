package versions

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aidanlsb/slashcmd/internal/atomicfile"
	"github.com/aidanlsb/slashcmd/internal/command"
	"github.com/aidanlsb/slashcmd/internal/semver"
	"github.com/aidanlsb/slashcmd/internal/slugs"
)

var (
	// ErrNotRegistered is returned when updating a command missing from the store.
	ErrNotRegistered = errors.New("command not registered")

	// ErrNoChanges is returned when an update lists no change descriptions.
	ErrNoChanges = errors.New("at least one change description is required")
)

// InitialChange is the history note recorded for a command's first release.
const InitialChange = "Initial release"

// Options configures a Manager. Empty fields use the defaults.
type Options struct {
	MetadataFile   string // relative to the layout root
	ChangelogFile  string // relative to the layout root
	ChangelogTitle string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Logger receives notices. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Manager performs version operations on one repository.
//
// Every mutating operation reads the whole store, computes all new file
// contents in memory, and commits them with an atomicfile.Batch, so a failed
// operation leaves the store, the command file, and the changelog as they were.
// Only one process should operate on a repository at a time: two concurrent
// invocations can each read the store and the later write wins.
type Manager struct {
	layout         command.Layout
	store          *Store
	changelogPath  string
	changelogTitle string
	now            func() time.Time
	logger         *slog.Logger
}

// Open loads the metadata store for the repository described by layout.
func Open(layout command.Layout, opts Options) (*Manager, error) {
	if opts.MetadataFile == "" {
		opts.MetadataFile = DefaultMetadataFile
	}
	if opts.ChangelogFile == "" {
		opts.ChangelogFile = DefaultChangelogFile
	}
	if opts.ChangelogTitle == "" {
		opts.ChangelogTitle = DefaultChangelogTitle
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	store, err := LoadStore(filepath.Join(layout.Root, opts.MetadataFile))
	if err != nil {
		return nil, err
	}

	return &Manager{
		layout:         layout,
		store:          store,
		changelogPath:  filepath.Join(layout.Root, opts.ChangelogFile),
		changelogTitle: opts.ChangelogTitle,
		now:            opts.Now,
		logger:         opts.Logger,
	}, nil
}

// Store exposes the loaded metadata for read-only use.
func (m *Manager) Store() *Store {
	return m.store
}

// Get returns a copy of one command's metadata.
func (m *Manager) Get(name string) (*Metadata, bool) {
	return m.store.Get(name)
}

func (m *Manager) timestamp() string {
	return m.now().Format(TimestampLayout)
}

// InitOptions carries the optional descriptive fields for Initialize.
type InitOptions struct {
	Description  string
	Tags         []string
	Dependencies []string
}

// InitResult describes the outcome of Initialize.
type InitResult struct {
	Name    string       `json:"name"`
	Kind    command.Kind `json:"type"`
	Version string       `json:"version"`
	// AlreadyRegistered is true when the call was a no-op.
	AlreadyRegistered bool `json:"already_registered"`
}

// Initialize registers the command file at path at version 1.0.0 and embeds
// the version in its frontmatter. Initializing a registered command is a no-op.
func (m *Manager) Initialize(path string, opts InitOptions) (InitResult, error) {
	name := command.NameFromPath(path)
	kind := m.layout.KindOf(path)

	if existing, ok := m.store.Get(name); ok {
		m.logger.Info("command already initialized", "command", name, "version", existing.CurrentVersion)
		return InitResult{Name: name, Kind: existing.Type, Version: existing.CurrentVersion, AlreadyRegistered: true}, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return InitResult{}, fmt.Errorf("read command %s: %w", path, err)
	}

	version := semver.Initial.String()
	ts := m.timestamp()
	md := &Metadata{
		Name:           name,
		Type:           kind,
		Description:    opts.Description,
		CurrentVersion: version,
		Created:        ts,
		LastUpdated:    ts,
		Tags:           append([]string{}, opts.Tags...),
		Dependencies:   append([]string{}, opts.Dependencies...),
		VersionHistory: []Entry{{
			Version:  version,
			Released: ts,
			Changes:  []string{InitialChange},
		}},
	}

	storeData, err := m.store.marshalWith(md)
	if err != nil {
		return InitResult{}, err
	}

	var batch atomicfile.Batch
	batch.Add(m.store.Path(), storeData, 0)
	batch.Add(path, []byte(command.SetVersion(string(content), version)), 0)
	if err := batch.Commit(); err != nil {
		return InitResult{}, fmt.Errorf("initialize %s: %w", name, err)
	}

	m.store.put(md)
	m.logger.Info("initialized command", "command", name, "version", version)
	return InitResult{Name: name, Kind: kind, Version: version}, nil
}

// InitializeAll registers every unregistered command under both kind
// directories with a generated description. Already registered commands are
// skipped and not included in the results.
func (m *Manager) InitializeAll() ([]InitResult, error) {
	entries, err := command.Discover(m.layout)
	if err != nil {
		return nil, err
	}

	var results []InitResult
	for _, e := range entries {
		if m.store.Has(e.Name) {
			continue
		}
		prefix := "Tool"
		if e.Kind == command.KindWorkflow {
			prefix = "Workflow"
		}
		res, err := m.Initialize(e.Path, InitOptions{
			Description: prefix + ": " + slugs.Title(e.Name),
		})
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// UpdateRequest describes a new release of a registered command.
type UpdateRequest struct {
	Name               string
	Kind               semver.ChangeKind
	Changes            []string
	BreakingChanges    []string
	DeprecatedFeatures []string
}

// UpdateResult describes a committed release.
type UpdateResult struct {
	Name       string `json:"name"`
	OldVersion string `json:"old_version"`
	NewVersion string `json:"new_version"`
	Entry      Entry  `json:"entry"`
	// FileUpdated is false when the command file could not be found and only
	// the store and changelog were written.
	FileUpdated bool `json:"file_updated"`
}

// Update bumps a registered command's version, appends a history entry,
// rewrites the version embedded in the command file, and adds a changelog
// section. Nothing is written if any step fails.
func (m *Manager) Update(req UpdateRequest) (UpdateResult, error) {
	current, ok := m.store.Get(req.Name)
	if !ok {
		return UpdateResult{}, fmt.Errorf("%w: %s", ErrNotRegistered, req.Name)
	}
	changes := nonEmpty(req.Changes)
	if len(changes) == 0 {
		return UpdateResult{}, ErrNoChanges
	}

	oldVersion := current.CurrentVersion
	newVersion, err := semver.Increment(oldVersion, req.Kind)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update %s: %w", req.Name, err)
	}

	now := m.now()
	entry := Entry{
		Version:            newVersion,
		Released:           now.Format(TimestampLayout),
		Changes:            changes,
		BreakingChanges:    nonEmpty(req.BreakingChanges),
		DeprecatedFeatures: nonEmpty(req.DeprecatedFeatures),
	}

	updated := current
	updated.CurrentVersion = newVersion
	updated.LastUpdated = entry.Released
	updated.VersionHistory = append(updated.VersionHistory, entry)

	storeData, err := m.store.marshalWith(updated)
	if err != nil {
		return UpdateResult{}, err
	}

	var batch atomicfile.Batch
	batch.Add(m.store.Path(), storeData, 0)

	fileUpdated := false
	if file, found := command.Find(m.layout, req.Name); found {
		content, err := os.ReadFile(file.Path)
		if err != nil {
			return UpdateResult{}, fmt.Errorf("read command %s: %w", file.Path, err)
		}
		batch.Add(file.Path, []byte(command.SetVersion(string(content), newVersion)), 0)
		fileUpdated = true
	} else {
		m.logger.Warn("command file not found; only metadata and changelog updated", "command", req.Name)
	}

	changelog, err := m.renderChangelog(req.Name, entry, now)
	if err != nil {
		return UpdateResult{}, err
	}
	batch.Add(m.changelogPath, []byte(changelog), 0)

	if err := batch.Commit(); err != nil {
		return UpdateResult{}, fmt.Errorf("update %s: %w", req.Name, err)
	}
	m.logger.Debug("release committed", "command", req.Name, "files", batch.Paths())

	m.store.put(updated)
	m.logger.Info("updated command", "command", req.Name, "from", oldVersion, "to", newVersion)

	return UpdateResult{
		Name:        req.Name,
		OldVersion:  oldVersion,
		NewVersion:  newVersion,
		Entry:       entry,
		FileUpdated: fileUpdated,
	}, nil
}

func (m *Manager) renderChangelog(name string, entry Entry, now time.Time) (string, error) {
	section := FormatChangelogEntry(name, entry, now.Format("2006-01-02"))

	existing, err := os.ReadFile(m.changelogPath)
	if errors.Is(err, fs.ErrNotExist) {
		return NewChangelog(m.changelogTitle, section), nil
	}
	if err != nil {
		return "", fmt.Errorf("read changelog %s: %w", m.changelogPath, err)
	}
	return InsertChangelogEntry(string(existing), section), nil
}

// CheckCompatibility reports whether name is registered and its current
// version is at least required. A malformed required version is an error.
func (m *Manager) CheckCompatibility(name, required string) (bool, error) {
	want, err := semver.Parse(required)
	if err != nil {
		return false, err
	}

	md, ok := m.store.Get(name)
	if !ok {
		return false, nil
	}

	have, err := semver.Parse(md.CurrentVersion)
	if err != nil {
		return false, fmt.Errorf("stored version for %s: %w", name, err)
	}
	return have.AtLeast(want), nil
}

// Report renders the version report for all registered commands.
func (m *Manager) Report() string {
	return FormatReport(m.store, m.now())
}

func nonEmpty(items []string) []string {
	out := []string{}
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
