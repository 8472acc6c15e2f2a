// Package config handles the optional per-repository slashcmd configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/slashcmd/internal/atomicfile"
	"github.com/aidanlsb/slashcmd/internal/check"
	"github.com/aidanlsb/slashcmd/internal/command"
	"github.com/aidanlsb/slashcmd/internal/versions"
)

// FileName is the config file looked up at the repository root.
const FileName = ".slashcmd.toml"

// Config represents a repository's slashcmd configuration.
type Config struct {
	// WorkflowsDir holds workflow commands, relative to the repository root.
	WorkflowsDir string `toml:"workflows_dir"`

	// ToolsDir holds tool commands, relative to the repository root.
	ToolsDir string `toml:"tools_dir"`

	// MetadataFile is the version store, relative to the repository root.
	MetadataFile string `toml:"metadata_file"`

	// ChangelogFile is the changelog, relative to the repository root.
	ChangelogFile string `toml:"changelog_file"`

	// ChangelogTitle heads a newly created changelog.
	ChangelogTitle string `toml:"changelog_title"`

	Check CheckConfig `toml:"check"`
	UI    UIConfig    `toml:"ui"`

	// Undecoded lists keys present in the file that slashcmd does not know.
	Undecoded []string `toml:"-"`
}

// CheckConfig tunes validation.
type CheckConfig struct {
	// ExtraSubagentTypes are accepted in addition to the built-in roles.
	ExtraSubagentTypes []string `toml:"extra_subagent_types"`

	// ExtraExcludedRefs are slash tokens never treated as command references.
	ExtraExcludedRefs []string `toml:"extra_excluded_refs"`

	MaxNameLength int `toml:"max_name_length"`

	// Strict makes warnings fail the check run.
	Strict bool `toml:"strict"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0" to "255") or a hex color ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		WorkflowsDir:   "workflows",
		ToolsDir:       "tools",
		MetadataFile:   versions.DefaultMetadataFile,
		ChangelogFile:  versions.DefaultChangelogFile,
		ChangelogTitle: versions.DefaultChangelogTitle,
		Check: CheckConfig{
			MaxNameLength: check.DefaultMaxNameLength,
		},
	}
}

// DefaultPath returns the config path for a repository root.
func DefaultPath(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads the config at path. A missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	meta, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	for _, key := range meta.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, key.String())
	}

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// fillDefaults restores defaults for keys explicitly set to empty strings.
func (c *Config) fillDefaults() {
	d := Default()
	if strings.TrimSpace(c.WorkflowsDir) == "" {
		c.WorkflowsDir = d.WorkflowsDir
	}
	if strings.TrimSpace(c.ToolsDir) == "" {
		c.ToolsDir = d.ToolsDir
	}
	if strings.TrimSpace(c.MetadataFile) == "" {
		c.MetadataFile = d.MetadataFile
	}
	if strings.TrimSpace(c.ChangelogFile) == "" {
		c.ChangelogFile = d.ChangelogFile
	}
	if strings.TrimSpace(c.ChangelogTitle) == "" {
		c.ChangelogTitle = d.ChangelogTitle
	}
}

// Validate rejects settings that would point outside the repository or make
// no sense.
func (c *Config) Validate() error {
	paths := map[string]string{
		"workflows_dir":  c.WorkflowsDir,
		"tools_dir":      c.ToolsDir,
		"metadata_file":  c.MetadataFile,
		"changelog_file": c.ChangelogFile,
	}
	for key, p := range paths {
		if filepath.IsAbs(p) || !filepath.IsLocal(p) {
			return fmt.Errorf("%s must be a path inside the repository, got %q", key, p)
		}
	}
	if filepath.Clean(c.WorkflowsDir) == filepath.Clean(c.ToolsDir) {
		return fmt.Errorf("workflows_dir and tools_dir must differ")
	}
	if c.Check.MaxNameLength < 0 {
		return fmt.Errorf("check.max_name_length must not be negative")
	}
	return nil
}

// Layout returns the command directory layout for a repository root.
func (c *Config) Layout(root string) command.Layout {
	return command.Layout{Root: root, WorkflowsDir: c.WorkflowsDir, ToolsDir: c.ToolsDir}
}

// CheckOptions returns the validation options.
func (c *Config) CheckOptions() check.Options {
	return check.Options{
		ExtraSubagentTypes: c.Check.ExtraSubagentTypes,
		ExtraExcludedRefs:  c.Check.ExtraExcludedRefs,
		MaxNameLength:      c.Check.MaxNameLength,
	}
}

// VersionOptions returns the version manager's file settings. The caller
// supplies the clock and logger.
func (c *Config) VersionOptions() versions.Options {
	return versions.Options{
		MetadataFile:   c.MetadataFile,
		ChangelogFile:  c.ChangelogFile,
		ChangelogTitle: c.ChangelogTitle,
	}
}

const defaultConfig = `# slashcmd configuration

# Command directories, relative to this file.
# workflows_dir = "workflows"
# tools_dir = "tools"

# Version tracking files.
# metadata_file = ".command-metadata.json"
# changelog_file = "CHANGELOG.md"
# changelog_title = "Claude Code Commands Changelog"

# [check]
# Subagent roles accepted in addition to the built-in list.
# extra_subagent_types = ["docs-writer"]
# Slash tokens that are never command references.
# extra_excluded_refs = ["health"]
# max_name_length = 30
# Treat warnings as failures.
# strict = false

# [ui]
# Accent color for headers in terminal output: ANSI code (0-255) or #RRGGBB.
# accent = "39"
`

// CreateDefault writes a commented default config at path unless a file
// already exists. It reports whether a file was created.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := atomicfile.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}
