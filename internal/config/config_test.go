package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkflowsDir != "workflows" || cfg.ToolsDir != "tools" {
		t.Errorf("unexpected dirs: %q %q", cfg.WorkflowsDir, cfg.ToolsDir)
	}
	if cfg.MetadataFile != ".command-metadata.json" || cfg.ChangelogFile != "CHANGELOG.md" {
		t.Errorf("unexpected files: %q %q", cfg.MetadataFile, cfg.ChangelogFile)
	}
	if cfg.Check.MaxNameLength != 30 {
		t.Errorf("expected max name length 30, got %d", cfg.Check.MaxNameLength)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
workflows_dir = "commands/workflows"
changelog_title = ""

[check]
extra_subagent_types = ["docs-writer"]
extra_excluded_refs = ["health"]
max_name_length = 40
strict = true

[ui]
accent = "#ff8800"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.WorkflowsDir != "commands/workflows" {
		t.Errorf("workflows_dir = %q", cfg.WorkflowsDir)
	}
	if cfg.ToolsDir != "tools" {
		t.Errorf("tools_dir should keep default, got %q", cfg.ToolsDir)
	}
	if cfg.ChangelogTitle != "Claude Code Commands Changelog" {
		t.Errorf("empty changelog_title should fall back to default, got %q", cfg.ChangelogTitle)
	}
	if !cfg.Check.Strict || cfg.UI.Accent != "#ff8800" {
		t.Errorf("unexpected check/ui config: %+v %+v", cfg.Check, cfg.UI)
	}

	opts := cfg.CheckOptions()
	if opts.MaxNameLength != 40 || len(opts.ExtraSubagentTypes) != 1 || opts.ExtraExcludedRefs[0] != "health" {
		t.Errorf("unexpected check options: %+v", opts)
	}

	layout := cfg.Layout("/repo")
	if layout.Root != "/repo" || layout.WorkflowsDir != "commands/workflows" {
		t.Errorf("unexpected layout: %+v", layout)
	}
}

func TestLoadReportsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "workflow_dir = \"flows\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Undecoded) != 1 || cfg.Undecoded[0] != "workflow_dir" {
		t.Errorf("expected workflow_dir to be reported, got %v", cfg.Undecoded)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid toml", "workflows_dir = \n"},
		{"absolute dir", "tools_dir = \"/etc\"\n"},
		{"escaping dir", "metadata_file = \"../meta.json\"\n"},
		{"same dirs", "workflows_dir = \"cmds\"\ntools_dir = \"cmds\"\n"},
		{"negative length", "[check]\nmax_name_length = -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCreateDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	created, err := CreateDefault(path)
	if err != nil || !created {
		t.Fatalf("CreateDefault() = %v, %v", created, err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("default config does not load: %v", err)
	}
	if cfg.WorkflowsDir != "workflows" {
		t.Errorf("unexpected workflows_dir %q", cfg.WorkflowsDir)
	}

	if err := os.WriteFile(path, []byte("tools_dir = \"t\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	created, err = CreateDefault(path)
	if err != nil || created {
		t.Fatalf("second CreateDefault() = %v, %v; want no-op", created, err)
	}
	if got, _ := os.ReadFile(path); string(got) != "tools_dir = \"t\"\n" {
		t.Errorf("existing config overwritten: %q", got)
	}
}
