package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/slashcmd/internal/atomicfile"
	"github.com/aidanlsb/slashcmd/internal/command"
	"github.com/aidanlsb/slashcmd/internal/versions"
)

func atomicWrite(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	return atomicfile.WriteFile(path, []byte(content), 0o644)
}

// resolveCommandFile turns a path or bare command name into a command file
// path. Relative paths are tried against the working directory, then against
// the repository root.
func resolveCommandFile(arg string) (string, bool) {
	candidates := []string{arg}
	if !filepath.IsAbs(arg) {
		candidates = append(candidates, filepath.Join(resolvedRoot, arg))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			abs, err := filepath.Abs(c)
			if err != nil {
				return c, true
			}
			return abs, true
		}
	}

	name := strings.TrimSuffix(strings.TrimPrefix(arg, "/"), ".md")
	if entry, ok := command.Find(cfg.Layout(resolvedRoot), name); ok {
		return entry.Path, true
	}
	return "", false
}

// completeRegisteredNames offers names from the metadata store.
func completeRegisteredNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || cfg == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	m, err := openManager()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, name := range m.Store().Names() {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// relPath shows path relative to the repository root when possible.
func relPath(path string) string {
	if rel, err := filepath.Rel(resolvedRoot, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func metadataSummary(md *versions.Metadata) map[string]any {
	return map[string]any{
		"name":            md.Name,
		"type":            md.Type,
		"current_version": md.CurrentVersion,
		"description":     md.Description,
		"last_updated":    md.LastUpdated,
	}
}
