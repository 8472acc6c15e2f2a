package versions

import (
	"fmt"
	"strings"
)

// DefaultChangelogFile is the changelog's file name at the repository root.
const DefaultChangelogFile = "CHANGELOG.md"

// DefaultChangelogTitle heads a freshly created changelog.
const DefaultChangelogTitle = "Claude Code Commands Changelog"

// FormatChangelogEntry renders the section for one release. Subsections
// appear in a fixed order (breaking, changes, deprecated); empty ones are omitted.
func FormatChangelogEntry(name string, e Entry, date string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## [%s] %s - %s\n", name, e.Version, date)

	writeSection := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n### %s\n", title)
		for _, item := range items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}
	writeSection("Breaking Changes", e.BreakingChanges)
	writeSection("Changes", e.Changes)
	writeSection("Deprecated", e.DeprecatedFeatures)

	return b.String()
}

// InsertChangelogEntry places entry right after the first top-level header
// ("# ..."). Without such a header the entry goes at the top of the document.
// Lines before and after the insertion point are kept byte for byte; a blank
// line is added only where the entry would otherwise touch other text.
func InsertChangelogEntry(existing, entry string) string {
	lines := strings.Split(existing, "\n")

	insertAt := 0
	for i, line := range lines {
		if strings.HasPrefix(line, "# ") {
			insertAt = i + 1
			break
		}
	}

	head := lines[:insertAt]
	rest := lines[insertAt:]

	out := make([]string, 0, len(lines)+strings.Count(entry, "\n")+2)
	out = append(out, head...)
	if len(head) > 0 {
		out = append(out, "")
	}
	out = append(out, strings.Split(strings.TrimRight(entry, "\n"), "\n")...)
	switch {
	case len(rest) == 0:
		out = append(out, "")
	case strings.TrimSpace(rest[0]) != "":
		out = append(out, "")
	}
	out = append(out, rest...)

	return strings.Join(out, "\n")
}

// NewChangelog creates a changelog holding a single entry.
func NewChangelog(title, entry string) string {
	return "# " + title + "\n\n" + entry
}
