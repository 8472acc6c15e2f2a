package versions

import (
	"fmt"
	"strings"
	"time"

	"github.com/aidanlsb/slashcmd/internal/command"
)

// FormatReport lists every registered command grouped by kind (workflows,
// then tools) and sorted by name.
func FormatReport(s *Store, generated time.Time) string {
	var b strings.Builder
	b.WriteString("# Command Version Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n", generated.Format("2006-01-02 15:04:05"))

	groups := []struct {
		title string
		kind  command.Kind
	}{
		{"Workflows", command.KindWorkflow},
		{"Tools", command.KindTool},
	}

	for _, g := range groups {
		var names []string
		for _, name := range s.Names() {
			if s.commands[name].Type == g.kind {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n## %s\n\n", g.title)
		for _, name := range names {
			md := s.commands[name]
			fmt.Fprintf(&b, "- **%s** (v%s)\n", name, md.CurrentVersion)
			if md.Description != "" {
				fmt.Fprintf(&b, "  - %s\n", md.Description)
			}
			fmt.Fprintf(&b, "  - Last updated: %s\n", md.LastUpdatedDate())
		}
	}

	return b.String()
}
