package check

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aidanlsb/slashcmd/internal/ui"
)

// FormatText renders the report as markdown: a summary block followed by a
// section for every file with at least one error or warning.
func FormatText(r *Report) string {
	errs, warns, infos := r.Totals()

	var b strings.Builder
	b.WriteString("# Command Validation Report\n\n")
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total Commands: %d\n", len(r.Files))
	fmt.Fprintf(&b, "- %s Errors: %d\n", ui.SymbolError, errs)
	fmt.Fprintf(&b, "- %s Warnings: %d\n", ui.SymbolWarning, warns)
	fmt.Fprintf(&b, "- %s Info: %d\n", ui.SymbolInfo, infos)

	files := append([]FileResult(nil), r.Files...)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	for _, f := range files {
		if f.Count(LevelError) == 0 && f.Count(LevelWarning) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", filepath.Base(f.Path))
		for _, finding := range f.Findings {
			b.WriteString("- ")
			b.WriteString(symbolFor(finding.Level))
			b.WriteString(" ")
			b.WriteString(finding.Message)
			if finding.Line > 0 {
				fmt.Fprintf(&b, " (line %d)", finding.Line)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func symbolFor(level Level) string {
	switch level {
	case LevelError:
		return ui.SymbolError
	case LevelWarning:
		return ui.SymbolWarning
	default:
		return ui.SymbolInfo
	}
}
