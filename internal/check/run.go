package check

import (
	"fmt"

	"github.com/aidanlsb/slashcmd/internal/command"
)

// FileResult holds the findings for one command file.
type FileResult struct {
	Path     string       `json:"path"`
	Name     string       `json:"name"`
	Kind     command.Kind `json:"type"`
	Findings []Finding    `json:"findings"`
}

// Count returns the number of findings at the given level.
func (r FileResult) Count(level Level) int {
	n := 0
	for _, f := range r.Findings {
		if f.Level == level {
			n++
		}
	}
	return n
}

// Report is the outcome of checking every command in a repository.
type Report struct {
	Files []FileResult `json:"files"`
}

// Totals returns error, warning, and info counts across all files.
func (r *Report) Totals() (errors, warnings, infos int) {
	for _, f := range r.Files {
		errors += f.Count(LevelError)
		warnings += f.Count(LevelWarning)
		infos += f.Count(LevelInfo)
	}
	return errors, warnings, infos
}

// HasErrors reports whether any error-level finding exists.
func (r *Report) HasErrors() bool {
	errs, _, _ := r.Totals()
	return errs > 0
}

// ExitCode is 1 when the run failed: any error, or any warning when strict.
func (r *Report) ExitCode(strict bool) int {
	errs, warns, _ := r.Totals()
	if errs > 0 || (strict && warns > 0) {
		return 1
	}
	return 0
}

// ByFile returns findings keyed by file path, the machine-readable form.
func (r *Report) ByFile() map[string][]Finding {
	out := make(map[string][]Finding, len(r.Files))
	for _, f := range r.Files {
		findings := f.Findings
		if findings == nil {
			findings = []Finding{}
		}
		out[f.Path] = findings
	}
	return out
}

// Run checks every command under both kind directories of layout.
// A file that cannot be read gets a single error finding; other files are
// still checked.
func Run(layout command.Layout, opts Options) (*Report, error) {
	entries, err := command.Discover(layout)
	if err != nil {
		return nil, fmt.Errorf("discover commands: %w", err)
	}

	validator := NewValidator(command.NewIndex(entries), opts)
	report := &Report{Files: make([]FileResult, 0, len(entries))}

	for _, e := range entries {
		result := FileResult{Path: e.Path, Name: e.Name, Kind: e.Kind}

		doc, err := command.Load(e.Path, e.Kind)
		if err != nil {
			result.Findings = []Finding{{
				Level:   LevelError,
				Message: fmt.Sprintf("Failed to read: %v", err),
				File:    e.Path,
			}}
		} else {
			result.Findings = validator.ValidateDocument(doc)
		}

		report.Files = append(report.Files, result)
	}

	return report, nil
}
