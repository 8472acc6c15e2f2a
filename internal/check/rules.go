package check

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aidanlsb/slashcmd/internal/command"
	"github.com/aidanlsb/slashcmd/internal/semver"
	"github.com/aidanlsb/slashcmd/internal/slugs"
)

// Rule is one independent check. Rules never mutate the document.
type Rule struct {
	Name  string
	Check func(doc *command.Document, env *Env) []Finding
}

// Env is the repository-wide context shared by all rules in a run.
type Env struct {
	Index         *command.Index
	MaxNameLength int
	SubagentTypes map[string]struct{}
	ExcludedRefs  map[string]struct{}
}

// Task delegation markers looked for in workflows.
const (
	DelegationPhrase  = "Task tool"
	SubagentWord      = "subagent"
	SubagentSpecifier = "subagent_type"
)

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidName reports whether name matches the lowercase-hyphen convention.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// GenericRules returns the rules applied to every command, in execution order.
func GenericRules() []Rule {
	return []Rule{
		{Name: "structure", Check: checkStructure},
		{Name: "naming", Check: checkNaming},
		{Name: "placeholders", Check: checkPlaceholders},
		{Name: "markdown", Check: checkMarkdown},
		{Name: "references", Check: checkReferences},
		{Name: "metadata", Check: checkMetadata},
		{Name: "code-blocks", Check: checkCodeBlockLanguages},
	}
}

// WorkflowRules returns the rules applied to workflows after the generic ones.
func WorkflowRules() []Rule {
	return []Rule{
		{Name: "task-delegation", Check: checkTaskDelegation},
		{Name: "subagent-types", Check: checkSubagentTypes},
	}
}

func newFinding(doc *command.Document, level Level, line int, format string, args ...any) Finding {
	return Finding{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		File:    doc.ID(),
	}
}

func checkStructure(doc *command.Document, _ *Env) []Finding {
	var findings []Finding
	if strings.TrimSpace(doc.Content) == "" {
		findings = append(findings, newFinding(doc, LevelError, 0, "Command file is empty"))
	}
	if !hasHeaderLine(doc.Lines) {
		findings = append(findings, newFinding(doc, LevelWarning, 0, "Command should have at least one header"))
	}
	return findings
}

// hasHeaderLine reports whether any raw line starts with "#", wherever it
// sits in the file.
func hasHeaderLine(lines []string) bool {
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			return true
		}
	}
	return false
}

func checkNaming(doc *command.Document, env *Env) []Finding {
	var findings []Finding
	if !ValidName(doc.Name) {
		msg := fmt.Sprintf("Command name '%s' must use lowercase-hyphen format", doc.Name)
		if suggestion := slugs.CommandName(doc.Name); suggestion != "" {
			msg += fmt.Sprintf(" (try '%s')", suggestion)
		}
		findings = append(findings, newFinding(doc, LevelError, 0, "%s", msg))
	}
	if len(doc.Name) > env.MaxNameLength {
		findings = append(findings, newFinding(doc, LevelWarning, 0,
			"Command name '%s' is longer than %d characters", doc.Name, env.MaxNameLength))
	}
	return findings
}

func checkPlaceholders(doc *command.Document, _ *Env) []Finding {
	if strings.Contains(doc.Content, command.ArgumentsPlaceholder) {
		return nil
	}
	for _, verb := range ActionVerbs {
		if strings.Contains(doc.Name, verb) {
			return []Finding{newFinding(doc, LevelWarning, 0,
				"Command likely needs %s placeholder based on its name", command.ArgumentsPlaceholder)}
		}
	}
	return nil
}

func checkMarkdown(doc *command.Document, _ *Env) []Finding {
	var findings []Finding

	if command.CountFenceMarkers(doc.Content)%2 != 0 {
		line := strings.Count(doc.Content[:strings.LastIndex(doc.Content, command.FenceMarker)], "\n") + 1
		findings = append(findings, newFinding(doc, LevelError, line, "Unclosed code block detected"))
	}

	headers := command.ExtractHeaders(doc.Lines)
	for i := 1; i < len(headers); i++ {
		prev, curr := headers[i-1], headers[i]
		if curr.Level > prev.Level+1 {
			findings = append(findings, newFinding(doc, LevelWarning, curr.Line,
				"Header level jumps from %d to %d", prev.Level, curr.Level))
		}
	}
	return findings
}

func checkReferences(doc *command.Document, env *Env) []Finding {
	var findings []Finding
	for _, ref := range command.ExtractCommandRefs(doc.Content) {
		if ref.Name == doc.Name {
			continue
		}
		if _, excluded := env.ExcludedRefs[ref.Name]; excluded {
			continue
		}
		if !env.Index.Has(ref.Name) {
			findings = append(findings, newFinding(doc, LevelWarning, ref.Line,
				"Referenced command '/%s' not found", ref.Name))
		}
	}
	return findings
}

func checkMetadata(doc *command.Document, _ *Env) []Finding {
	fm := doc.Frontmatter
	if !fm.Present() {
		return nil
	}
	if fm.Status == command.FrontmatterMalformed {
		return []Finding{newFinding(doc, LevelError, 1, "Invalid YAML frontmatter: %s", fm.Reason)}
	}

	version, ok := fm.Version()
	if !ok {
		return nil
	}
	if !semver.Valid(version) {
		return []Finding{newFinding(doc, LevelError, versionLine(doc), "Invalid version format: %s", version)}
	}
	return nil
}

// versionLine finds the version key inside the frontmatter block.
func versionLine(doc *command.Document) int {
	for i := 1; i < doc.Frontmatter.EndLine-1 && i < len(doc.Lines); i++ {
		if strings.HasPrefix(doc.Lines[i], "version:") {
			return i + 1
		}
	}
	return 1
}

func checkCodeBlockLanguages(doc *command.Document, _ *Env) []Finding {
	var findings []Finding
	for _, block := range command.ExtractFencedBlocks(doc.Content) {
		if block.Language == "" {
			findings = append(findings, newFinding(doc, LevelInfo, block.Line, "Code block has no language tag"))
		}
	}
	return findings
}

func checkTaskDelegation(doc *command.Document, _ *Env) []Finding {
	var findings []Finding
	usesTaskTool := strings.Contains(doc.Content, DelegationPhrase)

	if !usesTaskTool && !strings.Contains(strings.ToLower(doc.Content), SubagentWord) {
		findings = append(findings, newFinding(doc, LevelWarning, 0,
			"Workflow should use %s for subagent coordination", DelegationPhrase))
	}
	if usesTaskTool && !strings.Contains(doc.Content, SubagentSpecifier) {
		findings = append(findings, newFinding(doc, LevelWarning, 0,
			"Workflow using %s should specify %s", DelegationPhrase, SubagentSpecifier))
	}
	return findings
}

func checkSubagentTypes(doc *command.Document, env *Env) []Finding {
	var findings []Finding
	for _, ref := range command.ExtractSubagentTypes(doc.Content) {
		if _, known := env.SubagentTypes[ref.Type]; !known {
			findings = append(findings, newFinding(doc, LevelWarning, ref.Line, "Unknown subagent type: %s", ref.Type))
		}
	}
	return findings
}
