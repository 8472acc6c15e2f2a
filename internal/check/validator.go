package check

import "github.com/aidanlsb/slashcmd/internal/command"

// Validator applies the rule set to documents. It holds no per-document
// state, so one Validator can check a whole repository.
type Validator struct {
	env      *Env
	generic  []Rule
	workflow []Rule
}

// NewValidator creates a validator that resolves references against index.
func NewValidator(index *command.Index, opts Options) *Validator {
	return &Validator{
		env: &Env{
			Index:         index,
			MaxNameLength: opts.maxNameLength(),
			SubagentTypes: toSet(DefaultSubagentTypes, opts.ExtraSubagentTypes),
			ExcludedRefs:  toSet(DefaultExcludedRefs, opts.ExtraExcludedRefs),
		},
		generic:  GenericRules(),
		workflow: WorkflowRules(),
	}
}

// ValidateDocument runs the generic rules, plus the workflow rules for
// workflow documents. Findings are ordered by rule, then by position.
func (v *Validator) ValidateDocument(doc *command.Document) []Finding {
	findings := runRules(v.generic, doc, v.env)
	if doc.IsWorkflow() {
		findings = append(findings, runRules(v.workflow, doc, v.env)...)
	}
	return findings
}

func runRules(rules []Rule, doc *command.Document, env *Env) []Finding {
	var findings []Finding
	for _, rule := range rules {
		findings = append(findings, rule.Check(doc, env)...)
	}
	return findings
}
