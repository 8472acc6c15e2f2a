package check

// DefaultMaxNameLength is the longest command name accepted without a warning.
const DefaultMaxNameLength = 30

// ActionVerbs mark command names that almost certainly take user input.
var ActionVerbs = []string{
	"create", "generate", "build", "implement", "add", "modify",
	"analyze", "review", "optimize", "migrate", "convert",
}

// DefaultSubagentTypes are the subagent roles a workflow may delegate to.
var DefaultSubagentTypes = []string{
	"backend-architect", "frontend-developer", "test-automator",
	"deployment-engineer", "debugger", "performance-engineer",
	"security-auditor", "code-reviewer", "database-optimizer",
	"devops-troubleshooter", "network-engineer", "cloud-architect",
}

// DefaultExcludedRefs are slash tokens that look like command references but
// are system paths, HTML closing tags, CI action names, or API segments.
var DefaultExcludedRefs = []string{
	"localhost", "bin", "bash", "usr", "etc", "var", "tmp",
	"pre-commit", "checkout", "upload", "download", "cli",
	"setup-node", "workflows", "tools", "actions",
	"div", "span", "button", "form", "label", "input",
	"h1", "h2", "h3", "h4", "h5", "h6", "p", "a",
	"title", "head", "body", "style", "script", "fieldset",
	"legend", "stopped",
	"api", "auth", "user", "admin", "config",
}

// Options tunes the rule set. The zero value uses the defaults.
type Options struct {
	// ExtraSubagentTypes extends DefaultSubagentTypes.
	ExtraSubagentTypes []string
	// ExtraExcludedRefs extends DefaultExcludedRefs.
	ExtraExcludedRefs []string
	// MaxNameLength overrides DefaultMaxNameLength when positive.
	MaxNameLength int
}

func (o Options) maxNameLength() int {
	if o.MaxNameLength > 0 {
		return o.MaxNameLength
	}
	return DefaultMaxNameLength
}

func toSet(lists ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, s := range list {
			set[s] = struct{}{}
		}
	}
	return set
}
