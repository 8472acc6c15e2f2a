package command

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontmatterDelimiter opens and closes a frontmatter block on its own line.
const FrontmatterDelimiter = "---"

// FrontmatterStatus is the outcome of parsing a document prologue.
type FrontmatterStatus int

const (
	// FrontmatterAbsent means the document does not start with a delimiter line.
	FrontmatterAbsent FrontmatterStatus = iota
	// FrontmatterParsed means the block parsed as a YAML mapping.
	FrontmatterParsed
	// FrontmatterMalformed means the block is unterminated or not a YAML mapping.
	FrontmatterMalformed
)

func (s FrontmatterStatus) String() string {
	switch s {
	case FrontmatterParsed:
		return "parsed"
	case FrontmatterMalformed:
		return "malformed"
	default:
		return "absent"
	}
}

// Frontmatter is the parse result for a document's optional YAML prologue.
// Parsing never fails outright: problems are reported through Status and Reason.
type Frontmatter struct {
	Status FrontmatterStatus

	// Fields holds the decoded mapping when Status is FrontmatterParsed.
	Fields map[string]any

	// Raw is the text between the delimiters.
	Raw string

	// EndLine is the 1-indexed line of the closing delimiter (0 if none).
	EndLine int

	// Reason explains a FrontmatterMalformed result.
	Reason string

	// scalars keeps the literal text of top-level scalar values so that
	// "version: 1.10" is not reported as "1.1".
	scalars map[string]string
}

// Present reports whether the document starts with a frontmatter block,
// well-formed or not.
func (f Frontmatter) Present() bool {
	return f.Status != FrontmatterAbsent
}

// Version returns the literal value of the top-level version key.
func (f Frontmatter) Version() (string, bool) {
	if f.Status != FrontmatterParsed {
		return "", false
	}
	if _, ok := f.Fields["version"]; !ok {
		return "", false
	}
	return f.scalars["version"], true
}

// FrontmatterBounds returns the opening and closing frontmatter line indices.
// It only detects frontmatter when the first line is '---'.
// If frontmatter is present but unclosed, endLine is -1.
func FrontmatterBounds(lines []string) (startLine int, endLine int, ok bool) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != FrontmatterDelimiter {
		return 0, -1, false
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == FrontmatterDelimiter {
			return 0, i, true
		}
	}

	return 0, -1, true
}

// ParseFrontmatter parses the YAML frontmatter block of content, if any.
func ParseFrontmatter(content string) Frontmatter {
	lines := strings.Split(content, "\n")

	_, endLine, ok := FrontmatterBounds(lines)
	if !ok {
		return Frontmatter{Status: FrontmatterAbsent}
	}
	if endLine == -1 {
		return Frontmatter{
			Status: FrontmatterMalformed,
			Reason: "frontmatter block is not closed with '---'",
		}
	}

	raw := strings.Join(lines[1:endLine], "\n")
	fm := Frontmatter{
		Raw:     raw,
		EndLine: endLine + 1,
		Fields:  map[string]any{},
		scalars: map[string]string{},
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		fm.Status = FrontmatterMalformed
		fm.Reason = err.Error()
		fm.Fields = nil
		return fm
	}

	// Empty (or comment-only) frontmatter is still frontmatter.
	if len(doc.Content) == 0 {
		fm.Status = FrontmatterParsed
		return fm
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		fm.Status = FrontmatterMalformed
		fm.Reason = "frontmatter must be a mapping of keys to values"
		fm.Fields = nil
		return fm
	}

	if err := root.Decode(&fm.Fields); err != nil {
		fm.Status = FrontmatterMalformed
		fm.Reason = err.Error()
		fm.Fields = nil
		return fm
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind == yaml.ScalarNode {
			fm.scalars[key.Value] = value.Value
		}
	}

	fm.Status = FrontmatterParsed
	return fm
}

var versionLinePattern = regexp.MustCompile(`^version:.*$`)

// SetVersion rewrites content so its frontmatter carries "version: <version>".
//
// An existing top-level version line is replaced in place; otherwise one is
// appended just before the closing delimiter. Content without frontmatter, or
// with an unterminated block, gets a fresh minimal block prepended.
func SetVersion(content, version string) string {
	versionLine := "version: " + version

	lines := strings.Split(content, "\n")
	_, endLine, ok := FrontmatterBounds(lines)
	if !ok || endLine == -1 {
		return FrontmatterDelimiter + "\n" + versionLine + "\n" + FrontmatterDelimiter + "\n" + content
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:endLine]...)

	replaced := false
	for i := 1; i < endLine; i++ {
		line := strings.TrimSuffix(out[i], "\r")
		if versionLinePattern.MatchString(line) {
			out[i] = versionLine + strings.TrimPrefix(out[i], line)
			replaced = true
			break
		}
	}
	if !replaced {
		out = append(out, versionLine)
	}

	out = append(out, lines[endLine:]...)
	return strings.Join(out, "\n")
}
