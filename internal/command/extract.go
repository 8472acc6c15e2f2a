package command

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ArgumentsPlaceholder is replaced with the user's input when a command runs.
const ArgumentsPlaceholder = "$ARGUMENTS"

// FenceMarker is the triple-backtick code fence.
const FenceMarker = "```"

// Ref is a "/command-name" token found in a document body.
type Ref struct {
	Name string // without the leading slash
	Line int    // 1-indexed
}

// SubagentRef is a subagent role named via a subagent_type specifier.
type SubagentRef struct {
	Type string
	Line int
}

// Header is a line that begins with '#'.
type Header struct {
	Level int
	Text  string
	Line  int
}

// FencedBlock is a fenced code block located by the markdown parser.
type FencedBlock struct {
	Language string
	Line     int // line of the opening fence, 0 if unknown
}

var (
	refTokenPattern     = regexp.MustCompile(`^/[a-z][a-z0-9-]+$`)
	subagentTypePattern = regexp.MustCompile(`subagent_type["\s=:]+([a-z-]+)`)
)

// ExtractCommandRefs returns every "/name" token bounded by whitespace,
// backticks, or the line edges, in document order.
func ExtractCommandRefs(content string) []Ref {
	var refs []Ref
	for i, line := range strings.Split(content, "\n") {
		tokens := strings.FieldsFunc(line, func(r rune) bool {
			return r == '`' || unicode.IsSpace(r)
		})
		for _, tok := range tokens {
			if refTokenPattern.MatchString(tok) {
				refs = append(refs, Ref{Name: tok[1:], Line: i + 1})
			}
		}
	}
	return refs
}

// ExtractSubagentTypes returns the values of subagent_type specifiers such as
// `subagent_type: code-reviewer` or `subagent_type="debugger"`.
func ExtractSubagentTypes(content string) []SubagentRef {
	matches := subagentTypePattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return nil
	}

	lineStarts := computeLineStarts(content)
	refs := make([]SubagentRef, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, SubagentRef{
			Type: content[m[2]:m[3]],
			Line: offsetToLine(lineStarts, m[0]) + 1,
		})
	}
	return refs
}

// ExtractHeaders returns lines beginning with '#', with their level (the
// number of leading '#'). Lines inside the frontmatter block or inside fenced
// code blocks are skipped so shell comments are not mistaken for headers.
func ExtractHeaders(lines []string) []Header {
	var headers []Header

	first := 0
	if _, end, ok := FrontmatterBounds(lines); ok && end != -1 {
		first = end + 1
	}

	state := FenceState{}
	for i := first; i < len(lines); i++ {
		line := lines[i]
		if state.UpdateFenceState(line) || state.InFence {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			continue
		}
		trimmed := strings.TrimLeft(line, "#")
		headers = append(headers, Header{
			Level: len(line) - len(trimmed),
			Text:  strings.TrimSpace(trimmed),
			Line:  i + 1,
		})
	}
	return headers
}

// CountFenceMarkers counts occurrences of "```" in content.
func CountFenceMarkers(content string) int {
	return strings.Count(content, FenceMarker)
}

// ExtractFencedBlocks walks the markdown AST and returns every fenced code block.
func ExtractFencedBlocks(content string) []FencedBlock {
	source := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))
	lineStarts := computeLineStarts(content)

	var blocks []FencedBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		block := FencedBlock{Language: string(fenced.Language(source))}
		switch {
		case fenced.Info != nil:
			block.Line = offsetToLine(lineStarts, fenced.Info.Segment.Start) + 1
		case fenced.Lines().Len() > 0:
			// Opening fence is the line above the first content line.
			block.Line = offsetToLine(lineStarts, fenced.Lines().At(0).Start)
		}
		blocks = append(blocks, block)
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

// computeLineStarts computes the byte offset of each line start.
func computeLineStarts(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine converts a byte offset to a 0-indexed line number.
func offsetToLine(lineStarts []int, offset int) int {
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			return i
		}
	}
	return 0
}
