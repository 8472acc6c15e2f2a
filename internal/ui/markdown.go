package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// MarkdownRenderMargin is the left margin used for terminal markdown rendering.
const MarkdownRenderMargin = 2

// RenderMarkdown renders markdown content for terminal display.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour adds trailing newlines; normalize to a single trailing newline.
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

func markdownStyle() ansi.StyleConfig {
	muted := strPtr("8")
	var accent *string
	if color, ok := AccentColor(); ok {
		accent = strPtr(color)
	}

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockPrefix: "\n",
				BlockSuffix: "\n",
			},
			Margin: uintPtr(MarkdownRenderMargin),
		},
		List: ansi.StyleList{
			LevelIndent: 2,
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
				Color:       accent,
				Bold:        boolPtr(true),
			},
		},
		H1: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "# "}},
		H2: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "## "}},
		H3: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "### "}},
		Strong: ansi.StylePrimitive{
			Bold: boolPtr(true),
		},
		Emph: ansi.StylePrimitive{
			Italic: boolPtr(true),
		},
		Item: ansi.StylePrimitive{
			BlockPrefix: "• ",
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix: "`",
				Suffix: "`",
				Color:  muted,
			},
		},
		HorizontalRule: ansi.StylePrimitive{
			Color:  muted,
			Format: "\n--------\n",
		},
	}
}

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func uintPtr(v uint) *uint { return &v }
