package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 100

// DisplayContext holds display parameters, auto-detecting terminal width.
type DisplayContext struct {
	TermWidth int  // detected or fallback terminal width
	IsTTY     bool // whether stdout is a terminal
}

// NewDisplayContext creates a DisplayContext for stdout.
func NewDisplayContext() *DisplayContext {
	return newDisplayContext(os.Stdout)
}

func newDisplayContext(f *os.File) *DisplayContext {
	fd := f.Fd()
	isTTY := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	width := DefaultTermWidth
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}

	return &DisplayContext{TermWidth: width, IsTTY: isTTY}
}

// NewDisplayContextWithWidth creates a DisplayContext with a fixed width (for testing).
func NewDisplayContextWithWidth(width int, isTTY bool) *DisplayContext {
	return &DisplayContext{TermWidth: width, IsTTY: isTTY}
}

// Markdown renders markdown for a terminal, or returns it unchanged when
// stdout is not a terminal or rendering fails.
func (d *DisplayContext) Markdown(content string) string {
	if !d.IsTTY {
		return content
	}
	rendered, err := RenderMarkdown(content, d.TermWidth-MarkdownRenderMargin)
	if err != nil {
		return content
	}
	return rendered
}
