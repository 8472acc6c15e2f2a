package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultAccent is the accent used when none is configured.
const DefaultAccent = "#A78BFA"

var (
	// Accent style for command names, file paths, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(DefaultAccent))

	// Muted style for secondary info, hints, line numbers
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	accentColor = DefaultAccent
)

// ConfigureTheme applies a configured accent color. "none", "off" and
// "default" disable the accent; unparseable values keep the default.
func ConfigureTheme(accent string) {
	trimmed := strings.ToLower(strings.TrimSpace(accent))
	switch trimmed {
	case "":
		return
	case "none", "off", "default":
		accentColor = ""
		Accent = lipgloss.NewStyle()
		return
	}

	color, ok := normalizeAccentColor(trimmed)
	if !ok {
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// AccentColor returns the active accent color, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

// normalizeAccentColor accepts an ANSI code (0-255) or #RGB / #RRGGBB hex.
func normalizeAccentColor(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}

	if strings.HasPrefix(value, "#") {
		hex := strings.ToLower(value[1:])
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return "", false
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", false
		}
		return "#" + hex, true
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return strconv.Itoa(n), true
}
