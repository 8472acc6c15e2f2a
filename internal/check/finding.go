// Package check validates command documents against a fixed set of rules.
package check

import (
	"fmt"
	"strings"
)

// Level indicates the severity of a finding.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name.
func (l *Level) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "error":
		*l = LevelError
	case "warning", "warn":
		*l = LevelWarning
	case "info":
		*l = LevelInfo
	default:
		return fmt.Errorf("unknown level %q", string(b))
	}
	return nil
}

// Finding is one reported issue with a command document.
type Finding struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
	// Line is 1-indexed; 0 means the finding applies to the whole document.
	Line int    `json:"line_number,omitempty"`
	File string `json:"-"`
}

func (f Finding) String() string {
	if f.Line > 0 {
		return fmt.Sprintf("%s: %s:%d - %s", f.Level, f.File, f.Line, f.Message)
	}
	return fmt.Sprintf("%s: %s - %s", f.Level, f.File, f.Message)
}
