package ui

import "fmt"

// Unicode symbols for status indicators
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

// Success returns a success message with checkmark symbol
func Success(msg string) string {
	return fmt.Sprintf("%s %s", SymbolSuccess, msg)
}

// Successf returns a formatted success message with checkmark symbol
func Successf(format string, args ...any) string {
	return Success(fmt.Sprintf(format, args...))
}

// Errorf returns a formatted error message with X symbol
func Errorf(format string, args ...any) string {
	return fmt.Sprintf("%s %s", SymbolError, fmt.Sprintf(format, args...))
}

// Warningf returns a formatted warning message with warning symbol
func Warningf(format string, args ...any) string {
	return fmt.Sprintf("%s %s", SymbolWarning, fmt.Sprintf(format, args...))
}

// Infof returns a formatted info message with info symbol
func Infof(format string, args ...any) string {
	return fmt.Sprintf("%s %s", SymbolInfo, fmt.Sprintf(format, args...))
}

// Header returns a styled section header
func Header(msg string) string {
	return Bold.Render(msg)
}

// Name returns an accent-styled command name or path
func Name(s string) string {
	return Accent.Render(s)
}

// Hint returns muted hint text
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Count returns a count with the right noun form, e.g. "3 errors".
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// ErrorWarningCounts returns e.g. "(3 errors, 2 warnings)".
func ErrorWarningCounts(errors, warnings int) string {
	switch {
	case errors > 0 && warnings > 0:
		return fmt.Sprintf("(%s, %s)", Count(errors, "error", "errors"), Count(warnings, "warning", "warnings"))
	case errors > 0:
		return "(" + Count(errors, "error", "errors") + ")"
	default:
		return "(" + Count(warnings, "warning", "warnings") + ")"
	}
}
