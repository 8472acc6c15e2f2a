// Package slugs derives lowercase-hyphen command names from arbitrary text.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// CommandName converts s into a name matching ^[a-z][a-z0-9-]*$.
// It returns "" when s contains no usable letters.
func CommandName(s string) string {
	s = strings.TrimSuffix(s, ".md")
	slugged := goslug.Make(strings.ReplaceAll(s, "_", "-"))
	slugged = strings.ReplaceAll(slugged, "_", "-")
	for strings.Contains(slugged, "--") {
		slugged = strings.ReplaceAll(slugged, "--", "-")
	}
	slugged = strings.TrimLeft(slugged, "-0123456789")
	return strings.TrimRight(slugged, "-")
}

// Title turns a command name into words for display ("api-scaffold" -> "Api Scaffold").
func Title(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
