// Package buildinfo holds release metadata set at link time, e.g.
// -ldflags "-X github.com/aidanlsb/slashcmd/internal/buildinfo.Version=v1.0.0".
package buildinfo

// Empty for local builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
