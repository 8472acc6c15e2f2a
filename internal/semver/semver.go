// Package semver implements the strict MAJOR.MINOR.PATCH versions used to
// track command releases.
//
// Only three non-negative integer components are accepted. Pre-release
// suffixes, build metadata, a leading "v", and ranges are all rejected.
package semver

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidVersion is returned when a string is not MAJOR.MINOR.PATCH.
	ErrInvalidVersion = errors.New("invalid version format")

	// ErrInvalidChangeKind is returned for change kinds other than major, minor, or patch.
	ErrInvalidChangeKind = errors.New("invalid change kind")
)

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// Initial is the version every newly registered command starts at.
var Initial = Version{Major: 1}

// Version is a parsed semantic version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ChangeKind selects which component a release increments.
type ChangeKind string

const (
	Major ChangeKind = "major" // breaking changes
	Minor ChangeKind = "minor" // backwards-compatible features
	Patch ChangeKind = "patch" // fixes
)

// ChangeKinds lists the valid change kinds in increasing significance order.
func ChangeKinds() []ChangeKind {
	return []ChangeKind{Patch, Minor, Major}
}

// ParseChangeKind parses a change kind name (case-insensitive).
func ParseChangeKind(s string) (ChangeKind, error) {
	switch ChangeKind(strings.ToLower(strings.TrimSpace(s))) {
	case Major:
		return Major, nil
	case Minor:
		return Minor, nil
	case Patch:
		return Patch, nil
	}
	return "", fmt.Errorf("%w: %q (expected major, minor, or patch)", ErrInvalidChangeKind, s)
}

// Parse parses s, which must fully match MAJOR.MINOR.PATCH.
func Parse(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	var parts [3]int
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			// Only reachable when a component overflows int.
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
		parts[i] = n
	}
	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Valid reports whether s is a well-formed version string.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// String formats the version as MAJOR.MINOR.PATCH.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns the next version for the given change kind.
// A major bump resets minor and patch; a minor bump resets patch.
func (v Version) Bump(kind ChangeKind) (Version, error) {
	switch kind {
	case Major:
		return Version{Major: v.Major + 1}, nil
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	case Patch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	}
	return Version{}, fmt.Errorf("%w: %q", ErrInvalidChangeKind, string(kind))
}

// Compare returns -1, 0, or 1 comparing (major, minor, patch) lexicographically.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmp.Compare(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmp.Compare(v.Minor, other.Minor)
	default:
		return cmp.Compare(v.Patch, other.Patch)
	}
}

// AtLeast reports whether v >= required.
func (v Version) AtLeast(required Version) bool {
	return v.Compare(required) >= 0
}

// Increment parses s and bumps it. It is the string form of Parse + Bump.
func Increment(s string, kind ChangeKind) (string, error) {
	v, err := Parse(s)
	if err != nil {
		return "", err
	}
	next, err := v.Bump(kind)
	if err != nil {
		return "", err
	}
	return next.String(), nil
}
