// Package semver reads and increments the MAJOR.MINOR.PATCH version of the dictionary package.
package semver

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrVersionNotFound is returned when no __version__ assignment can be extracted.
	ErrVersionNotFound = errors.New("no __version__ assignment found")
	// ErrInvalidVersion is returned for strings that are not exactly three
	// non-negative integers without leading zeros or surrounding whitespace.
	ErrInvalidVersion = errors.New("invalid version")
)

var versionMarker = regexp.MustCompile(`__version__\s*=\s*(?:"([^"\n]*)"|'([^'\n]*)')`)

// Version represents a semantic version with major, minor, and patch components.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses a version string in the format "X.Y.Z". The input must be in
// canonical form so that Parse(s).String() == s; the rewrite searches for the
// exact text that was read.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q (expected X.Y.Z)", ErrInvalidVersion, s)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := parseComponent(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: component %d: %v", ErrInvalidVersion, s, i+1, err)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func parseComponent(part string) (int, error) {
	if part == "" {
		return 0, errors.New("empty")
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not numeric", part)
		}
	}
	if len(part) > 1 && part[0] == '0' {
		return 0, fmt.Errorf("%q has a leading zero", part)
	}
	return strconv.Atoi(part)
}

// String returns the version as a string in "X.Y.Z" format.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// BumpPatch returns the version with the patch component incremented by one.
// There is no carry: 2.0.9 becomes 2.0.10.
func (v Version) BumpPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// ExtractVersion returns the quoted value of the first __version__ assignment in content.
func ExtractVersion(content []byte) (string, error) {
	m := versionMarker.FindSubmatch(content)
	if m == nil {
		return "", ErrVersionNotFound
	}
	value := string(m[1])
	if value == "" {
		value = string(m[2])
	}
	if value == "" {
		return "", ErrVersionNotFound
	}
	return value, nil
}

// ReadVersionFile extracts and parses the version declared in the file at path.
func ReadVersionFile(path string) (Version, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Version{}, fmt.Errorf("failed to read version file: %w", err)
	}

	raw, err := ExtractVersion(content)
	if err != nil {
		return Version{}, fmt.Errorf("%s: %w", path, err)
	}

	v, err := Parse(raw)
	if err != nil {
		return Version{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
