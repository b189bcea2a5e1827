// Package version holds build information injected at link time.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/bmad-code/agent-teams/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/bmad-code/agent-teams/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/bmad-code/agent-teams/internal/version.Date={{.Date}}
)

// ProductName prefixes the version line.
const ProductName = "BMad Agent Teams"

// fallback is reported when Version is not a semantic version, as in
// development builds.
const fallback = "0.0.0-dev"

// Semver returns Version normalised to MAJOR.MINOR.PATCH[-pre][+meta]. A
// leading "v" and missing components are accepted; anything unparseable
// yields 0.0.0-dev.
func Semver() string {
	return normalize(Version)
}

func normalize(raw string) string {
	v, err := semver.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return v.String()
}

// String is the line printed by `agent-teams version`.
func String() string {
	return fmt.Sprintf("%s v%s", ProductName, Semver())
}

// Detailed adds commit and build date to String.
func Detailed() string {
	return fmt.Sprintf("%s\n  commit: %s\n  built:  %s", String(), Commit, Date)
}
