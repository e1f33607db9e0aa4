// Package version reports the build version of the binary.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

// Set at build time with -ldflags "-X supportdesk/internal/shared/version.Version=1.2.3".
var (
	Version = "dev"
	Commit  = ""
)

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// Channel classifies a version as "release", "prerelease" or "dev".
func Channel(version string) string {
	v := Normalize(version)
	if !semver.IsValid(v) {
		return "dev"
	}
	if semver.Prerelease(v) != "" {
		return "prerelease"
	}
	return "release"
}

// String is the one-line description printed by the version command.
func String() string {
	v := Normalize(Version)
	if Channel(Version) == "dev" {
		v = Version
	}
	s := fmt.Sprintf("supportdesk %s (%s, %s)", v, Channel(Version), runtime.Version())
	if Commit != "" {
		s += " commit " + Commit
	}
	return s
}
