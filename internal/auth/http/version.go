package http

import (
	"golang.org/x/mod/semver"
)

// DefaultMinimumModVersion is the oldest mod build allowed to authenticate.
// Older builds submit records the leaderboard pipeline can no longer ingest.
const DefaultMinimumModVersion = "0.20.5"

// MeetsMinimumVersion reports whether the mod version from a login or refresh
// request is at least the configured minimum. Versions arrive bare
// ("0.20.5"); the comparison is semver. Unparseable versions fail the gate.
func MeetsMinimumVersion(version, minimum string) bool {
	v := "v" + version
	m := "v" + minimum
	if !semver.IsValid(v) || !semver.IsValid(m) {
		return false
	}
	return semver.Compare(v, m) >= 0
}
