package drift

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Status is the outcome of comparing installed and latest versions.
type Status string

const (
	UpToDate        Status = "up-to-date"
	UpdateAvailable Status = "update-available"
	Ahead           Status = "ahead"
	// Different means at least one side is not semver and the strings differ.
	Different Status = "different"
)

// Compare reports how installed relates to latest. Versions are compared as
// semver when both parse; otherwise only string equality is considered.
func Compare(installed, latest string) Status {
	cmp, err := CompareVersions(installed, latest)
	if err != nil {
		if strings.TrimSpace(installed) == strings.TrimSpace(latest) {
			return UpToDate
		}
		return Different
	}
	switch {
	case cmp < 0:
		return UpdateAvailable
	case cmp > 0:
		return Ahead
	default:
		return UpToDate
	}
}

// CompareVersions compares two version strings using semver.
// Returns -1 if current < latest, 0 if equal, 1 if current > latest.
// A leading "v" is ignored on either side.
func CompareVersions(current, latest string) (int, error) {
	cv, err := parseSemver(current)
	if err != nil {
		return 0, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	lv, err := parseSemver(latest)
	if err != nil {
		return 0, fmt.Errorf("parsing latest version %q: %w", latest, err)
	}
	return cv.Compare(lv), nil
}

func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}
