// Package update compares the running build with the latest published release.
package update

import (
	"context"
	"fmt"

	"github.com/tcnksm/go-latest"

	"github.com/conn-castle/toolstrap/internal/messages"
	"github.com/conn-castle/toolstrap/internal/version"
)

// Repository coordinates of the release feed.
const (
	Owner      = "conn-castle"
	Repository = "toolstrap"
)

// ReleasesURL is where users download new releases.
const ReleasesURL = "https://github.com/" + Owner + "/" + Repository + "/releases"

// NewSource returns the GitHub tag source for toolstrap releases.
var NewSource = func() latest.Source {
	return &latest.GithubTag{
		Owner:             Owner,
		Repository:        Repository,
		FixVersionStrFunc: latest.DeleteFrontV(),
	}
}

// CheckResult captures the latest release check outcome.
type CheckResult struct {
	Current      string
	Latest       string
	Outdated     bool
	CurrentIsDev bool
}

// Check fetches the latest release from source and compares it to currentVersion. Development
// builds are never outdated. The fetch itself cannot be canceled; ctx is only checked before it
// starts.
func Check(ctx context.Context, source latest.Source, currentVersion string) (CheckResult, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return CheckResult{}, fmt.Errorf(messages.UpdateFetchLatestFmt, err)
		}
	}

	isDev := version.IsDev(currentVersion)
	current := "dev"
	target := "0.0.0"
	if !isDev {
		normalized, err := version.Normalize(currentVersion)
		if err != nil {
			return CheckResult{}, fmt.Errorf(messages.UpdateInvalidCurrentVersionFmt, currentVersion, err)
		}
		current = normalized
		target = normalized
	}

	res, err := latest.Check(source, target)
	if err != nil {
		return CheckResult{}, fmt.Errorf(messages.UpdateFetchLatestFmt, err)
	}
	return CheckResult{
		Current:      current,
		Latest:       res.Current,
		Outdated:     !isDev && res.Outdated,
		CurrentIsDev: isDev,
	}, nil
}
