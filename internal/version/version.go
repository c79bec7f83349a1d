// Package version normalizes release version strings.
package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/conn-castle/toolstrap/internal/messages"
)

var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Normalize strips a leading "v" and requires an X.Y.Z version.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	if !semverPattern.MatchString(trimmed) {
		return "", fmt.Errorf(messages.VersionInvalidFmt, raw)
	}
	return trimmed, nil
}

// IsDev reports whether raw names a development build rather than a release.
func IsDev(raw string) bool {
	switch strings.TrimSpace(raw) {
	case "", "dev", "(devel)":
		return true
	}
	return false
}
