package locate

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/go-version"
)

// KnownDirs checks fixed directories for the executable.
type KnownDirs struct {
	Exe  string
	Dirs []string
}

// Name implements Strategy.
func (KnownDirs) Name() string { return "known-dirs" }

// Locate implements Strategy.
func (s KnownDirs) Locate(context.Context) (string, bool, error) {
	for _, dir := range s.Dirs {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, s.Exe)
		if isFile(candidate) {
			return candidate, true, nil
		}
	}
	return "", false, nil
}

// GlobDirs expands directory patterns whose roots carry a version or hash suffix.
// Matches of one pattern are tried highest version first. Path elements that differ are
// compared as versions when both carry one and lexically otherwise.
type GlobDirs struct {
	Exe      string
	Patterns []string
}

// Name implements Strategy.
func (GlobDirs) Name() string { return "glob-dirs" }

// Locate implements Strategy.
func (s GlobDirs) Locate(context.Context) (string, bool, error) {
	var errs []error
	for _, pattern := range s.Patterns {
		if pattern == "" {
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sort.SliceStable(matches, func(i, j int) bool {
			return compareMatches(matches[i], matches[j]) > 0
		})
		for _, dir := range matches {
			candidate := filepath.Join(dir, s.Exe)
			if isFile(candidate) {
				return candidate, true, nil
			}
		}
	}
	return "", false, errors.Join(errs...)
}

var versionPattern = regexp.MustCompile(`\d+(\.\d+)*`)

// compareMatches orders two glob matches by the first path element where they differ.
func compareMatches(a, b string) int {
	aParts := strings.Split(filepath.ToSlash(a), "/")
	bParts := strings.Split(filepath.ToSlash(b), "/")
	for i := 0; i < len(aParts) && i < len(bParts); i++ {
		if aParts[i] == bParts[i] {
			continue
		}
		av, aErr := version.NewVersion(versionPattern.FindString(aParts[i]))
		bv, bErr := version.NewVersion(versionPattern.FindString(bParts[i]))
		if aErr == nil && bErr == nil {
			if c := av.Compare(bv); c != 0 {
				return c
			}
		}
		return strings.Compare(aParts[i], bParts[i])
	}
	return len(aParts) - len(bParts)
}

// VolumeScan walks an entire volume looking for the executable name. It is slow and only meant
// as the last resort.
type VolumeScan struct {
	Exe  string
	Root string
	// FoldCase matches file names case-insensitively.
	FoldCase bool
	// Skip lists directories that are never entered.
	Skip []string
	// Notify is called once before the walk starts.
	Notify func(root string)
}

// Name implements Strategy.
func (VolumeScan) Name() string { return "volume-scan" }

// Locate implements Strategy. Unreadable directories are skipped.
func (s VolumeScan) Locate(ctx context.Context) (string, bool, error) {
	if s.Notify != nil {
		s.Notify(s.Root)
	}
	skip := make(map[string]bool, len(s.Skip))
	for _, dir := range s.Skip {
		skip[filepath.Clean(dir)] = true
	}
	var found string
	err := walkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if d != nil && d.IsDir() && path != s.Root {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if skip[filepath.Clean(path)] {
				return fs.SkipDir
			}
			return nil
		}
		if !s.matches(d.Name()) {
			return nil
		}
		if d.Type().IsRegular() || (d.Type()&fs.ModeSymlink != 0 && isFile(path)) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if found != "" {
		return found, true, nil
	}
	return "", false, err
}

func (s VolumeScan) matches(name string) bool {
	if s.FoldCase {
		return strings.EqualFold(name, s.Exe)
	}
	return name == s.Exe
}

var walkDir = filepath.WalkDir
