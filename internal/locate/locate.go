// Package locate finds a tool's executable on disk when the search path does not resolve it.
//
// Strategies run in priority order: known directories, then globbed version-suffixed install
// roots, then a full scan of the primary volume. The first hit ends the search.
package locate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var osStat = os.Stat

// Strategy is one way of finding the executable.
type Strategy interface {
	Name() string
	// Locate returns the executable path and true on a hit. An error means the strategy could
	// not run completely; the chain moves on to the next strategy.
	Locate(ctx context.Context) (string, bool, error)
}

// Hit is a located executable.
type Hit struct {
	Path     string `json:"path" yaml:"path"`
	Dir      string `json:"dir" yaml:"dir"`
	Strategy string `json:"strategy" yaml:"strategy"`
}

// Chain runs strategies in order and stops at the first hit.
type Chain []Strategy

// Locate returns the first hit. When nothing is found the joined strategy errors are returned
// alongside false. Cancellation stops the chain immediately.
func (c Chain) Locate(ctx context.Context) (Hit, bool, error) {
	var errs []error
	for _, strategy := range c {
		if err := ctx.Err(); err != nil {
			return Hit{}, false, err
		}
		path, ok, err := strategy.Locate(ctx)
		if ok {
			return Hit{Path: path, Dir: filepath.Dir(path), Strategy: strategy.Name()}, true, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Hit{}, false, err
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return Hit{}, false, errors.Join(errs...)
}

// Names lists the strategy names in order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name()
	}
	return names
}

// ExeName returns the executable file name of tool on goos.
func ExeName(tool string, goos string) string {
	if goos == "windows" && !strings.EqualFold(filepath.Ext(tool), ".exe") {
		return tool + ".exe"
	}
	return tool
}

// isFile reports whether path names an existing regular file.
func isFile(path string) bool {
	info, err := osStat(path)
	return err == nil && info.Mode().IsRegular()
}
