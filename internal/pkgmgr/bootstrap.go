package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/conn-castle/toolstrap/internal/messages"
	"github.com/conn-castle/toolstrap/internal/probe"
)

// Fetcher downloads an installer script to a temp file.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, sha256Hex string, pattern string) (string, error)
}

// Bootstrapper makes sure a package manager is callable, installing it when it is missing.
type Bootstrapper struct {
	Manager Manager
	Checker *probe.Checker
	Runner  probe.Runner
	Fetcher Fetcher
	// Refresh reloads the process PATH from the persistent store after an install.
	Refresh func() error
	// AddSessionDir puts a directory on the process PATH.
	AddSessionDir func(dir string) (bool, error)
	Out           io.Writer
}

// Ensure returns nil once the manager answers its version query. It reports whether it had to
// install the manager. It never retries: a failed download or installer run is returned as is.
func (b *Bootstrapper) Ensure(ctx context.Context) (bool, error) {
	out := b.Out
	if out == nil {
		out = io.Discard
	}
	m := b.Manager
	if b.Checker.Check(ctx, m.Binary, m.VersionArgs...).OK() {
		return false, nil
	}
	if !m.CanBootstrap() {
		return false, fmt.Errorf(messages.ManagerNoBootstrapFmt, m.Name)
	}

	_, _ = fmt.Fprintf(out, messages.ManagerDownloadingFmt, m.Name, m.BootstrapURL)
	script, err := b.Fetcher.Fetch(ctx, m.BootstrapURL, m.BootstrapSHA256, scriptPattern(m.BootstrapURL))
	if err != nil {
		return false, err
	}
	defer func() { _ = osRemove(script) }()

	if len(m.Interpreter) == 0 {
		return false, fmt.Errorf(messages.ManagerNoBootstrapFmt, m.Name)
	}
	args := append(append([]string(nil), m.Interpreter[1:]...), script)
	output, err := b.Runner.Run(ctx, withEnv(m.BootstrapEnv), m.Interpreter[0], args...)
	if trimmed := strings.TrimSpace(output); trimmed != "" {
		_, _ = fmt.Fprintln(out, trimmed)
	}
	if err != nil {
		return false, fmt.Errorf(messages.ManagerBootstrapRunFmt, m.Name, err)
	}

	if b.Refresh != nil {
		if err := b.Refresh(); err != nil {
			_, _ = fmt.Fprintf(out, messages.ManagerRefreshWarnFmt, m.Name, err)
		}
	}
	if b.AddSessionDir != nil {
		for _, dir := range m.BinDirs {
			expanded := expandDir(dir)
			if _, statErr := os.Stat(expanded); statErr != nil {
				continue
			}
			if _, err := b.AddSessionDir(expanded); err != nil {
				_, _ = fmt.Fprintf(out, messages.ManagerRefreshWarnFmt, m.Name, err)
			}
		}
	}

	if result := b.Checker.Check(ctx, m.Binary, m.VersionArgs...); !result.OK() {
		return true, errors.Join(fmt.Errorf(messages.ManagerStillMissingFmt, m.Name), result.Err)
	}
	_, _ = fmt.Fprintf(out, messages.ManagerBootstrappedFmt, m.Name)
	return true, nil
}

func scriptPattern(rawURL string) string {
	ext := ".sh"
	if parsed, err := url.Parse(rawURL); err == nil && path.Ext(parsed.Path) != "" {
		ext = path.Ext(parsed.Path)
	}
	return "toolstrap-bootstrap-*" + ext
}

// withEnv returns the current environment plus extra, or nil when there is nothing to add.
func withEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil
	}
	return append(os.Environ(), extra...)
}

// expandDir expands %VAR% and $VAR references in a configured directory.
func expandDir(dir string) string {
	for {
		start := strings.Index(dir, "%")
		if start < 0 {
			break
		}
		end := strings.Index(dir[start+1:], "%")
		if end < 0 {
			break
		}
		name := dir[start+1 : start+1+end]
		dir = dir[:start] + os.Getenv(name) + dir[start+2+end:]
	}
	return os.ExpandEnv(dir)
}
