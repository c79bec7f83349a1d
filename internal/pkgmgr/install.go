package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/conn-castle/toolstrap/internal/messages"
	"github.com/conn-castle/toolstrap/internal/probe"
)

// InstallError reports a failed install subcommand.
type InstallError struct {
	Manager  string
	Package  string
	ExitCode int
	Err      error
}

func (e *InstallError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf(messages.ManagerInstallFailedFmt, e.Manager, e.Package, e.ExitCode)
	}
	return fmt.Sprintf(messages.ManagerInstallRunFmt, e.Manager, e.Package, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// Installer runs a manager's install subcommand.
type Installer struct {
	Manager Manager
	Runner  probe.Runner
	Out     io.Writer
}

// Install runs the non-interactive install of pkg exactly once. The manager's output is copied to
// Out. A failure is returned as *InstallError carrying the exit status when there is one.
func (i *Installer) Install(ctx context.Context, pkg string) error {
	out := i.Out
	if out == nil {
		out = io.Discard
	}
	m := i.Manager
	binary := m.Binary
	if resolved, err := i.Runner.LookPath(m.Binary); err == nil {
		binary = resolved
	}
	output, err := i.Runner.Run(ctx, withEnv(m.InstallEnv), binary, m.InstallCommand(pkg)...)
	if trimmed := strings.TrimSpace(output); trimmed != "" {
		_, _ = fmt.Fprintln(out, trimmed)
	}
	if err == nil {
		return nil
	}
	installErr := &InstallError{Manager: m.Binary, Package: pkg, ExitCode: -1, Err: err}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		installErr.ExitCode = coded.ExitCode()
	}
	return installErr
}
