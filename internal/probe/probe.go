// Package probe decides whether an external tool can be run from the search path.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/conn-castle/toolstrap/internal/messages"
)

// Presence is the outcome of a presence check.
type Presence string

const (
	// Present means the version query ran and exited zero.
	Present Presence = "present"
	// InstalledNotOnPath means the binary exists on disk but PATH does not resolve it.
	InstalledNotOnPath Presence = "installed-not-on-path"
	// Absent means the tool could not be found.
	Absent Presence = "absent"
	// Broken means the tool resolved but the version query failed or timed out.
	Broken Presence = "broken"
)

// DefaultVersionArgs is the side-effect-free argument list passed to the tool.
var DefaultVersionArgs = []string{"-version"}

// DefaultTimeout bounds a single version query.
const DefaultTimeout = 15 * time.Second

// Result describes one presence check.
type Result struct {
	Tool     string
	Presence Presence
	// Path is the resolved executable, when known.
	Path string
	// Output is the trimmed combined output of the version query.
	Output string
	Err    error
}

// OK reports whether the tool is callable.
func (r Result) OK() bool {
	return r.Presence == Present
}

// FirstLine returns the first non-empty output line, typically the version banner.
func (r Result) FirstLine() string {
	for _, line := range strings.Split(r.Output, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Runner abstracts process execution for the checker.
type Runner interface {
	LookPath(name string) (string, error)
	// Run executes name with args. A nil env inherits the current environment.
	Run(ctx context.Context, env []string, name string, args ...string) (string, error)
}

// ExecRunner runs real processes through os/exec.
type ExecRunner struct{}

// LookPath resolves name against the PATH of the current process.
func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes name and returns its combined output. The working directory is inherited.
func (ExecRunner) Run(ctx context.Context, env []string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if env != nil {
		cmd.Env = env
	}
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// Checker runs presence checks.
type Checker struct {
	Runner  Runner
	Timeout time.Duration
}

// NewChecker returns a Checker over runner with the default timeout.
func NewChecker(runner Runner) *Checker {
	return &Checker{Runner: runner, Timeout: DefaultTimeout}
}

// Check resolves tool through PATH and runs it with args (DefaultVersionArgs when empty).
// Absence is a normal result, never an error return.
func (c *Checker) Check(ctx context.Context, tool string, args ...string) Result {
	result := Result{Tool: tool}
	path, err := c.Runner.LookPath(tool)
	if err != nil {
		result.Presence = Absent
		if !IsCommandNotFound(err) {
			result.Err = err
		}
		return result
	}
	result.Path = path
	return c.run(ctx, result, nil, path, args)
}

// CheckWithEnv runs tool in a fresh child process whose PATH is pathValue, resolving the
// executable against pathValue rather than the current process PATH.
func (c *Checker) CheckWithEnv(ctx context.Context, tool string, pathValue string, args ...string) Result {
	result := Result{Tool: tool}
	path, ok := ResolveIn(pathValue, tool)
	if !ok {
		result.Presence = Absent
		return result
	}
	result.Path = path
	return c.run(ctx, result, replaceEnv(os.Environ(), "PATH", pathValue), path, args)
}

func (c *Checker) run(ctx context.Context, result Result, env []string, path string, args []string) Result {
	if len(args) == 0 {
		args = DefaultVersionArgs
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := c.Runner.Run(runCtx, env, path, args...)
	result.Output = strings.TrimSpace(out)
	switch {
	case err == nil:
		result.Presence = Present
	case IsCommandNotFound(err):
		result.Presence = Absent
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		result.Presence = Broken
		result.Err = fmt.Errorf(messages.ProbeTimeoutFmt, result.Tool, strings.Join(args, " "), timeout)
	default:
		result.Presence = Broken
		result.Err = fmt.Errorf(messages.ProbeFailedFmt, result.Tool, strings.Join(args, " "), err)
	}
	return result
}

// IsCommandNotFound reports whether err means the executable does not exist, as opposed to
// an executable that ran and failed.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return true
	}
	var execErr *exec.Error
	return errors.As(err, &execErr)
}

func replaceEnv(env []string, key string, value string) []string {
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		name, _, _ := strings.Cut(kv, "=")
		if strings.EqualFold(name, key) {
			continue
		}
		out = append(out, kv)
	}
	return append(out, key+"="+value)
}
