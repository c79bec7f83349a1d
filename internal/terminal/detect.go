// Package terminal decides whether prompts and styled output can be used.
package terminal

import (
	"os"

	"golang.org/x/term"
)

var (
	isTerminal = term.IsTerminal
	getenv     = os.Getenv
	stdinFd    = func() int { return int(os.Stdin.Fd()) }
	stdoutFd   = func() int { return int(os.Stdout.Fd()) }
)

// IsInteractive reports whether stdin and stdout are both terminals. TOOLSTRAP_NONINTERACTIVE
// set to any value forces the non-interactive path, for scripted installs under a pty.
func IsInteractive() bool {
	if getenv("TOOLSTRAP_NONINTERACTIVE") != "" {
		return false
	}
	return isTerminal(stdinFd()) && isTerminal(stdoutFd())
}
