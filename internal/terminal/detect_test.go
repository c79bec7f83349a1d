package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInteractive(t *testing.T) {
	origTerminal, origGetenv, origIn, origOut := isTerminal, getenv, stdinFd, stdoutFd
	t.Cleanup(func() {
		isTerminal, getenv, stdinFd, stdoutFd = origTerminal, origGetenv, origIn, origOut
	})
	stdinFd = func() int { return 0 }
	stdoutFd = func() int { return 1 }

	tests := []struct {
		name      string
		terminals map[int]bool
		env       string
		want      bool
	}{
		{name: "both terminals", terminals: map[int]bool{0: true, 1: true}, want: true},
		{name: "piped stdout", terminals: map[int]bool{0: true}, want: false},
		{name: "piped stdin", terminals: map[int]bool{1: true}, want: false},
		{name: "forced off", terminals: map[int]bool{0: true, 1: true}, env: "1", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isTerminal = func(fd int) bool { return tt.terminals[fd] }
			getenv = func(string) string { return tt.env }
			assert.Equal(t, tt.want, IsInteractive())
		})
	}
}
