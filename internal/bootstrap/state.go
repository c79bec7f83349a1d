// Package bootstrap drives the check, install, locate and PATH-repair flow as an explicit state
// machine. Front ends (the linear CLI commands and the interactive menu) only pick an entry point.
package bootstrap

import (
	"fmt"

	"github.com/conn-castle/toolstrap/internal/messages"
)

// State is a step of the flow.
type State string

const (
	StateStart                State = "START"
	StateCheckPresent         State = "CHECK_PRESENT"
	StateCheckPrivilege       State = "CHECK_PRIVILEGE"
	StateEnsurePackageManager State = "ENSURE_PACKAGE_MANAGER"
	StateInstallTool          State = "INSTALL_TOOL"
	StateCheckPresentAgain    State = "CHECK_PRESENT_AGAIN"
	StateLocateOnDisk         State = "LOCATE_ON_DISK"
	StateMutatePath           State = "MUTATE_PATH"
	StateDone                 State = "DONE"
	StateFatal                State = "FATAL"
)

// Process exit codes.
const (
	ExitOK               = 0
	ExitPrivilege        = 1
	ExitManagerBootstrap = 2
	ExitToolInstall      = 3
	ExitToolNotFound     = 4
	ExitPathWrite        = 5
)

// Kind classifies a terminal failure.
type Kind string

const (
	KindInsufficientPrivilege Kind = "insufficient-privilege"
	KindDownloadFailure       Kind = "download-failure"
	KindManagerInstall        Kind = "package-manager-install-failure"
	KindToolInstall           Kind = "tool-install-failure"
	KindToolNotFound          Kind = "tool-not-found-after-install"
	KindPathAlreadyCorrect    Kind = "path-already-correct-but-tool-still-failing"
	KindPathWrite             Kind = "path-write-failure"
)

// Label is the human-readable category printed in failure reports.
func (k Kind) Label() string {
	switch k {
	case KindInsufficientPrivilege:
		return messages.KindInsufficientPrivilege
	case KindDownloadFailure:
		return messages.KindDownloadFailure
	case KindManagerInstall:
		return messages.KindManagerInstall
	case KindToolInstall:
		return messages.KindToolInstall
	case KindToolNotFound:
		return messages.KindToolNotFound
	case KindPathAlreadyCorrect:
		return messages.KindPathAlreadyCorrect
	case KindPathWrite:
		return messages.KindPathWrite
	default:
		return string(k)
	}
}

// ExitCode maps the kind onto the process exit code.
func (k Kind) ExitCode() int {
	switch k {
	case KindInsufficientPrivilege:
		return ExitPrivilege
	case KindDownloadFailure, KindManagerInstall:
		return ExitManagerBootstrap
	case KindToolInstall:
		return ExitToolInstall
	case KindToolNotFound, KindPathAlreadyCorrect:
		return ExitToolNotFound
	case KindPathWrite:
		return ExitPathWrite
	default:
		return 1
	}
}

// Failure is a terminal error of the flow. Every failure carries a concrete next step.
type Failure struct {
	Kind  Kind   `json:"kind" yaml:"kind"`
	State State  `json:"state" yaml:"state"`
	Err   error  `json:"-" yaml:"-"`
	Next  string `json:"next" yaml:"next"`
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Kind.Label()
	}
	return fmt.Sprintf("%s: %v", f.Kind.Label(), f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// ExitCode returns the process exit code for the failure.
func (f *Failure) ExitCode() int {
	return f.Kind.ExitCode()
}
