package pathenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/conn-castle/toolstrap/internal/envfile"
	"github.com/conn-castle/toolstrap/internal/fsutil"
	"github.com/conn-castle/toolstrap/internal/messages"
)

// Default locations read by pam_env and systemd environment generators.
const (
	DefaultMachineFile  = "/etc/environment"
	defaultUserFileName = "50-toolstrap.conf"
)

// DefaultSystemPath is the PATH login sessions get when the machine file does not assign one.
const DefaultSystemPath = "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin"

var (
	osReadFile        = os.ReadFile
	osMkdirAll        = os.MkdirAll
	writeFileAtomicFn = fsutil.WriteFileAtomic
)

// FileStore keeps PATH in KEY=VALUE environment files, one file per scope.
type FileStore struct {
	MachinePath string
	UserPath    string
	// LockPath is the advisory lock file taken by Lock. Empty uses DefaultLockPath.
	LockPath string
	// MachineDefault is read as the machine PATH when the machine file has no PATH assignment.
	// Empty uses DefaultSystemPath.
	MachineDefault string
}

// DefaultUserFile returns the systemd user environment.d file toolstrap writes to.
func DefaultUserFile(getenv func(string) string) string {
	base := getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(getenv("HOME"), ".config")
	}
	return filepath.Join(base, "environment.d", defaultUserFileName)
}

// Read returns the PATH assignment of the scope's file. When the file or the key is missing the
// user scope reads as "" and the machine scope reads as MachineDefault, so an append never
// replaces the system directories with the new entry alone.
func (s *FileStore) Read(scope Scope) (string, error) {
	value, found, err := s.lookup(scope)
	if err != nil {
		return "", err
	}
	if !found && scope == ScopeMachine {
		return s.machineDefault(), nil
	}
	return value, nil
}

// Seeded reports whether Read of scope returns the default rather than an assignment.
func (s *FileStore) Seeded(scope Scope) (bool, error) {
	_, found, err := s.lookup(scope)
	if err != nil {
		return false, err
	}
	return !found && scope == ScopeMachine, nil
}

func (s *FileStore) lookup(scope Scope) (string, bool, error) {
	path, err := s.pathFor(scope)
	if err != nil {
		return "", false, err
	}
	data, err := osReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	value, found, err := envfile.Get(string(data), Variable)
	if err != nil {
		return "", false, fmt.Errorf(messages.PathStoreParseFmt, path, err)
	}
	return value, found, nil
}

func (s *FileStore) machineDefault() string {
	if s.MachineDefault != "" {
		return s.MachineDefault
	}
	return DefaultSystemPath
}

// Write replaces the PATH assignment in the scope's file, keeping every other line, and
// replaces the file atomically.
func (s *FileStore) Write(scope Scope, value string) error {
	path, err := s.pathFor(scope)
	if err != nil {
		return err
	}
	data, err := osReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	perm := os.FileMode(0o644)
	if info, statErr := osStat(path); statErr == nil {
		perm = info.Mode().Perm()
	}
	if err := osMkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	updated := envfile.Set(string(data), Variable, value)
	return writeFileAtomicFn(path, []byte(updated), perm)
}

// Lock takes the cross-process lock that guards PATH read-modify-write cycles.
func (s *FileStore) Lock() (func() error, error) {
	path := s.LockPath
	if path == "" {
		path = DefaultLockPath()
	}
	lock, err := acquireFileLock(path)
	if err != nil {
		return nil, err
	}
	return lock.release, nil
}

func (s *FileStore) pathFor(scope Scope) (string, error) {
	switch scope {
	case ScopeMachine:
		return s.MachinePath, nil
	case ScopeUser:
		return s.UserPath, nil
	default:
		return "", fmt.Errorf(messages.PathUnknownScopeFmt, scope)
	}
}
