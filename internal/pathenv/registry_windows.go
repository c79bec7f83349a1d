//go:build windows

package pathenv

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/conn-castle/toolstrap/internal/messages"
)

const (
	machineEnvKey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`
	userEnvKey    = `Environment`
	registryValue = "Path"

	hwndBroadcast    = 0xffff
	wmSettingChange  = 0x001A
	smtoAbortIfHung  = 0x0002
	broadcastTimeout = 5000
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSendMessageTimeoutW = user32.NewProc("SendMessageTimeoutW")
)

// RegistryStore keeps PATH in the registry environment keys read by Explorer at logon.
type RegistryStore struct {
	// LockPath is the lock file taken by Lock. Empty uses DefaultLockPath.
	LockPath string
}

func registryLocation(scope Scope) (registry.Key, string, error) {
	switch scope {
	case ScopeMachine:
		return registry.LOCAL_MACHINE, machineEnvKey, nil
	case ScopeUser:
		return registry.CURRENT_USER, userEnvKey, nil
	default:
		return 0, "", fmt.Errorf(messages.PathUnknownScopeFmt, scope)
	}
}

// Read returns the unexpanded Path value of scope.
func (s *RegistryStore) Read(scope Scope) (string, error) {
	root, path, err := registryLocation(scope)
	if err != nil {
		return "", err
	}
	key, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf(messages.PathRegistryOpenFmt, path, err)
	}
	defer func() { _ = key.Close() }()
	value, _, err := key.GetStringValue(registryValue)
	if errors.Is(err, registry.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Write stores value as REG_EXPAND_SZ so %VAR% entries keep expanding, then tells running
// top-level windows that the environment changed.
func (s *RegistryStore) Write(scope Scope, value string) error {
	root, path, err := registryLocation(scope)
	if err != nil {
		return err
	}
	key, err := registry.OpenKey(root, path, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf(messages.PathRegistryOpenFmt, path, err)
	}
	defer func() { _ = key.Close() }()
	if err := key.SetExpandStringValue(registryValue, value); err != nil {
		return err
	}
	return broadcastEnvironmentChange()
}

// Lock takes the cross-process lock that guards PATH read-modify-write cycles.
func (s *RegistryStore) Lock() (func() error, error) {
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

func broadcastEnvironmentChange() error {
	param, err := windows.UTF16PtrFromString("Environment")
	if err != nil {
		return fmt.Errorf(messages.PathBroadcastFailedFmt, err)
	}
	var result uintptr
	ret, _, callErr := procSendMessageTimeoutW.Call(
		uintptr(hwndBroadcast),
		uintptr(wmSettingChange),
		0,
		uintptr(unsafe.Pointer(param)),
		uintptr(smtoAbortIfHung),
		uintptr(broadcastTimeout),
		uintptr(unsafe.Pointer(&result)),
	)
	if ret == 0 {
		return fmt.Errorf(messages.PathBroadcastFailedFmt, callErr)
	}
	return nil
}
