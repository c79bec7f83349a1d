//go:build windows

package pathenv

// HostOptions overrides where the host store keeps its state.
type HostOptions struct {
	MachineFile string
	UserFile    string
	LockPath    string
}

// NewHostStore returns the registry-backed store. File locations are ignored on Windows.
func NewHostStore(opts HostOptions) Store {
	return &RegistryStore{LockPath: opts.LockPath}
}
