//go:build !windows

package pathenv

// HostOptions overrides where the host store keeps its state.
type HostOptions struct {
	MachineFile string
	UserFile    string
	LockPath    string
}

// NewHostStore returns a FileStore over /etc/environment and the user's environment.d file.
func NewHostStore(opts HostOptions) Store {
	machine := opts.MachineFile
	if machine == "" {
		machine = DefaultMachineFile
	}
	user := opts.UserFile
	if user == "" {
		user = DefaultUserFile(osGetenv)
	}
	return &FileStore{MachinePath: machine, UserPath: user, LockPath: opts.LockPath}
}
