//go:build !windows

package privilege

import "golang.org/x/sys/unix"

var geteuid = unix.Geteuid

// IsElevated reports whether the effective user is root.
func IsElevated() (bool, error) {
	return geteuid() == 0, nil
}
