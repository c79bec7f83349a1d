//go:build !windows

package pathenv

import "os"

// expandValue expands $VAR and ${VAR} references, which pam_env leaves to the shell.
func expandValue(value string) string {
	return os.ExpandEnv(value)
}
