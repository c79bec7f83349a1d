//go:build windows

package pathenv

import "golang.org/x/sys/windows/registry"

// expandValue expands %VAR% references stored in REG_EXPAND_SZ values.
func expandValue(value string) string {
	expanded, err := registry.ExpandString(value)
	if err != nil {
		return value
	}
	return expanded
}
