package pathenv

import (
	"fmt"
	"os"

	"github.com/conn-castle/toolstrap/internal/messages"
)

var (
	osGetenv = os.Getenv
	osSetenv = os.Setenv
)

// Effective returns the PATH a newly started process would see: the machine entries followed by
// the user entries, with environment references expanded.
func Effective(store Store, syntax Syntax) (string, error) {
	if store == nil {
		return "", fmt.Errorf(messages.PathStoreRequired)
	}
	machine, err := store.Read(ScopeMachine)
	if err != nil {
		return "", fmt.Errorf(messages.PathStoreReadFmt, ScopeMachine, err)
	}
	user, err := store.Read(ScopeUser)
	if err != nil {
		return "", fmt.Errorf(messages.PathStoreReadFmt, ScopeUser, err)
	}
	entries := append(syntax.Split(expandValue(machine)), syntax.Split(expandValue(user))...)
	return syntax.Join(entries), nil
}

// Refresh rebuilds the PATH of the running process from the persistent value. Entries only the
// process had (set by the parent shell) are kept after the persistent ones.
// A package manager installed during this run only becomes callable after a refresh.
func Refresh(store Store, syntax Syntax) error {
	effective, err := Effective(store, syntax)
	if err != nil {
		return fmt.Errorf(messages.PathRefreshFmt, err)
	}
	if effective == "" {
		return nil
	}
	merged := effective
	for _, entry := range syntax.Split(osGetenv(Variable)) {
		merged, _ = syntax.Append(merged, entry)
	}
	if err := osSetenv(Variable, merged); err != nil {
		return fmt.Errorf(messages.PathRefreshFmt, err)
	}
	return nil
}

// PrependSession puts dir in front of the running process's PATH so later lookups in this run
// resolve the tool. Nothing persistent changes. It reports whether PATH was modified.
func PrependSession(syntax Syntax, dir string) (bool, error) {
	updated, changed := syntax.Prepend(osGetenv(Variable), dir)
	if !changed {
		return false, nil
	}
	if err := osSetenv(Variable, updated); err != nil {
		return false, err
	}
	return true, nil
}
