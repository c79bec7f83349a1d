// Package pathenv reads and appends to the persistent search-path variable.
//
// The variable lives in two scopes. The machine scope applies to every user and the user scope
// applies to the current account; a new process sees their concatenation. Stores only ever hand
// out raw values; list handling (split, normalize, membership, append) is done by Syntax so the
// same logic is exercised against the in-memory store in tests and the real store in production.
package pathenv

import (
	"fmt"
	"strings"

	"github.com/conn-castle/toolstrap/internal/messages"
)

// Scope selects which persistent PATH value is read or written.
type Scope string

const (
	// ScopeMachine is the system-wide PATH.
	ScopeMachine Scope = "machine"
	// ScopeUser is the PATH of the current account.
	ScopeUser Scope = "user"
)

// Variable is the name of the search-path variable.
const Variable = "PATH"

// Store reads and writes raw PATH values per scope.
// Implementations write the whole value in one operation.
type Store interface {
	Read(scope Scope) (string, error)
	Write(scope Scope, value string) error
}

// Locker is implemented by stores that can serialize read-modify-write cycles across processes.
// The returned function releases the lock.
type Locker interface {
	Lock() (func() error, error)
}

// Seeder is implemented by stores whose Read falls back to a platform default when a scope
// has no PATH assignment of its own.
type Seeder interface {
	Seeded(scope Scope) (bool, error)
}

// ParseScope converts a user-supplied scope name.
func ParseScope(raw string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(raw))) {
	case ScopeMachine:
		return ScopeMachine, nil
	case ScopeUser:
		return ScopeUser, nil
	default:
		return "", fmt.Errorf(messages.PathUnknownScopeFmt, raw)
	}
}
