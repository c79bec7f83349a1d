package pathenv

import (
	"fmt"
	"sync"

	"github.com/conn-castle/toolstrap/internal/messages"
)

// MemoryStore is an in-memory Store. It records every write so tests can assert on mutation counts.
type MemoryStore struct {
	mu     sync.Mutex
	values map[Scope]string
	writes []Write
	// ReadErr and WriteErr, when set, are returned by Read and Write.
	ReadErr  error
	WriteErr error
}

// Write is one recorded MemoryStore write.
type Write struct {
	Scope Scope
	Value string
}

// NewMemoryStore returns a store seeded with machine and user values.
func NewMemoryStore(machine string, user string) *MemoryStore {
	return &MemoryStore{values: map[Scope]string{ScopeMachine: machine, ScopeUser: user}}
}

// Read returns the stored value of scope.
func (s *MemoryStore) Read(scope Scope) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return "", s.ReadErr
	}
	if scope != ScopeMachine && scope != ScopeUser {
		return "", fmt.Errorf(messages.PathUnknownScopeFmt, scope)
	}
	return s.values[scope], nil
}

// Write replaces the stored value of scope.
func (s *MemoryStore) Write(scope Scope, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	if scope != ScopeMachine && scope != ScopeUser {
		return fmt.Errorf(messages.PathUnknownScopeFmt, scope)
	}
	if s.values == nil {
		s.values = make(map[Scope]string)
	}
	s.values[scope] = value
	s.writes = append(s.writes, Write{Scope: scope, Value: value})
	return nil
}

// Writes returns a copy of the recorded writes.
func (s *MemoryStore) Writes() []Write {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Write(nil), s.writes...)
}
