package pathenv

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/toolstrap/internal/messages"
)

// MutationStatus reports what Append did.
type MutationStatus string

const (
	// StatusAlreadyPresent means the directory was already an entry; nothing was written.
	StatusAlreadyPresent MutationStatus = "already-present"
	// StatusAppended means the directory was added as the last entry.
	StatusAppended MutationStatus = "appended"
)

// Mutation describes a (possibly previewed) change to the machine PATH.
type Mutation struct {
	Status MutationStatus `json:"status" yaml:"status"`
	Scope  Scope          `json:"scope" yaml:"scope"`
	Dir    string         `json:"dir" yaml:"dir"`
	Before string         `json:"before" yaml:"before"`
	After  string         `json:"after" yaml:"after"`
	// Seeded means Before is the platform default because the scope had no PATH assignment.
	Seeded bool `json:"seeded,omitempty" yaml:"seeded,omitempty"`
}

// Changed reports whether the mutation adds an entry.
func (m Mutation) Changed() bool {
	return m.Status == StatusAppended
}

// Mutator appends directories to the persistent machine PATH.
type Mutator struct {
	store  Store
	syntax Syntax
	scope  Scope
}

// NewMutator returns a Mutator writing the machine scope of store with syntax.
func NewMutator(store Store, syntax Syntax) *Mutator {
	return &Mutator{store: store, syntax: syntax, scope: ScopeMachine}
}

// Append adds dir to the machine PATH unless an equal entry already exists.
// The combined value is written back with a single Write; when the store implements Locker the
// read and the write happen under its lock.
func (m *Mutator) Append(dir string) (Mutation, error) {
	if m == nil || m.store == nil {
		return Mutation{}, fmt.Errorf(messages.PathStoreRequired)
	}
	if err := m.checkDir(dir); err != nil {
		return Mutation{}, err
	}
	if locker, ok := m.store.(Locker); ok {
		unlock, err := locker.Lock()
		if err != nil {
			return Mutation{}, err
		}
		defer func() { _ = unlock() }()
	}

	mutation, err := m.plan(dir)
	if err != nil {
		return Mutation{}, err
	}
	if !mutation.Changed() {
		return mutation, nil
	}
	if err := m.store.Write(m.scope, mutation.After); err != nil {
		return Mutation{}, fmt.Errorf(messages.PathStoreWriteFmt, m.scope, err)
	}
	return mutation, nil
}

// Preview computes what Append would do without writing.
func (m *Mutator) Preview(dir string) (Mutation, error) {
	if m == nil || m.store == nil {
		return Mutation{}, fmt.Errorf(messages.PathStoreRequired)
	}
	if err := m.checkDir(dir); err != nil {
		return Mutation{}, err
	}
	return m.plan(dir)
}

func (m *Mutator) checkDir(dir string) error {
	cleaned := m.syntax.Clean(dir)
	if cleaned == "" {
		return fmt.Errorf(messages.PathDirRequired)
	}
	if strings.Contains(cleaned, m.syntax.Separator) {
		return fmt.Errorf(messages.PathDirSeparatorFmt, cleaned, m.syntax.Separator)
	}
	return nil
}

func (m *Mutator) plan(dir string) (Mutation, error) {
	before, err := m.store.Read(m.scope)
	if err != nil {
		return Mutation{}, fmt.Errorf(messages.PathStoreReadFmt, m.scope, err)
	}
	var seeded bool
	if seeder, ok := m.store.(Seeder); ok {
		if seeded, err = seeder.Seeded(m.scope); err != nil {
			return Mutation{}, fmt.Errorf(messages.PathStoreReadFmt, m.scope, err)
		}
	}
	after, changed := m.syntax.Append(before, dir)
	status := StatusAlreadyPresent
	if changed {
		status = StatusAppended
	}
	return Mutation{
		Status: status,
		Scope:  m.scope,
		Dir:    m.syntax.Clean(dir),
		Before: before,
		After:  after,
		Seeded: seeded,
	}, nil
}

// UnifiedDiff renders the mutation one entry per line as a unified diff.
// It returns an empty string when nothing changes.
func (m Mutation) UnifiedDiff(syntax Syntax) string {
	if !m.Changed() {
		return ""
	}
	from := entryLines(syntax, m.Before)
	to := entryLines(syntax, m.After)
	return udiff.Unified(string(m.Scope)+" PATH (current)", string(m.Scope)+" PATH (updated)", from, to)
}

func entryLines(syntax Syntax, value string) string {
	entries := syntax.Split(value)
	if len(entries) == 0 {
		return ""
	}
	return strings.Join(entries, "\n") + "\n"
}
