package pathenv

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lockingStore struct {
	*MemoryStore
	locks    int
	releases int
	lockErr  error
}

func (s *lockingStore) Lock() (func() error, error) {
	if s.lockErr != nil {
		return nil, s.lockErr
	}
	s.locks++
	return func() error {
		s.releases++
		return nil
	}, nil
}

func TestMutatorAppendWritesOnceWhenAbsent(t *testing.T) {
	store := NewMemoryStore(`C:\Windows;C:\Tools`, `C:\Users\me\bin`)
	mutator := NewMutator(store, WindowsSyntax)

	mutation, err := mutator.Append(`C:\ffmpeg\bin`)
	require.NoError(t, err)
	assert.Equal(t, StatusAppended, mutation.Status)
	assert.True(t, mutation.Changed())
	assert.Equal(t, `C:\Windows;C:\Tools`, mutation.Before)
	assert.Equal(t, `C:\Windows;C:\Tools;C:\ffmpeg\bin`, mutation.After)

	writes := store.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, Write{Scope: ScopeMachine, Value: `C:\Windows;C:\Tools;C:\ffmpeg\bin`}, writes[0])

	user, err := store.Read(ScopeUser)
	require.NoError(t, err)
	assert.Equal(t, `C:\Users\me\bin`, user)
}

func TestMutatorAppendIsIdempotent(t *testing.T) {
	store := NewMemoryStore(`C:\Windows`, "")
	mutator := NewMutator(store, WindowsSyntax)

	first, err := mutator.Append(`C:\ffmpeg\bin`)
	require.NoError(t, err)
	assert.Equal(t, StatusAppended, first.Status)

	second, err := mutator.Append(`c:\FFMPEG\bin\`)
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyPresent, second.Status)
	assert.Equal(t, first.After, second.After)
	assert.Len(t, store.Writes(), 1)
}

func TestMutatorAppendAlreadyPresentDoesNotWrite(t *testing.T) {
	store := NewMemoryStore("/usr/bin:/opt/ffmpeg/bin", "")
	mutation, err := NewMutator(store, UnixSyntax).Append("/opt/ffmpeg/bin")
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyPresent, mutation.Status)
	assert.Equal(t, mutation.Before, mutation.After)
	assert.Empty(t, store.Writes())
}

func TestMutatorAppendUsesLocker(t *testing.T) {
	store := &lockingStore{MemoryStore: NewMemoryStore("/usr/bin", "")}
	_, err := NewMutator(store, UnixSyntax).Append("/opt/bin")
	require.NoError(t, err)
	assert.Equal(t, 1, store.locks)
	assert.Equal(t, 1, store.releases)
}

func TestMutatorAppendLockFailure(t *testing.T) {
	store := &lockingStore{MemoryStore: NewMemoryStore("/usr/bin", ""), lockErr: errors.New("busy")}
	_, err := NewMutator(store, UnixSyntax).Append("/opt/bin")
	require.ErrorContains(t, err, "busy")
	assert.Empty(t, store.Writes())
}

func TestMutatorAppendErrors(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		_, err := NewMutator(nil, UnixSyntax).Append("/opt/bin")
		require.ErrorContains(t, err, "PATH store is required")
	})
	t.Run("blank dir", func(t *testing.T) {
		_, err := NewMutator(NewMemoryStore("", ""), UnixSyntax).Append("  ")
		require.ErrorContains(t, err, "directory is required")
	})
	t.Run("read failure", func(t *testing.T) {
		store := NewMemoryStore("", "")
		store.ReadErr = errors.New("denied")
		_, err := NewMutator(store, UnixSyntax).Append("/opt/bin")
		require.ErrorContains(t, err, "read machine PATH: denied")
	})
	t.Run("write failure", func(t *testing.T) {
		store := NewMemoryStore("/usr/bin", "")
		store.WriteErr = errors.New("access is denied")
		_, err := NewMutator(store, UnixSyntax).Append("/opt/bin")
		require.ErrorContains(t, err, "write machine PATH: access is denied")
		value, readErr := store.Read(ScopeMachine)
		require.NoError(t, readErr)
		assert.Equal(t, "/usr/bin", value)
	})
}

func TestMutatorRejectsInvalidDirs(t *testing.T) {
	tests := []struct {
		name    string
		syntax  Syntax
		value   string
		dir     string
		wantErr string
	}{
		{name: "blank", syntax: UnixSyntax, value: "/usr/bin", dir: "  ", wantErr: "directory is required"},
		{name: "quoted empty", syntax: UnixSyntax, value: "/usr/bin", dir: `""`, wantErr: "directory is required"},
		{name: "quoted blank", syntax: WindowsSyntax, value: `C:\Windows`, dir: `" "`, wantErr: "directory is required"},
		{name: "unix separator", syntax: UnixSyntax, value: "/usr/bin", dir: "/opt/a:/opt/b", wantErr: `contains the PATH separator ":"`},
		{name: "windows separator", syntax: WindowsSyntax, value: `C:\Windows`, dir: `C:\Tools;x\bin`, wantErr: `contains the PATH separator ";"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore(tt.value, "")
			mutator := NewMutator(store, tt.syntax)

			_, err := mutator.Append(tt.dir)
			require.ErrorContains(t, err, tt.wantErr)
			_, err = mutator.Preview(tt.dir)
			require.ErrorContains(t, err, tt.wantErr)

			assert.Empty(t, store.Writes())
			value, readErr := store.Read(ScopeMachine)
			require.NoError(t, readErr)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestMutatorPreviewDoesNotWrite(t *testing.T) {
	store := NewMemoryStore("/usr/bin:/bin", "")
	mutation, err := NewMutator(store, UnixSyntax).Preview("/opt/ffmpeg/bin")
	require.NoError(t, err)
	assert.Equal(t, StatusAppended, mutation.Status)
	assert.Equal(t, "/usr/bin:/bin:/opt/ffmpeg/bin", mutation.After)
	assert.Empty(t, store.Writes())

	diff := mutation.UnifiedDiff(UnixSyntax)
	assert.Contains(t, diff, "--- machine PATH (current)")
	assert.Contains(t, diff, "+++ machine PATH (updated)")
	assert.Contains(t, diff, "+/opt/ffmpeg/bin")
	assert.False(t, strings.Contains(diff, "-/usr/bin"))
}

func TestUnifiedDiffEmptyWhenUnchanged(t *testing.T) {
	mutation := Mutation{Status: StatusAlreadyPresent, Before: "/usr/bin", After: "/usr/bin"}
	assert.Empty(t, mutation.UnifiedDiff(UnixSyntax))
}
