package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	var entries []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestOpenWithoutFileIsNop(t *testing.T) {
	diag, err := Open(Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, diag.RunID)
	assert.Empty(t, diag.File)
	diag.Logger.Info("dropped")
	assert.NoError(t, diag.Close())
}

func TestOpenWritesJSONWithRunID(t *testing.T) {
	orig := newRunID
	t.Cleanup(func() { newRunID = orig })
	newRunID = func() string { return "run-1" }

	path := filepath.Join(t.TempDir(), "logs", "toolstrap.log")
	diag, err := Open(Options{File: path, Version: "v1.2.3"})
	require.NoError(t, err)
	diag.Logger.Debug("hidden")
	diag.Logger.Info("flow failed", zap.String("kind", "tool-install-failure"))
	require.NoError(t, diag.Close())

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "flow failed", entries[0]["msg"])
	assert.Equal(t, "run-1", entries[0]["run_id"])
	assert.Equal(t, "v1.2.3", entries[0]["version"])
	assert.Equal(t, "tool-install-failure", entries[0]["kind"])
	assert.Equal(t, "info", entries[0]["level"])
}

func TestOpenVerboseIncludesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toolstrap.log")
	diag, err := Open(Options{File: path, Verbose: true})
	require.NoError(t, err)
	diag.Logger.Debug("enter state", zap.String("state", "CHECK_PRESENT"))
	require.NoError(t, diag.Close())

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "debug", entries[0]["level"])
}

func TestOpenMkdirFailure(t *testing.T) {
	orig := osMkdirAll
	t.Cleanup(func() { osMkdirAll = orig })
	osMkdirAll = func(string, os.FileMode) error { return errors.New("read-only file system") }

	_, err := Open(Options{File: "/var/log/toolstrap/run.log"})
	assert.ErrorContains(t, err, "open diagnostic log /var/log/toolstrap/run.log: read-only file system")
}

func TestCloseNil(t *testing.T) {
	var diag *Diagnostic
	assert.NoError(t, diag.Close())
}
