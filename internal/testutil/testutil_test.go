package testutil

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
}

func TestWriteToolPrintsBanner(t *testing.T) {
	skipWithoutShell(t)
	path := WriteTool(t, t.TempDir(), "ffmpeg", "ffmpeg version 7.1")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	out, err := exec.Command(path, "-version").Output()
	require.NoError(t, err)
	assert.Equal(t, "ffmpeg version 7.1", strings.TrimSpace(string(out)))
}

func TestWriteToolWithExit(t *testing.T) {
	skipWithoutShell(t)
	path := WriteToolWithExit(t, t.TempDir(), "broken", 7)

	err := exec.Command(path).Run()
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 7, exitErr.ExitCode())
}

func TestWriteToolExpectArg(t *testing.T) {
	skipWithoutShell(t)
	path := WriteToolExpectArg(t, t.TempDir(), "ffmpeg", "-version")

	out, err := exec.Command(path, "-version").Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "ffmpeg version")
	assert.Error(t, exec.Command(path, "--help").Run())
}

func TestWriteFileIsNotExecutable(t *testing.T) {
	path := WriteFile(t, t.TempDir(), filepath.Join("nested", "ffmpeg"), "data")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	if runtime.GOOS != "windows" {
		assert.Zero(t, info.Mode().Perm()&0o111)
	}
}

func TestWithWorkingDirRestoresOriginal(t *testing.T) {
	target := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)

	var observed string
	WithWorkingDir(t, target, func() {
		observed, err = os.Getwd()
		require.NoError(t, err)
	})

	targetReal, _ := filepath.EvalSymlinks(target)
	observedReal, _ := filepath.EvalSymlinks(observed)
	assert.Equal(t, targetReal, observedReal)

	final, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, orig, final)
}
