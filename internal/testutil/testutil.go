// Package testutil writes fake tools for tests that exercise real process execution.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteTool writes an executable shell stub that prints banner and exits successfully.
// It returns the stub path.
func WriteTool(t *testing.T, dir string, name string, banner string) string {
	t.Helper()
	return writeScript(t, dir, name, fmt.Sprintf("#!/bin/sh\necho %q\nexit 0\n", banner))
}

// WriteToolWithExit writes an executable shell stub that prints a failure and exits with exitCode.
func WriteToolWithExit(t *testing.T, dir string, name string, exitCode int) string {
	t.Helper()
	return writeScript(t, dir, name, fmt.Sprintf("#!/bin/sh\necho \"%s: failed\" >&2\nexit %d\n", name, exitCode))
}

// WriteToolExpectArg writes an executable shell stub that succeeds only when expectedArg is
// among its arguments, the way a tool answers its version query.
func WriteToolExpectArg(t *testing.T, dir string, name string, expectedArg string) string {
	t.Helper()
	return writeScript(t, dir, name, fmt.Sprintf("#!/bin/sh\nfor arg in \"$@\"; do\n  if [ \"$arg\" = \"%s\" ]; then echo \"%s version test\"; exit 0; fi\ndone\nexit 1\n", expectedArg, name))
}

// WriteFile writes a non-executable file with the given content and returns its path.
func WriteFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}

func writeScript(t *testing.T, dir string, name string, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}
