package pathenv

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAnalyzeFlagsDuplicatesAndMissingEntries(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("drive letters collide with the unix separator")
	}
	dir := t.TempDir()
	binDir := filepath.Join(dir, "bin")
	if err := os.Mkdir(binDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	missing := filepath.Join(dir, "missing")

	value := UnixSyntax.Join([]string{binDir, missing, binDir + "/", file})
	got := Analyze(UnixSyntax, value)
	want := []Entry{
		{Index: 0, Value: binDir},
		{Index: 1, Value: missing, Missing: true},
		{Index: 2, Value: binDir + "/", IsDuplicate: true, DuplicateOf: 0},
		{Index: 3, Value: file, NotDir: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Analyze mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeEmptyValue(t *testing.T) {
	if got := Analyze(UnixSyntax, ""); len(got) != 0 {
		t.Fatalf("expected no entries, got %v", got)
	}
}
