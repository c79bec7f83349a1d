package locate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyStrategy struct {
	name  string
	path  string
	err   error
	calls int
}

func (s *spyStrategy) Name() string { return s.name }

func (s *spyStrategy) Locate(context.Context) (string, bool, error) {
	s.calls++
	return s.path, s.path != "", s.err
}

func writeExe(t *testing.T, dir string, name string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("bin"), 0o755))
	return path
}

func TestChainShortCircuitsOnFirstHit(t *testing.T) {
	tier1 := &spyStrategy{name: "known-dirs", path: filepath.Join("opt", "ffmpeg", "bin", "ffmpeg")}
	tier2 := &spyStrategy{name: "glob-dirs"}
	tier3 := &spyStrategy{name: "volume-scan"}

	hit, ok, err := Chain{tier1, tier2, tier3}.Locate(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "known-dirs", hit.Strategy)
	assert.Equal(t, filepath.Join("opt", "ffmpeg", "bin"), hit.Dir)
	assert.Equal(t, 1, tier1.calls)
	assert.Zero(t, tier2.calls)
	assert.Zero(t, tier3.calls)
}

func TestChainFallsThroughInOrder(t *testing.T) {
	tier1 := &spyStrategy{name: "known-dirs"}
	tier2 := &spyStrategy{name: "glob-dirs", err: errors.New("bad pattern")}
	tier3 := &spyStrategy{name: "volume-scan", path: "/x/ffmpeg"}

	hit, ok, err := Chain{tier1, tier2, tier3}.Locate(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "volume-scan", hit.Strategy)
	assert.Equal(t, 1, tier1.calls)
	assert.Equal(t, 1, tier2.calls)
}

func TestChainNotFoundReturnsStrategyErrors(t *testing.T) {
	chain := Chain{&spyStrategy{name: "a"}, &spyStrategy{name: "b", err: errors.New("permission denied")}}
	_, ok, err := chain.Locate(context.Background())
	assert.False(t, ok)
	require.ErrorContains(t, err, "permission denied")
	assert.Equal(t, []string{"a", "b"}, chain.Names())
}

func TestChainStopsWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tier := &spyStrategy{name: "known-dirs"}
	_, ok, err := Chain{tier}.Locate(ctx)
	assert.False(t, ok)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, tier.calls)
}

func TestKnownDirs(t *testing.T) {
	root := t.TempDir()
	want := writeExe(t, filepath.Join(root, "b"), "ffmpeg")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "ffmpeg"), 0o755))

	path, ok, err := KnownDirs{Exe: "ffmpeg", Dirs: []string{"", filepath.Join(root, "a"), filepath.Join(root, "b")}}.Locate(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, path)

	_, ok, err = KnownDirs{Exe: "ffmpeg", Dirs: []string{filepath.Join(root, "c")}}.Locate(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGlobDirsPrefersHighestMatch(t *testing.T) {
	root := t.TempDir()
	writeExe(t, filepath.Join(root, "ffmpeg-6.0", "bin"), "ffmpeg")
	want := writeExe(t, filepath.Join(root, "ffmpeg-7.1", "bin"), "ffmpeg")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ffmpeg-8.0-empty", "bin"), 0o755))

	path, ok, err := GlobDirs{Exe: "ffmpeg", Patterns: []string{filepath.Join(root, "ffmpeg-*", "bin")}}.Locate(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, path)
}

func TestGlobDirsComparesVersionsNumerically(t *testing.T) {
	root := t.TempDir()
	writeExe(t, filepath.Join(root, "ffmpeg-7.1", "bin"), "ffmpeg")
	writeExe(t, filepath.Join(root, "ffmpeg-9.2", "bin"), "ffmpeg")
	want := writeExe(t, filepath.Join(root, "ffmpeg-10.0", "bin"), "ffmpeg")

	path, ok, err := GlobDirs{Exe: "ffmpeg", Patterns: []string{filepath.Join(root, "ffmpeg-*", "bin")}}.Locate(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, path)
}

func TestCompareMatches(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "numeric major", a: "/opt/ffmpeg-10.0/bin", b: "/opt/ffmpeg-7.1/bin", want: 1},
		{name: "numeric minor", a: "/opt/ffmpeg-7.1/bin", b: "/opt/ffmpeg-7.10/bin", want: -1},
		{name: "equal", a: "/opt/ffmpeg-7.1/bin", b: "/opt/ffmpeg-7.1/bin", want: 0},
		{name: "no version falls back to lexical", a: "/opt/ffmpeg-b/bin", b: "/opt/ffmpeg-a/bin", want: 1},
		{name: "same version different suffix", a: "/opt/ffmpeg-7.1-full/bin", b: "/opt/ffmpeg-7.1-essentials/bin", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compareMatches(tt.a, tt.b)
			switch {
			case tt.want > 0:
				assert.Positive(t, got)
			case tt.want < 0:
				assert.Negative(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}

func TestGlobDirsBadPattern(t *testing.T) {
	_, ok, err := GlobDirs{Exe: "ffmpeg", Patterns: []string{"[unterminated"}}.Locate(context.Background())
	assert.False(t, ok)
	require.Error(t, err)
}

func TestVolumeScanFindsNestedExecutable(t *testing.T) {
	root := t.TempDir()
	writeExe(t, filepath.Join(root, "skipme", "bin"), "ffmpeg")
	want := writeExe(t, filepath.Join(root, "tools", "deep", "ffmpeg-build", "bin"), "ffmpeg")

	var notified []string
	scan := VolumeScan{
		Exe:    "ffmpeg",
		Root:   root,
		Skip:   []string{filepath.Join(root, "skipme")},
		Notify: func(r string) { notified = append(notified, r) },
	}
	path, ok, err := scan.Locate(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, path)
	assert.Equal(t, []string{root}, notified)
}

func TestVolumeScanIgnoresDirectoriesNamedLikeTheTool(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ffmpeg", "doc"), 0o755))

	_, ok, err := VolumeScan{Exe: "ffmpeg", Root: root}.Locate(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVolumeScanFollowsSymlinkedExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated rights on windows")
	}
	root := t.TempDir()
	target := writeExe(t, filepath.Join(root, "store", "ffmpeg-7.1"), "ffmpeg-real")
	link := filepath.Join(root, "bin", "ffmpeg")
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0o755))
	require.NoError(t, os.Symlink(target, link))

	path, ok, err := VolumeScan{Exe: "ffmpeg", Root: root}.Locate(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, link, path)
}

func TestVolumeScanIgnoresDanglingSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated rights on windows")
	}
	root := t.TempDir()
	link := filepath.Join(root, "bin", "ffmpeg")
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), link))

	_, ok, err := VolumeScan{Exe: "ffmpeg", Root: root}.Locate(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVolumeScanFoldCase(t *testing.T) {
	root := t.TempDir()
	want := writeExe(t, filepath.Join(root, "bin"), "FFMPEG.EXE")

	path, ok, err := VolumeScan{Exe: "ffmpeg.exe", Root: root, FoldCase: true}.Locate(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, path)
}

func TestVolumeScanCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok, err := VolumeScan{Exe: "ffmpeg", Root: t.TempDir()}.Locate(ctx)
	assert.False(t, ok)
	require.ErrorIs(t, err, context.Canceled)
}

func TestExeName(t *testing.T) {
	assert.Equal(t, "ffmpeg.exe", ExeName("ffmpeg", "windows"))
	assert.Equal(t, "ffmpeg.EXE", ExeName("ffmpeg.EXE", "windows"))
	assert.Equal(t, "ffmpeg", ExeName("ffmpeg", "linux"))
}
