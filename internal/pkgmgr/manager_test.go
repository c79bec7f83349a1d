package pkgmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupBuiltins(t *testing.T) {
	for _, name := range Names() {
		m, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.Name)
		assert.NotEmpty(t, m.Binary)
		assert.NotEmpty(t, m.ManualURL)
		assert.Contains(t, m.InstallArgs, PackagePlaceholder)
		if m.CanBootstrap() {
			assert.Regexp(t, `^https://`, m.BootstrapURL)
			assert.NotEmpty(t, m.Interpreter)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("pacman")
	require.ErrorContains(t, err, `unknown package manager "pacman" (supported: apt, chocolatey, homebrew, winget)`)
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	m, err := Lookup(" Chocolatey ")
	require.NoError(t, err)
	assert.Equal(t, "choco", m.Binary)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "chocolatey", Default("windows").Name)
	assert.Equal(t, "homebrew", Default("darwin").Name)
	assert.Equal(t, "apt", Default("linux").Name)
}

func TestInstallCommandSubstitutesPackage(t *testing.T) {
	m, err := Lookup("winget")
	require.NoError(t, err)
	args := m.InstallCommand("Gyan.FFmpeg")
	assert.Equal(t, []string{
		"install", "--id", "Gyan.FFmpeg", "--exact", "--silent",
		"--accept-source-agreements", "--accept-package-agreements",
	}, args)
	assert.Contains(t, m.InstallArgs, PackagePlaceholder)
}
