// Package pkgmgr bootstraps a system package manager and installs tools through it.
package pkgmgr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conn-castle/toolstrap/internal/messages"
)

// PackagePlaceholder is replaced by the package name in InstallArgs.
const PackagePlaceholder = "{package}"

// Manager describes one system package manager.
type Manager struct {
	Name string
	// Binary is the executable probed for presence and used to install.
	Binary      string
	VersionArgs []string
	// RequiresElevation means bootstrap and install need administrator or root rights.
	RequiresElevation bool
	// BootstrapURL is the pinned https location of the official installer script.
	// Empty means the manager cannot be bootstrapped by toolstrap.
	BootstrapURL    string
	BootstrapSHA256 string
	// Interpreter runs the downloaded script; the script path is appended.
	Interpreter  []string
	BootstrapEnv []string
	// BinDirs are directories the bootstrap installs into. They are added to the session PATH
	// after a bootstrap because some installers only update shell profiles.
	BinDirs     []string
	InstallArgs []string
	InstallEnv  []string
	// Package is the default package name of the tool for this manager.
	Package   string
	ManualURL string
}

// InstallCommand returns the non-interactive install arguments for pkg.
func (m Manager) InstallCommand(pkg string) []string {
	args := make([]string, len(m.InstallArgs))
	for i, arg := range m.InstallArgs {
		args[i] = strings.ReplaceAll(arg, PackagePlaceholder, pkg)
	}
	return args
}

// CanBootstrap reports whether toolstrap knows how to install the manager itself.
func (m Manager) CanBootstrap() bool {
	return m.BootstrapURL != ""
}

var builtins = map[string]Manager{
	"chocolatey": {
		Name:              "chocolatey",
		Binary:            "choco",
		VersionArgs:       []string{"--version"},
		RequiresElevation: true,
		BootstrapURL:      "https://community.chocolatey.org/install.ps1",
		Interpreter:       []string{"powershell", "-NoProfile", "-NonInteractive", "-ExecutionPolicy", "Bypass", "-File"},
		BinDirs:           []string{`%ProgramData%\chocolatey\bin`},
		InstallArgs:       []string{"install", PackagePlaceholder, "-y", "--no-progress"},
		Package:           "ffmpeg",
		ManualURL:         "https://www.gyan.dev/ffmpeg/builds/",
	},
	"winget": {
		Name:              "winget",
		Binary:            "winget",
		VersionArgs:       []string{"--version"},
		RequiresElevation: true,
		InstallArgs: []string{
			"install", "--id", PackagePlaceholder, "--exact", "--silent",
			"--accept-source-agreements", "--accept-package-agreements",
		},
		Package:   "Gyan.FFmpeg",
		ManualURL: "https://www.gyan.dev/ffmpeg/builds/",
	},
	"homebrew": {
		Name:         "homebrew",
		Binary:       "brew",
		VersionArgs:  []string{"--version"},
		BootstrapURL: "https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh",
		Interpreter:  []string{"/bin/bash"},
		BootstrapEnv: []string{"NONINTERACTIVE=1"},
		BinDirs:      []string{"/opt/homebrew/bin", "/usr/local/bin", "/home/linuxbrew/.linuxbrew/bin"},
		InstallArgs:  []string{"install", PackagePlaceholder},
		InstallEnv:   []string{"HOMEBREW_NO_AUTO_UPDATE=1"},
		Package:      "ffmpeg",
		ManualURL:    "https://ffmpeg.org/download.html#build-mac",
	},
	"apt": {
		Name:              "apt",
		Binary:            "apt-get",
		VersionArgs:       []string{"--version"},
		RequiresElevation: true,
		InstallArgs:       []string{"install", "-y", "-q", PackagePlaceholder},
		InstallEnv:        []string{"DEBIAN_FRONTEND=noninteractive"},
		Package:           "ffmpeg",
		ManualURL:         "https://ffmpeg.org/download.html#build-linux",
	},
}

// Lookup returns the built-in manager called name.
func Lookup(name string) (Manager, error) {
	m, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Manager{}, fmt.Errorf(messages.ManagerUnknownFmt, name, strings.Join(Names(), ", "))
	}
	return m, nil
}

// Names lists the built-in managers in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultName returns the manager used on goos when none is configured.
func DefaultName(goos string) string {
	switch goos {
	case "windows":
		return "chocolatey"
	case "darwin":
		return "homebrew"
	default:
		return "apt"
	}
}

// Default returns the manager used on goos when none is configured.
func Default(goos string) Manager {
	m, _ := Lookup(DefaultName(goos))
	return m
}
