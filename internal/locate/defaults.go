package locate

import (
	"path/filepath"
	"strings"
)

// Options configures the default strategy chain.
type Options struct {
	GOOS   string
	Getenv func(string) string
	Tool   string
	// ExtraDirs and ExtraGlobs are tried before the built-in locations of their tier.
	ExtraDirs  []string
	ExtraGlobs []string
	// ScanRoot overrides the volume scanned by the last tier.
	ScanRoot string
	NoScan   bool
	Notify   func(root string)
}

// Defaults returns the three-tier chain for tool on goos, reading locations from getenv.
func Defaults(goos string, getenv func(string) string, tool string) Chain {
	return Build(Options{GOOS: goos, Getenv: getenv, Tool: tool})
}

// Build assembles the chain described by opts.
func Build(opts Options) Chain {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	exe := ExeName(opts.Tool, opts.GOOS)
	dirs, globs, root, skip := platformLocations(opts.GOOS, getenv, opts.Tool)

	chain := Chain{
		KnownDirs{Exe: exe, Dirs: append(append([]string(nil), opts.ExtraDirs...), dirs...)},
		GlobDirs{Exe: exe, Patterns: append(append([]string(nil), opts.ExtraGlobs...), globs...)},
	}
	if opts.NoScan {
		return chain
	}
	if opts.ScanRoot != "" {
		root = opts.ScanRoot
	}
	return append(chain, VolumeScan{
		Exe:      exe,
		Root:     root,
		FoldCase: opts.GOOS == "windows",
		Skip:     skip,
		Notify:   opts.Notify,
	})
}

// ScanRoot returns the volume scanned by default on goos.
func ScanRoot(goos string, getenv func(string) string) string {
	_, _, root, _ := platformLocations(goos, getenv, "")
	return root
}

func platformLocations(goos string, getenv func(string) string, tool string) ([]string, []string, string, []string) {
	switch goos {
	case "windows":
		return windowsLocations(getenv, tool)
	case "darwin":
		home := getenv("HOME")
		dirs := []string{"/opt/homebrew/bin", "/usr/local/bin", "/opt/local/bin", under(home, "bin")}
		globs := []string{
			"/opt/homebrew/Cellar/" + tool + "/*/bin",
			"/usr/local/Cellar/" + tool + "/*/bin",
		}
		return dirs, globs, "/", []string{"/System/Volumes", "/dev", "/private/var/vm", "/Volumes"}
	default:
		home := getenv("HOME")
		dirs := []string{
			"/usr/bin", "/usr/local/bin", "/snap/bin", "/home/linuxbrew/.linuxbrew/bin",
			under(home, ".local/bin"), under(home, "bin"),
		}
		globs := []string{
			"/home/linuxbrew/.linuxbrew/Cellar/" + tool + "/*/bin",
			"/opt/" + tool + "*/bin",
			"/usr/local/" + tool + "*/bin",
		}
		return dirs, globs, "/", []string{"/proc", "/sys", "/dev", "/run"}
	}
}

func windowsLocations(getenv func(string) string, tool string) ([]string, []string, string, []string) {
	drive := getenv("SystemDrive")
	if drive == "" {
		drive = "C:"
	}
	localAppData := getenv("LOCALAPPDATA")
	programData := getenv("ProgramData")
	chocolatey := getenv("ChocolateyInstall")
	if chocolatey == "" {
		chocolatey = winJoin(programData, "chocolatey")
	}
	folded := foldPattern(tool)

	dirs := []string{
		winJoin(localAppData, `Microsoft\WinGet\Links`),
		winJoin(chocolatey, "bin"),
		winJoin(drive, tool, "bin"),
		winJoin(getenv("ProgramFiles"), tool, "bin"),
		winJoin(getenv("ProgramFiles(x86)"), tool, "bin"),
		winJoin(getenv("USERPROFILE"), `scoop\shims`),
	}
	globs := []string{
		winJoin(localAppData, `Microsoft\WinGet\Packages`, "*"+folded+"*", folded+"*", "bin"),
		winJoin(chocolatey, "lib", folded+"*", "tools", folded+"*", "bin"),
		winJoin(drive, folded+"*", "bin"),
	}
	skip := []string{winJoin(drive, `Windows\WinSxS`), winJoin(drive, `$Recycle.Bin`), winJoin(drive, "System Volume Information")}
	return dirs, globs, drive + `\`, skip
}

// winJoin joins Windows path elements regardless of the host separator. It returns "" when the
// base is unknown so the location is skipped.
func winJoin(base string, elems ...string) string {
	if base == "" {
		return ""
	}
	parts := []string{strings.TrimRight(base, `\/`)}
	for _, elem := range elems {
		parts = append(parts, strings.Trim(elem, `\/`))
	}
	return strings.Join(parts, `\`)
}

func under(base string, rel string) string {
	if base == "" {
		return ""
	}
	return filepath.Join(base, rel)
}

// foldPattern turns name into a case-insensitive glob fragment.
func foldPattern(name string) string {
	var b strings.Builder
	for _, r := range name {
		lower, upper := strings.ToLower(string(r)), strings.ToUpper(string(r))
		if lower == upper {
			b.WriteRune(r)
			continue
		}
		b.WriteString("[" + lower + upper + "]")
	}
	return b.String()
}
