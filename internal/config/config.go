// Package config loads the optional toolstrap.toml settings file.
package config

import (
	"time"

	"github.com/conn-castle/toolstrap/internal/pkgmgr"
	"github.com/conn-castle/toolstrap/internal/probe"
)

// Config is the full settings file. Every section is optional.
type Config struct {
	Tool    ToolConfig    `toml:"tool"`
	Manager ManagerConfig `toml:"manager"`
	Locate  LocateConfig  `toml:"locate"`
	Probe   ProbeConfig   `toml:"probe"`
	Path    PathConfig    `toml:"path"`
	Store   StoreConfig   `toml:"store"`
	Log     LogConfig     `toml:"log"`
}

// ToolConfig selects the external tool.
type ToolConfig struct {
	Name        string   `toml:"name"`
	VersionArgs []string `toml:"version_args"`
	// Package overrides the package name passed to the package manager.
	Package   string `toml:"package"`
	ManualURL string `toml:"manual_url"`
}

// ManagerConfig selects and pins the package manager.
type ManagerConfig struct {
	// Name is one of the built-in managers; empty means the platform default.
	Name            string `toml:"name"`
	BootstrapURL    string `toml:"bootstrap_url"`
	BootstrapSHA256 string `toml:"bootstrap_sha256"`
}

// LocateConfig extends the locator tiers.
type LocateConfig struct {
	KnownDirs []string `toml:"known_dirs"`
	Globs     []string `toml:"globs"`
	ScanRoot  string   `toml:"scan_root"`
	// Scan enables the full-volume tier. Nil means enabled.
	Scan *bool `toml:"scan"`
}

// ProbeConfig bounds the version query.
type ProbeConfig struct {
	Timeout string `toml:"timeout"`
}

// PathConfig controls PATH repair.
type PathConfig struct {
	Revalidate bool `toml:"revalidate"`
}

// StoreConfig overrides where the persistent PATH lives on unix hosts.
type StoreConfig struct {
	MachineFile string `toml:"machine_file"`
	UserFile    string `toml:"user_file"`
	LockFile    string `toml:"lock_file"`
}

// LogConfig configures the diagnostic log.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Log levels accepted by log.level.
const (
	LogLevelInfo  = "info"
	LogLevelDebug = "debug"
)

// DefaultTool is the tool checked when nothing is configured.
const DefaultTool = "ffmpeg"

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		Tool: ToolConfig{
			Name:        DefaultTool,
			VersionArgs: append([]string(nil), probe.DefaultVersionArgs...),
		},
		Probe: ProbeConfig{Timeout: probe.DefaultTimeout.String()},
		Log:   LogConfig{Level: LogLevelInfo},
	}
}

// ScanEnabled reports whether the full-volume tier runs.
func (c *Config) ScanEnabled() bool {
	return c.Locate.Scan == nil || *c.Locate.Scan
}

// ProbeTimeout returns the parsed probe timeout, falling back to the default.
func (c *Config) ProbeTimeout() time.Duration {
	d, err := time.ParseDuration(c.Probe.Timeout)
	if err != nil || d <= 0 {
		return probe.DefaultTimeout
	}
	return d
}

// ResolveManager returns the configured package manager for goos with the file's overrides
// applied.
func (c *Config) ResolveManager(goos string) (pkgmgr.Manager, error) {
	name := c.Manager.Name
	if name == "" {
		name = pkgmgr.DefaultName(goos)
	}
	m, err := pkgmgr.Lookup(name)
	if err != nil {
		return pkgmgr.Manager{}, err
	}
	if c.Manager.BootstrapURL != "" {
		m.BootstrapURL = c.Manager.BootstrapURL
		m.BootstrapSHA256 = c.Manager.BootstrapSHA256
	} else if c.Manager.BootstrapSHA256 != "" {
		m.BootstrapSHA256 = c.Manager.BootstrapSHA256
	}
	if c.Tool.Package != "" {
		m.Package = c.Tool.Package
	}
	if c.Tool.ManualURL != "" {
		m.ManualURL = c.Tool.ManualURL
	}
	return m, nil
}
