package config

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/conn-castle/toolstrap/internal/messages"
	"github.com/conn-castle/toolstrap/internal/pkgmgr"
)

// Validate ensures the config is complete and consistent. path is used in error messages.
func (c *Config) Validate(path string) error {
	name := strings.TrimSpace(c.Tool.Name)
	if name == "" {
		return fmt.Errorf(messages.ConfigToolNameRequiredFmt, path)
	}
	if strings.ContainsAny(name, `/\`) || name != c.Tool.Name {
		return fmt.Errorf(messages.ConfigToolNameInvalidFmt, path, c.Tool.Name)
	}

	if c.Manager.Name != "" {
		if _, err := pkgmgr.Lookup(c.Manager.Name); err != nil {
			return fmt.Errorf(messages.ConfigManagerInvalidFmt, path, c.Manager.Name, strings.Join(pkgmgr.Names(), ", "))
		}
	}
	if c.Manager.BootstrapURL != "" {
		u, err := url.Parse(c.Manager.BootstrapURL)
		if err != nil || u.Scheme != "https" || u.Host == "" {
			return fmt.Errorf(messages.ConfigBootstrapURLInvalidFmt, path, c.Manager.BootstrapURL)
		}
	}
	if sum := c.Manager.BootstrapSHA256; sum != "" {
		if decoded, err := hex.DecodeString(sum); err != nil || len(decoded) != 32 {
			return fmt.Errorf(messages.ConfigBootstrapSHAInvalidFmt, path)
		}
	}

	if c.Probe.Timeout != "" {
		if d, err := time.ParseDuration(c.Probe.Timeout); err != nil || d <= 0 {
			return fmt.Errorf(messages.ConfigProbeTimeoutInvalidFmt, path, c.Probe.Timeout)
		}
	}

	switch c.Log.Level {
	case "", LogLevelInfo, LogLevelDebug:
	default:
		return fmt.Errorf(messages.ConfigLogLevelInvalidFmt, path, c.Log.Level)
	}
	return nil
}
