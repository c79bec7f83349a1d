package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/toolstrap/internal/messages"
)

// ErrConfigValidation wraps config validation failures (as opposed to TOML syntax or filesystem
// errors). Callers can use errors.Is(err, ErrConfigValidation) to tell them apart.
var ErrConfigValidation = errors.New("config validation failed")

var (
	userConfigDir = os.UserConfigDir
	osReadFile    = os.ReadFile
)

// FileName is the settings file name inside the user config directory.
const FileName = "config.toml"

// DefaultPath returns <user config dir>/toolstrap/config.toml.
func DefaultPath() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigUserDirFmt, err)
	}
	return filepath.Join(dir, "toolstrap", FileName), nil
}

// Load reads the settings file at path. An empty path means DefaultPath, and a missing default
// file yields Default. An explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = defaultPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigExpandPathFmt, path, err)
	}

	data, err := osReadFile(expanded)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if explicit {
				return nil, fmt.Errorf(messages.ConfigMissingFileFmt, expanded, err)
			}
			return Default(), nil
		}
		return nil, fmt.Errorf(messages.ConfigReadFileFmt, expanded, err)
	}
	return Parse(data, expanded)
}

// Parse decodes TOML data over Default and validates the result. Unknown keys are rejected.
// source is used in error messages.
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt+" "+messages.ConfigValidationGuidance,
				ErrConfigValidation, source, unknownKeys(strict))
		}
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return cfg, nil
}

func unknownKeys(strict *toml.StrictMissingError) string {
	var buf bytes.Buffer
	for i, decodeErr := range strict.Errors {
		if i > 0 {
			buf.WriteString(", ")
		}
		for j, part := range decodeErr.Key() {
			if j > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(part)
		}
	}
	return buf.String()
}

// expandPaths resolves a leading ~ in every path-valued setting.
func (c *Config) expandPaths() error {
	fields := []*string{&c.Locate.ScanRoot, &c.Store.MachineFile, &c.Store.UserFile, &c.Store.LockFile, &c.Log.File}
	for i := range c.Locate.KnownDirs {
		fields = append(fields, &c.Locate.KnownDirs[i])
	}
	for i := range c.Locate.Globs {
		fields = append(fields, &c.Locate.Globs[i])
	}
	for _, field := range fields {
		expanded, err := homedir.Expand(*field)
		if err != nil {
			return fmt.Errorf(messages.ConfigExpandPathFmt, *field, err)
		}
		*field = expanded
	}
	return nil
}
