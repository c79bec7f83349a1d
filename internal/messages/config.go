package messages

// Config messages for configuration loading and validation.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt      = "missing config file %s: %w"
	ConfigReadFileFmt         = "read config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized config keys: %s"
	ConfigUserDirFmt          = "resolve user config directory: %w"
	ConfigExpandPathFmt       = "expand path %s: %w"
	ConfigValidationGuidance  = "(run `toolstrap status` to inspect the effective settings)"

	ConfigToolNameRequiredFmt    = "%s: tool.name is required"
	ConfigToolNameInvalidFmt     = "%s: tool.name must be a bare executable name, got %q"
	ConfigManagerInvalidFmt      = "%s: manager.name %q is not supported (supported: %s)"
	ConfigBootstrapURLInvalidFmt = "%s: manager.bootstrap_url must be an https URL, got %q"
	ConfigBootstrapSHAInvalidFmt = "%s: manager.bootstrap_sha256 must be 64 hex characters"
	ConfigProbeTimeoutInvalidFmt = "%s: probe.timeout must be a positive duration such as \"15s\", got %q"
	ConfigLogLevelInvalidFmt     = "%s: log.level must be one of info, debug, got %q"
)
