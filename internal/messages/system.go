package messages

// System messages for internal operations.
const (
	// EnvfileLineErrorFmt formats envfile line errors.
	EnvfileLineErrorFmt            = "line %d: %w"
	EnvfileReadFailedFmt           = "failed to read env content: %w"
	EnvfileExpectedKeyValue        = "expected KEY=VALUE"
	EnvfileUnterminatedQuotedValue = "unterminated quoted value"
	EnvfileInvalidQuotedSuffix     = "invalid trailing characters after quoted value"

	// FsutilCreateTempFileFmt formats temp file creation errors.
	FsutilCreateTempFileFmt = "create temp file for %s: %w"
	FsutilSetPermissionsFmt = "set permissions for %s: %w"
	FsutilWriteTempFileFmt  = "write temp file for %s: %w"
	FsutilSyncTempFileFmt   = "sync temp file for %s: %w"
	FsutilCloseTempFileFmt  = "close temp file for %s: %w"
	FsutilRenameTempFileFmt = "rename temp file for %s: %w"

	// LockOpenFmt formats lock file open errors.
	LockOpenFmt    = "open lock %s: %w"
	LockFmt        = "lock %s: %w"
	LockTimeoutFmt = "timed out waiting for lock after %s"

	// ProbeTimeoutFmt formats a version query that did not finish in time.
	ProbeTimeoutFmt = "%s did not answer %s within %s"
	ProbeFailedFmt  = "%s %s failed: %w"

	// LoggingOpenFmt formats diagnostic log setup errors.
	LoggingOpenFmt = "open diagnostic log %s: %w"

	// VersionInvalidFmt formats malformed release versions.
	VersionInvalidFmt              = "invalid version %q (expected X.Y.Z)"
	UpdateInvalidCurrentVersionFmt = "invalid current version %q: %w"
	UpdateFetchLatestFmt           = "fetch latest release: %w"

	// UIRequiresTerminal is returned when a prompt is shown without a terminal.
	UIRequiresTerminal = "interactive prompts require a terminal"
	UIRenderManualFmt  = "render manual instructions: %w"
)
