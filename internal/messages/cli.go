package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "toolstrap"
	// RootShort is the short description for the root command.
	RootShort = "Make sure an external tool is installed and on the search path"
	RootLong  = "toolstrap checks whether an external tool (ffmpeg by default) can be run from the search path.\n" +
		"When it cannot, toolstrap bootstraps a package manager, installs the tool, locates it on disk\n" +
		"and appends its directory to the persistent machine-wide PATH.\n\n" +
		"Run without a subcommand on an interactive terminal to open the menu; otherwise the full\n" +
		"install flow runs."

	FlagConfig      = "Path to the TOML config file"
	FlagTool        = "Name of the executable to check (overrides tool.name)"
	FlagManager     = "Package manager to use: chocolatey, winget, homebrew or apt (overrides manager.name)"
	FlagVerbose     = "Write debug entries to the diagnostic log"
	FlagLogFile     = "Write a JSON diagnostic log to this file"
	FlagNoColor     = "Disable colored output"
	FlagRevalidate  = "Re-run the tool with the reloaded PATH before recommending a reboot"
	FlagNoScan      = "Skip the full-volume scan when locating the tool"
	FlagDryRun      = "Show the PATH change without writing it"
	FlagScope       = "PATH scope to show: machine, user or effective"
	FlagOutput      = "Output format: text, json or yaml"
	FlagCheckLatest = "Check GitHub for a newer release"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	CheckUse   = "check"
	CheckShort = "Check whether the tool runs from the current search path"

	InstallUse   = "install"
	InstallShort = "Install the tool if missing and repair the search path (requires elevation)"

	LocateUse   = "locate"
	LocateShort = "Find the tool on disk and add its directory to the machine PATH"

	PathUse             = "path"
	PathShort           = "Inspect or update the persistent PATH"
	PathAddUse          = "add <dir>"
	PathAddShort        = "Append a directory to the machine PATH if it is not already present"
	PathShowUse         = "show"
	PathShowShort       = "Print the persistent PATH one entry per line"
	PathInvalidScopeFmt = "invalid scope %q (expected machine, user or effective)"
	PathEntryFmt        = "%3d  %s\n"
	PathScopeEffective  = "effective"

	StatusUse              = "status"
	StatusShort            = "Report tool, package manager, privilege and PATH health"
	StatusInvalidOutputFmt = "invalid output format %q (expected text, json or yaml)"

	ManualUse   = "manual"
	ManualShort = "Print manual installation instructions"

	MenuUse              = "menu"
	MenuShort            = "Open the interactive menu"
	MenuRequiresTerminal = "the menu requires an interactive terminal; run `toolstrap install` instead"

	VersionUse   = "version"
	VersionShort = "Print version information"

	UpdateAvailableFmt   = "A new version is available: %s (you have %s)\n"
	UpdateDownloadFmt    = "Download it from %s\n"
	UpdateCurrentFmt     = "You are using the latest version: %s\n"
	UpdateDevBuild       = "Running a dev build; skipping the release check.\n"
	UpdateCheckFailedFmt = "check for updates: %w"

	LogFileFmt        = "Diagnostic log: %s (run %s)\n"
	ManagerUnknownFmt = "unknown package manager %q (supported: %s)"
	ExitCodeFmt       = "exit %d"
)
