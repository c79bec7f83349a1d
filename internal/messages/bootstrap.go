package messages

// Messages for the bootstrap flow, package managers and the locator.
const (
	FlowCheckingFmt        = "Checking %s...\n"
	FlowPresentFmt         = "[OK] %s runs from the search path (%s)\n"
	FlowAbsentFmt          = "%s was not found on the search path.\n"
	FlowBrokenFmt          = "%s was found but failed its version check: %v\n"
	FlowCheckingPrivilege  = "Checking privileges...\n"
	FlowEnsuringManagerFmt = "Checking package manager %s...\n"
	FlowInstallingFmt      = "Installing %s with %s...\n"
	FlowRecheckingFmt      = "Checking %s again...\n"
	FlowLocatingFmt        = "Searching the disk for %s...\n"
	FlowFoundFmt           = "[OK] Found %s (%s)\n"

	FailureHeaderFmt = "[FAIL] %s\n"
	FailureCauseFmt  = "       cause: %v\n"
	FailureNextFmt   = "       next:  %s\n"
	NoteFmt          = "       note:  %s\n"

	KindInsufficientPrivilege = "insufficient privilege"
	KindDownloadFailure       = "network/download failure"
	KindManagerInstall        = "package manager install failure"
	KindToolInstall           = "tool install failure"
	KindToolNotFound          = "tool not found after install"
	KindPathAlreadyCorrect    = "PATH already correct but tool still failing"
	KindPathWrite             = "PATH update failure"

	NextRunElevatedWin   = "Re-run toolstrap from an elevated shell: right-click the terminal and choose \"Run as administrator\"."
	NextRunElevatedUnix  = "Re-run toolstrap with root privileges, for example: sudo toolstrap install"
	NextCheckNetworkFmt  = "Check your network connection and proxy settings, then re-run; or install %s manually: %s"
	NextManualInstallFmt = "Install %s manually: %s (run `toolstrap manual` for step-by-step instructions)."
	NextDiagnosticsFmt   = "Send the diagnostic log %s to the maintainer."
	NextDiagnostics      = "Re-run with --verbose --log-file toolstrap.log and send the file to the maintainer."
	NextPathWrite        = "Run from an elevated shell, or add the directory to PATH by hand."

	PrivilegeCheckFailedFmt = "determine privilege level: %w"
	PrivilegeNotElevated    = "the process is not running with administrator/root privileges"

	ManagerNoBootstrapFmt   = "%s is not installed and cannot be bootstrapped automatically"
	ManagerStillMissingFmt  = "%s is still not available after running its installer"
	ManagerBootstrapRunFmt  = "run %s installer: %w"
	ManagerDownloadingFmt   = "Downloading the %s installer from %s...\n"
	ManagerBootstrappedFmt  = "[OK] %s installed.\n"
	ManagerInstallFailedFmt = "%s install %s exited with status %d"
	ManagerInstallRunFmt    = "%s install %s: %v"
	ManagerRefreshWarnFmt   = "warning: could not refresh PATH after installing %s: %v\n"

	DownloadInsecureURLFmt      = "refusing to download %s: only https URLs are allowed"
	DownloadInsecureRedirectFmt = "refusing redirect to %s: only https URLs are allowed"
	DownloadTooManyRedirectsFmt = "stopped after %d redirects"
	DownloadInvalidURLFmt       = "invalid download URL %s: %w"
	DownloadFailedFmt           = "download %s: %w"
	DownloadUnexpectedStatusFmt = "download %s: unexpected status %s"
	DownloadTooLargeFmt         = "download %s: response too large (%d bytes > limit %d bytes)"
	DownloadChecksumMismatchFmt = "checksum mismatch for %s (expected %s, got %s)"
	DownloadCreateTempFileFmt   = "create temp file: %w"
	DownloadCloseTempFileFmt    = "close temp file: %w"

	LocateScanWarningFmt    = "Scanning every directory under %s; this can take a long time.\n"
	LocateNotFoundFmt       = "%s was not found in any known location or under %s"
	LocateNotFoundNoScanFmt = "%s was not found in any known location (full scan skipped)"
)
