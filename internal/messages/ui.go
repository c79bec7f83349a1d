package messages

// Interactive menu messages.
const (
	MenuTitleFmt        = "What do you want to do with %s?"
	MenuChoiceCheck     = "Check if installed"
	MenuChoiceInstall   = "Auto-install and fix PATH (requires elevation)"
	MenuChoiceManual    = "Show manual installation instructions"
	MenuChoiceRepair    = "Find an existing install and fix PATH"
	MenuChoiceExit      = "Exit"
	MenuConfirmInstall  = "This may install a package manager and software, and will change the machine PATH. Continue?"
	MenuResultTitle     = "Result"
	MenuResultOKFmt     = "%s: done (exit 0)."
	MenuResultFailFmt   = "%s: %s (exit %d)."
	MenuResultAbsentFmt = "%s is not on the search path."
	MenuCancelled       = "Cancelled."
	BannerSubtitleFmt   = "install %s and keep it on PATH"

	ManualTitleFmt      = "# Installing %s by hand\n\n"
	ManualManagerFmt    = "## With %s\n\nRun this from an elevated shell:\n\n```\n%s\n```\n\n"
	ManualDownloadFmt   = "## From a release archive\n\n1. Download a build from %s\n2. Extract it to a permanent folder, for example `%s`.\n3. Add the folder that contains `%s` to the PATH, or run `toolstrap path add <folder>`.\n\n"
	ManualVerifyFmt     = "## Verify\n\nOpen a **new** terminal and run:\n\n```\n%s %s\n```\n\nIf the command is still not found, sign out or restart the computer so every program picks up the new PATH.\n"
	ManualSuggestedWin  = `C:\ffmpeg\bin`
	ManualSuggestedUnix = "/usr/local/bin"
)
