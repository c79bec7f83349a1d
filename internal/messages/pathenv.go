package messages

// PATH store and mutator messages.
const (
	PathStoreReadFmt       = "read %s PATH: %w"
	PathStoreWriteFmt      = "write %s PATH: %w"
	PathStoreParseFmt      = "parse %s: %w"
	PathStoreRequired      = "PATH store is required"
	PathDirRequired        = "directory is required"
	PathDirSeparatorFmt    = "directory %q contains the PATH separator %q"
	PathUnknownScopeFmt    = "unknown PATH scope %q"
	PathRefreshFmt         = "refresh process PATH: %w"
	PathBroadcastFailedFmt = "broadcast environment change: %w"
	PathRegistryOpenFmt    = "open registry key %s: %w"

	PathAlreadyPresentFmt = "%s is already on the machine PATH; nothing to change.\n"
	PathAppendedFmt       = "Added %s to the machine PATH.\n"
	PathDryRunFmt         = "Would add %s to the machine PATH:\n"
	PathDryRunNoop        = "No change: the directory is already on the machine PATH.\n"
	PathRestartSession    = "Open a new terminal session before running the tool; running processes (including this shell) keep the old PATH. If it still fails, restart the computer."
	PathRestartAlreadySet = "The PATH entry is already correct. The usual cause of a continued failure is a stale environment: close every terminal and sign out, or restart the computer."
	PathRevalidateOK      = "A fresh process with the reloaded PATH runs the tool successfully; a new terminal session is enough."
	PathRevalidateFailed  = "A fresh process with the reloaded PATH still cannot run the tool; restart the computer."
	PathSessionFmt        = "Added %s to this process's PATH for the rest of the run.\n"
	PathSeededFmt         = "The machine PATH was not set; it now starts with the system default %s.\n"
)
