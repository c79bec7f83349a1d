package messages

// Status report messages.
const (
	DoctorHeaderFmt = "toolstrap status for %s (%s)\n"

	DoctorCheckNameTool      = "Tool"
	DoctorCheckNameOnDisk    = "OnDisk"
	DoctorCheckNameManager   = "PackageManager"
	DoctorCheckNamePrivilege = "Privilege"
	DoctorCheckNamePathFmt   = "PATH(%s)"

	DoctorToolPresentFmt        = "%s runs from the search path: %s"
	DoctorToolAbsentFmt         = "%s is not on the search path"
	DoctorToolAbsentRecommend   = "Run `toolstrap install` from an elevated shell."
	DoctorToolBrokenFmt         = "%s is on the search path but failed its version check: %v"
	DoctorToolBrokenRecommend   = "Reinstall the tool with `toolstrap install`, or check the executable at the reported path."
	DoctorOnDiskFoundFmt        = "%s exists on disk but its directory is not on the search path (found by %s)"
	DoctorOnDiskRecommend       = "Run `toolstrap locate` to add the directory to the machine PATH."
	DoctorOnDiskMissingFmt      = "%s was not found in the known install locations"
	DoctorManagerPresentFmt     = "%s is available: %s"
	DoctorManagerBootstrapFmt   = "%s is not installed; toolstrap will install it from %s"
	DoctorManagerManualFmt      = "%s is not installed and cannot be installed automatically"
	DoctorManagerManualRecFmt   = "Install %s first, or pick another manager with --manager."
	DoctorPrivilegeElevated     = "running with administrator/root privileges"
	DoctorPrivilegeNotRequired  = "the package manager does not need elevation"
	DoctorPrivilegeMissing      = "not elevated; `toolstrap install` will stop before making changes"
	DoctorPrivilegeCheckFailFmt = "could not determine privilege level: %v"
	DoctorPathReadFailedFmt     = "could not read the %s PATH: %v"
	DoctorPathHealthyFmt        = "%d entries, no duplicates or missing directories"
	DoctorPathEmpty             = "no entries"
	DoctorPathDuplicateFmt      = "entry %d %q duplicates entry %d"
	DoctorPathDuplicateRec      = "Remove the duplicate entry; the first occurrence wins."
	DoctorPathMissingFmt        = "entry %d %q does not exist"
	DoctorPathNotDirFmt         = "entry %d %q is not a directory"
	DoctorPathMissingRec        = "Remove the stale entry or reinstall the software that owned it."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-16s %s\n"
	DoctorRecommendationPrefix = "       -> "
	DoctorRecommendationIndent = "          "
	DoctorSuccessSummary       = "All checks passed."
	DoctorWarnSummary          = "Some checks reported warnings."
	DoctorFailureSummary       = "Some checks failed."
	DoctorRenderFmt            = "render status as %s: %w"
)
