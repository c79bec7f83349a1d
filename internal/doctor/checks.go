package doctor

import (
	"context"
	"fmt"

	"github.com/conn-castle/toolstrap/internal/locate"
	"github.com/conn-castle/toolstrap/internal/messages"
	"github.com/conn-castle/toolstrap/internal/pathenv"
	"github.com/conn-castle/toolstrap/internal/pkgmgr"
	"github.com/conn-castle/toolstrap/internal/probe"
)

// Prober checks whether an executable runs from the search path.
type Prober interface {
	Check(ctx context.Context, tool string, args ...string) probe.Result
}

// Locator finds an executable on disk.
type Locator interface {
	Locate(ctx context.Context) (locate.Hit, bool, error)
}

// Inputs are the collaborators of a full report.
type Inputs struct {
	Tool        string
	VersionArgs []string
	Manager     pkgmgr.Manager
	Prober      Prober
	// Locator runs only when the tool is not reachable. It should not include the volume scan.
	Locator    Locator
	Privileged func() (bool, error)
	Store      pathenv.Store
	Syntax     pathenv.Syntax
}

// Run executes every check in report order.
func Run(ctx context.Context, in Inputs) []Result {
	tool, presence := CheckTool(ctx, in.Prober, in.Tool, in.VersionArgs...)
	results := []Result{tool}
	if presence != probe.Present && in.Locator != nil {
		results = append(results, CheckOnDisk(ctx, in.Locator, in.Tool))
	}
	results = append(results,
		CheckManager(ctx, in.Prober, in.Manager),
		CheckPrivilege(in.Privileged, in.Manager),
	)
	if in.Store != nil {
		results = append(results, CheckPath(in.Store, in.Syntax, pathenv.ScopeMachine)...)
		results = append(results, CheckPath(in.Store, in.Syntax, pathenv.ScopeUser)...)
	}
	return results
}

// CheckTool probes tool and reports its presence.
func CheckTool(ctx context.Context, prober Prober, tool string, args ...string) (Result, probe.Presence) {
	res := prober.Check(ctx, tool, args...)
	result := Result{CheckName: messages.DoctorCheckNameTool}
	switch res.Presence {
	case probe.Present:
		result.Status = StatusOK
		result.Message = fmt.Sprintf(messages.DoctorToolPresentFmt, tool, res.FirstLine())
	case probe.Broken:
		result.Status = StatusFail
		result.Message = fmt.Sprintf(messages.DoctorToolBrokenFmt, tool, res.Err)
		result.Recommendation = messages.DoctorToolBrokenRecommend
	default:
		result.Status = StatusFail
		result.Message = fmt.Sprintf(messages.DoctorToolAbsentFmt, tool)
		result.Recommendation = messages.DoctorToolAbsentRecommend
	}
	return result, res.Presence
}

// CheckOnDisk reports whether an unreachable tool is installed somewhere the locator knows.
func CheckOnDisk(ctx context.Context, locator Locator, tool string) Result {
	hit, found, _ := locator.Locate(ctx)
	if !found {
		return Result{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameOnDisk,
			Message:   fmt.Sprintf(messages.DoctorOnDiskMissingFmt, tool),
		}
	}
	return Result{
		Status:         StatusWarn,
		CheckName:      messages.DoctorCheckNameOnDisk,
		Message:        fmt.Sprintf(messages.DoctorOnDiskFoundFmt, hit.Path, hit.Strategy),
		Recommendation: messages.DoctorOnDiskRecommend,
	}
}

// CheckManager reports whether the package manager is callable or can be bootstrapped.
func CheckManager(ctx context.Context, prober Prober, m pkgmgr.Manager) Result {
	res := prober.Check(ctx, m.Binary, m.VersionArgs...)
	result := Result{CheckName: messages.DoctorCheckNameManager}
	switch {
	case res.OK():
		result.Status = StatusOK
		result.Message = fmt.Sprintf(messages.DoctorManagerPresentFmt, m.Name, res.FirstLine())
	case m.CanBootstrap():
		result.Status = StatusWarn
		result.Message = fmt.Sprintf(messages.DoctorManagerBootstrapFmt, m.Name, m.BootstrapURL)
	default:
		result.Status = StatusWarn
		result.Message = fmt.Sprintf(messages.DoctorManagerManualFmt, m.Name)
		result.Recommendation = fmt.Sprintf(messages.DoctorManagerManualRecFmt, m.Name)
	}
	return result
}

// CheckPrivilege reports whether an install run would pass its privilege check.
func CheckPrivilege(privileged func() (bool, error), m pkgmgr.Manager) Result {
	result := Result{Status: StatusOK, CheckName: messages.DoctorCheckNamePrivilege}
	if !m.RequiresElevation {
		result.Message = messages.DoctorPrivilegeNotRequired
		return result
	}
	if privileged == nil {
		result.Status = StatusWarn
		result.Message = messages.DoctorPrivilegeMissing
		return result
	}
	elevated, err := privileged()
	switch {
	case err != nil:
		result.Status = StatusWarn
		result.Message = fmt.Sprintf(messages.DoctorPrivilegeCheckFailFmt, err)
	case !elevated:
		result.Status = StatusWarn
		result.Message = messages.DoctorPrivilegeMissing
	default:
		result.Message = messages.DoctorPrivilegeElevated
	}
	return result
}

// CheckPath reports duplicate and stale entries of one persistent PATH scope.
func CheckPath(store pathenv.Store, syntax pathenv.Syntax, scope pathenv.Scope) []Result {
	name := fmt.Sprintf(messages.DoctorCheckNamePathFmt, scope)
	value, err := store.Read(scope)
	if err != nil {
		return []Result{{
			Status:    StatusFail,
			CheckName: name,
			Message:   fmt.Sprintf(messages.DoctorPathReadFailedFmt, scope, err),
		}}
	}
	entries := pathenv.Analyze(syntax, value)
	if len(entries) == 0 {
		return []Result{{Status: StatusOK, CheckName: name, Message: messages.DoctorPathEmpty}}
	}

	var results []Result
	for _, entry := range entries {
		switch {
		case entry.IsDuplicate:
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      name,
				Message:        fmt.Sprintf(messages.DoctorPathDuplicateFmt, entry.Index, entry.Value, entry.DuplicateOf),
				Recommendation: messages.DoctorPathDuplicateRec,
			})
		case entry.Missing:
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      name,
				Message:        fmt.Sprintf(messages.DoctorPathMissingFmt, entry.Index, entry.Value),
				Recommendation: messages.DoctorPathMissingRec,
			})
		case entry.NotDir:
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      name,
				Message:        fmt.Sprintf(messages.DoctorPathNotDirFmt, entry.Index, entry.Value),
				Recommendation: messages.DoctorPathMissingRec,
			})
		}
	}
	if len(results) == 0 {
		return []Result{{
			Status:    StatusOK,
			CheckName: name,
			Message:   fmt.Sprintf(messages.DoctorPathHealthyFmt, len(entries)),
		}}
	}
	return results
}
