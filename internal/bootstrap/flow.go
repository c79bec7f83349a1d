package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/conn-castle/toolstrap/internal/locate"
	"github.com/conn-castle/toolstrap/internal/messages"
	"github.com/conn-castle/toolstrap/internal/pathenv"
	"github.com/conn-castle/toolstrap/internal/pkgmgr"
	"github.com/conn-castle/toolstrap/internal/probe"
)

// Prober checks tool presence.
type Prober interface {
	Check(ctx context.Context, tool string, args ...string) probe.Result
	CheckWithEnv(ctx context.Context, tool string, pathValue string, args ...string) probe.Result
}

// ManagerEnsurer makes the package manager callable.
type ManagerEnsurer interface {
	Ensure(ctx context.Context) (bool, error)
}

// ToolInstaller installs a package through the package manager.
type ToolInstaller interface {
	Install(ctx context.Context, pkg string) error
}

// Locator finds the executable on disk.
type Locator interface {
	Locate(ctx context.Context) (locate.Hit, bool, error)
}

// PathMutator appends a directory to the persistent machine PATH.
type PathMutator interface {
	Append(dir string) (pathenv.Mutation, error)
}

// Flow holds the collaborators of one run. All of them are injected so the decision logic can
// be exercised without touching the network, the package manager or the real PATH store.
type Flow struct {
	Tool        string
	VersionArgs []string
	Package     string
	Manager     pkgmgr.Manager
	GOOS        string

	Prober       Prober
	Privileged   func() (bool, error)
	Bootstrapper ManagerEnsurer
	Installer    ToolInstaller
	Locator      Locator
	Mutator      PathMutator
	// SessionPrepend adds a directory to this process's PATH.
	SessionPrepend func(dir string) (bool, error)
	// EffectivePath returns the PATH a new process would get. Used by Revalidate.
	EffectivePath func() (string, error)
	// Revalidate re-runs the tool in a fresh child process with the reloaded PATH before
	// recommending a restart.
	Revalidate bool
	// ScanRoot is the volume the locator scans last, empty when the scan is disabled.
	ScanRoot string

	Out     io.Writer
	Logger  *zap.Logger
	LogFile string
}

// Outcome is the result of a run.
type Outcome struct {
	State    State             `json:"state" yaml:"state"`
	Trace    []State           `json:"trace" yaml:"trace"`
	Presence probe.Presence    `json:"presence" yaml:"presence"`
	Version  string            `json:"version,omitempty" yaml:"version,omitempty"`
	Hit      *locate.Hit       `json:"located,omitempty" yaml:"located,omitempty"`
	Mutation *pathenv.Mutation `json:"mutation,omitempty" yaml:"mutation,omitempty"`
	Failure  *Failure          `json:"failure,omitempty" yaml:"failure,omitempty"`
	Notes    []string          `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ExitCode is 0 unless the run failed.
func (o *Outcome) ExitCode() int {
	if o.Failure != nil {
		return o.Failure.ExitCode()
	}
	return ExitOK
}

// Err returns the failure as an error, or nil.
func (o *Outcome) Err() error {
	if o.Failure == nil {
		return nil
	}
	return o.Failure
}

type run struct {
	flow    *Flow
	out     io.Writer
	log     *zap.Logger
	outcome *Outcome
}

func (f *Flow) start() *run {
	out := f.Out
	if out == nil {
		out = io.Discard
	}
	log := f.Logger
	if log == nil {
		log = zap.NewNop()
	}
	r := &run{flow: f, out: out, log: log, outcome: &Outcome{}}
	r.enter(StateStart)
	return r
}

func (r *run) enter(state State) {
	r.outcome.State = state
	r.outcome.Trace = append(r.outcome.Trace, state)
	r.log.Debug("enter state", zap.String("state", string(state)))
}

func (r *run) done() *Outcome {
	r.enter(StateDone)
	return r.outcome
}

func (r *run) fail(kind Kind, err error, next string) *Outcome {
	failure := &Failure{Kind: kind, State: r.outcome.State, Err: err, Next: next}
	r.outcome.Failure = failure
	r.enter(StateFatal)
	r.log.Error("flow failed",
		zap.String("kind", string(kind)),
		zap.String("state", string(failure.State)),
		zap.Error(err),
	)
	Report(r.out, failure)
	return r.outcome
}

func (r *run) note(text string) {
	r.outcome.Notes = append(r.outcome.Notes, text)
	_, _ = fmt.Fprintf(r.out, messages.NoteFmt, text)
}

// Check runs only CHECK_PRESENT. It has no side effects.
func (f *Flow) Check(ctx context.Context) *Outcome {
	r := f.start()
	r.checkPresent(ctx, StateCheckPresent)
	if r.outcome.Presence == probe.Present {
		return r.done()
	}
	return r.outcome
}

// Run executes the full flow from CHECK_PRESENT to DONE or FATAL. Nothing is retried.
func (f *Flow) Run(ctx context.Context) *Outcome {
	r := f.start()
	if r.checkPresent(ctx, StateCheckPresent) {
		return r.done()
	}

	r.enter(StateCheckPrivilege)
	if f.Manager.RequiresElevation {
		_, _ = fmt.Fprint(r.out, messages.FlowCheckingPrivilege)
		elevated, err := f.privileged()
		if err != nil {
			return r.fail(KindInsufficientPrivilege, fmt.Errorf(messages.PrivilegeCheckFailedFmt, err), f.elevateHint())
		}
		if !elevated {
			return r.fail(KindInsufficientPrivilege, errors.New(messages.PrivilegeNotElevated), f.elevateHint())
		}
	}

	r.enter(StateEnsurePackageManager)
	_, _ = fmt.Fprintf(r.out, messages.FlowEnsuringManagerFmt, f.Manager.Name)
	if _, err := f.Bootstrapper.Ensure(ctx); err != nil {
		if pkgmgr.IsDownloadError(err) {
			return r.fail(KindDownloadFailure, err, fmt.Sprintf(messages.NextCheckNetworkFmt, f.Tool, f.Manager.ManualURL))
		}
		return r.fail(KindManagerInstall, err, f.manualHint())
	}

	r.enter(StateInstallTool)
	_, _ = fmt.Fprintf(r.out, messages.FlowInstallingFmt, f.Tool, f.Manager.Name)
	if err := f.Installer.Install(ctx, f.pkg()); err != nil {
		return r.fail(KindToolInstall, err, f.manualHint())
	}

	if r.checkPresent(ctx, StateCheckPresentAgain) {
		return r.done()
	}
	return r.locateAndMutate(ctx)
}

// LocateAndFix skips installation and runs LOCATE_ON_DISK then MUTATE_PATH. It is the repair
// entry point for a tool that is installed but not reachable.
func (f *Flow) LocateAndFix(ctx context.Context) *Outcome {
	r := f.start()
	return r.locateAndMutate(ctx)
}

// checkPresent enters state and probes the tool. It reports whether the tool runs.
func (r *run) checkPresent(ctx context.Context, state State) bool {
	f := r.flow
	r.enter(state)
	if state == StateCheckPresentAgain {
		_, _ = fmt.Fprintf(r.out, messages.FlowRecheckingFmt, f.Tool)
	} else {
		_, _ = fmt.Fprintf(r.out, messages.FlowCheckingFmt, f.Tool)
	}
	result := f.Prober.Check(ctx, f.Tool, f.VersionArgs...)
	r.outcome.Presence = result.Presence
	r.log.Debug("presence check",
		zap.String("tool", f.Tool),
		zap.String("presence", string(result.Presence)),
		zap.String("path", result.Path),
	)
	switch result.Presence {
	case probe.Present:
		r.outcome.Version = result.FirstLine()
		_, _ = color.New(color.FgGreen).Fprintf(r.out, messages.FlowPresentFmt, f.Tool, result.Path)
		return true
	case probe.Broken:
		_, _ = color.New(color.FgYellow).Fprintf(r.out, messages.FlowBrokenFmt, f.Tool, result.Err)
	default:
		_, _ = fmt.Fprintf(r.out, messages.FlowAbsentFmt, f.Tool)
	}
	return false
}

func (r *run) locateAndMutate(ctx context.Context) *Outcome {
	f := r.flow
	r.enter(StateLocateOnDisk)
	_, _ = fmt.Fprintf(r.out, messages.FlowLocatingFmt, locate.ExeName(f.Tool, f.GOOS))
	hit, found, err := f.Locator.Locate(ctx)
	if !found {
		cause := fmt.Errorf(messages.LocateNotFoundNoScanFmt, f.Tool)
		if f.ScanRoot != "" {
			cause = fmt.Errorf(messages.LocateNotFoundFmt, f.Tool, f.ScanRoot)
		}
		if err != nil {
			cause = errors.Join(cause, err)
		}
		return r.fail(KindToolNotFound, cause, f.diagnosticsHint())
	}
	r.outcome.Hit = &hit
	r.outcome.Presence = probe.InstalledNotOnPath
	_, _ = color.New(color.FgGreen).Fprintf(r.out, messages.FlowFoundFmt, hit.Path, hit.Strategy)

	r.enter(StateMutatePath)
	mutation, err := f.Mutator.Append(hit.Dir)
	if err != nil {
		return r.fail(KindPathWrite, err, messages.NextPathWrite)
	}
	r.outcome.Mutation = &mutation
	r.log.Info("path mutation",
		zap.String("status", string(mutation.Status)),
		zap.String("dir", mutation.Dir),
		zap.Bool("seeded", mutation.Seeded),
	)
	if f.SessionPrepend != nil {
		if changed, err := f.SessionPrepend(hit.Dir); err == nil && changed {
			_, _ = fmt.Fprintf(r.out, messages.PathSessionFmt, hit.Dir)
		}
	}

	if mutation.Changed() {
		_, _ = color.New(color.FgGreen).Fprintf(r.out, messages.PathAppendedFmt, mutation.Dir)
		if mutation.Seeded {
			_, _ = fmt.Fprintf(r.out, messages.PathSeededFmt, mutation.Before)
		}
	} else {
		_, _ = fmt.Fprintf(r.out, messages.PathAlreadyPresentFmt, mutation.Dir)
	}

	if f.Revalidate && f.EffectivePath != nil {
		if r.revalidate(ctx) {
			r.note(messages.PathRevalidateOK)
			return r.done()
		}
		if !mutation.Changed() {
			return r.fail(KindPathAlreadyCorrect, errors.New(messages.PathRevalidateFailed), messages.PathRestartAlreadySet)
		}
		r.note(messages.PathRevalidateFailed)
		return r.done()
	}

	if mutation.Changed() {
		r.note(messages.PathRestartSession)
	} else {
		r.note(messages.PathRestartAlreadySet)
	}
	return r.done()
}

func (r *run) revalidate(ctx context.Context) bool {
	f := r.flow
	pathValue, err := f.EffectivePath()
	if err != nil {
		r.log.Warn("revalidate: effective path", zap.Error(err))
		return false
	}
	result := f.Prober.CheckWithEnv(ctx, f.Tool, pathValue, f.VersionArgs...)
	r.log.Debug("revalidate", zap.String("presence", string(result.Presence)))
	return result.OK()
}

func (f *Flow) privileged() (bool, error) {
	if f.Privileged == nil {
		return false, errors.New(messages.PrivilegeNotElevated)
	}
	return f.Privileged()
}

func (f *Flow) pkg() string {
	if f.Package != "" {
		return f.Package
	}
	if f.Manager.Package != "" {
		return f.Manager.Package
	}
	return f.Tool
}

func (f *Flow) elevateHint() string {
	if f.GOOS == "windows" {
		return messages.NextRunElevatedWin
	}
	return messages.NextRunElevatedUnix
}

func (f *Flow) manualHint() string {
	return fmt.Sprintf(messages.NextManualInstallFmt, f.Tool, f.Manager.ManualURL)
}

func (f *Flow) diagnosticsHint() string {
	if f.LogFile != "" {
		return fmt.Sprintf(messages.NextDiagnosticsFmt, f.LogFile)
	}
	return messages.NextDiagnostics
}
