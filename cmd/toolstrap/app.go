package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conn-castle/toolstrap/internal/bootstrap"
	"github.com/conn-castle/toolstrap/internal/config"
	"github.com/conn-castle/toolstrap/internal/locate"
	"github.com/conn-castle/toolstrap/internal/logging"
	"github.com/conn-castle/toolstrap/internal/messages"
	"github.com/conn-castle/toolstrap/internal/pathenv"
	"github.com/conn-castle/toolstrap/internal/pkgmgr"
	"github.com/conn-castle/toolstrap/internal/privilege"
	"github.com/conn-castle/toolstrap/internal/probe"
	"github.com/conn-castle/toolstrap/internal/terminal"
	"github.com/conn-castle/toolstrap/internal/ui"
)

// Seams for tests.
var (
	hostOS        = runtime.GOOS
	getenv        = os.Getenv
	isInteractive = terminal.IsInteractive
	isElevated    = privilege.IsElevated
	newRunner     = func() probe.Runner { return probe.ExecRunner{} }
	newFetcher    = func() pkgmgr.Fetcher { return pkgmgr.NewDownloader() }
	newHostStore  = pathenv.NewHostStore
	loadConfig    = config.Load
	openLog       = logging.Open
)

// app wires the configured collaborators for one command invocation.
type app struct {
	cfg        *config.Config
	goos       string
	manager    pkgmgr.Manager
	syntax     pathenv.Syntax
	store      pathenv.Store
	runner     probe.Runner
	checker    *probe.Checker
	diag       *logging.Diagnostic
	out        io.Writer
	errOut     io.Writer
	revalidate bool
	noScan     bool
}

func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.tool != "" {
		cfg.Tool.Name = opts.tool
	}
	if opts.manager != "" {
		cfg.Manager.Name = opts.manager
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if err := cfg.Validate(messages.RootUse); err != nil {
		return nil, err
	}
	manager, err := cfg.ResolveManager(hostOS)
	if err != nil {
		return nil, err
	}

	diag, err := openLog(logging.Options{
		File:    cfg.Log.File,
		Verbose: opts.verbose || cfg.Log.Level == config.LogLevelDebug,
		Version: Version,
	})
	if err != nil {
		return nil, err
	}
	diag.Logger.Info("run started",
		zap.String("command", cmd.CommandPath()),
		zap.String("tool", cfg.Tool.Name),
		zap.String("manager", manager.Name),
	)

	runner := newRunner()
	checker := probe.NewChecker(runner)
	checker.Timeout = cfg.ProbeTimeout()
	return &app{
		cfg:     cfg,
		goos:    hostOS,
		manager: manager,
		syntax:  pathenv.SyntaxFor(hostOS),
		store: newHostStore(pathenv.HostOptions{
			MachineFile: cfg.Store.MachineFile,
			UserFile:    cfg.Store.UserFile,
			LockPath:    cfg.Store.LockFile,
		}),
		runner:     runner,
		checker:    checker,
		diag:       diag,
		out:        cmd.OutOrStdout(),
		errOut:     cmd.ErrOrStderr(),
		revalidate: cfg.Path.Revalidate,
	}, nil
}

func (a *app) close() {
	_ = a.diag.Close()
}

func (a *app) scanEnabled() bool {
	return !a.noScan && a.cfg.ScanEnabled()
}

func (a *app) scanRoot() string {
	if !a.scanEnabled() {
		return ""
	}
	if a.cfg.Locate.ScanRoot != "" {
		return a.cfg.Locate.ScanRoot
	}
	return locate.ScanRoot(a.goos, getenv)
}

func (a *app) locator(noScan bool) locate.Chain {
	return locate.Build(locate.Options{
		GOOS:       a.goos,
		Getenv:     getenv,
		Tool:       a.cfg.Tool.Name,
		ExtraDirs:  a.cfg.Locate.KnownDirs,
		ExtraGlobs: a.cfg.Locate.Globs,
		ScanRoot:   a.cfg.Locate.ScanRoot,
		NoScan:     noScan,
		Notify: func(root string) {
			_, _ = fmt.Fprintf(a.out, messages.LocateScanWarningFmt, root)
		},
	})
}

func (a *app) sessionPrepend(dir string) (bool, error) {
	return pathenv.PrependSession(a.syntax, dir)
}

func (a *app) flow() *bootstrap.Flow {
	return &bootstrap.Flow{
		Tool:        a.cfg.Tool.Name,
		VersionArgs: a.cfg.Tool.VersionArgs,
		Package:     a.cfg.Tool.Package,
		Manager:     a.manager,
		GOOS:        a.goos,
		Prober:      a.checker,
		Privileged:  isElevated,
		Bootstrapper: &pkgmgr.Bootstrapper{
			Manager:       a.manager,
			Checker:       a.checker,
			Runner:        a.runner,
			Fetcher:       newFetcher(),
			Refresh:       func() error { return pathenv.Refresh(a.store, a.syntax) },
			AddSessionDir: a.sessionPrepend,
			Out:           a.out,
		},
		Installer:      &pkgmgr.Installer{Manager: a.manager, Runner: a.runner, Out: a.out},
		Locator:        a.locator(!a.scanEnabled()),
		Mutator:        pathenv.NewMutator(a.store, a.syntax),
		SessionPrepend: a.sessionPrepend,
		EffectivePath:  func() (string, error) { return pathenv.Effective(a.store, a.syntax) },
		Revalidate:     a.revalidate,
		ScanRoot:       a.scanRoot(),
		Out:            a.out,
		Logger:         a.diag.Logger,
		LogFile:        a.diag.File,
	}
}

// finish logs the outcome and converts it into the process exit code.
func (a *app) finish(outcome *bootstrap.Outcome) error {
	code := outcome.ExitCode()
	a.diag.Logger.Info("run finished",
		zap.String("state", string(outcome.State)),
		zap.Any("trace", outcome.Trace),
		zap.Int("exit_code", code),
	)
	if outcome.Failure != nil && a.diag.File != "" {
		_, _ = fmt.Fprintf(a.errOut, messages.LogFileFmt, a.diag.File, a.diag.RunID)
	}
	if code != bootstrap.ExitOK {
		return &SilentExitError{Code: code}
	}
	return nil
}

// Check, Install, Repair and Manual make app the action set of the interactive menu.

func (a *app) Check(ctx context.Context) *bootstrap.Outcome {
	return a.flow().Check(ctx)
}

func (a *app) Install(ctx context.Context) *bootstrap.Outcome {
	return a.flow().Run(ctx)
}

func (a *app) Repair(ctx context.Context) *bootstrap.Outcome {
	return a.flow().LocateAndFix(ctx)
}

func (a *app) Manual(w io.Writer) error {
	markdown := ui.ManualMarkdown(a.cfg.Tool.Name, a.cfg.Tool.VersionArgs, a.manager, a.cfg.Tool.Package, a.goos)
	return ui.RenderManual(w, markdown, isInteractive())
}
