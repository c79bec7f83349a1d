package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/toolstrap/internal/bootstrap"
	"github.com/conn-castle/toolstrap/internal/messages"
)

// flowFlags are the repair options shared by install and locate.
type flowFlags struct {
	revalidate *bool
	noScan     bool
}

func addFlowFlags(cmd *cobra.Command, ff *flowFlags) {
	var revalidate bool
	cmd.Flags().BoolVar(&revalidate, "revalidate", false, messages.FlagRevalidate)
	cmd.Flags().BoolVar(&ff.noScan, "no-scan", false, messages.FlagNoScan)
	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		if cmd.Flags().Changed("revalidate") {
			ff.revalidate = &revalidate
		}
	}
}

func (ff flowFlags) apply(a *app) {
	if ff.revalidate != nil {
		a.revalidate = *ff.revalidate
	}
	a.noScan = ff.noScan
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.CheckUse,
		Short: messages.CheckShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()
			outcome := a.Check(cmd.Context())
			err = a.finish(outcome)
			if err == nil && outcome.State != bootstrap.StateDone {
				return &SilentExitError{Code: bootstrap.ExitToolNotFound}
			}
			return err
		},
	}
}

func newInstallCmd(opts *rootOptions) *cobra.Command {
	ff := &flowFlags{}
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd, opts, *ff)
		},
	}
	addFlowFlags(cmd, ff)
	return cmd
}

func runInstall(cmd *cobra.Command, opts *rootOptions, ff flowFlags) error {
	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.close()
	ff.apply(a)
	return a.finish(a.Install(cmd.Context()))
}

func newLocateCmd(opts *rootOptions) *cobra.Command {
	ff := &flowFlags{}
	cmd := &cobra.Command{
		Use:   messages.LocateUse,
		Short: messages.LocateShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()
			ff.apply(a)
			return a.finish(a.Repair(cmd.Context()))
		},
	}
	addFlowFlags(cmd, ff)
	return cmd
}
