package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/toolstrap/internal/messages"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	tool       string
	manager    string
	verbose    bool
	logFile    string
	noColor    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isInteractive() {
				return runMenu(cmd, opts)
			}
			return runInstall(cmd, opts, flowFlags{})
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", messages.FlagConfig)
	flags.StringVar(&opts.tool, "tool", "", messages.FlagTool)
	flags.StringVar(&opts.manager, "manager", "", messages.FlagManager)
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, messages.FlagVerbose)
	flags.StringVar(&opts.logFile, "log-file", "", messages.FlagLogFile)
	flags.BoolVar(&opts.noColor, "no-color", false, messages.FlagNoColor)

	cmd.AddCommand(
		newCheckCmd(opts),
		newInstallCmd(opts),
		newLocateCmd(opts),
		newPathCmd(opts),
		newStatusCmd(opts),
		newManualCmd(opts),
		newMenuCmd(opts),
		newVersionCmd(),
	)
	return cmd
}
