package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/conn-castle/toolstrap/internal/messages"
	"github.com/conn-castle/toolstrap/internal/ui"
)

var newUI = func() ui.UI { return ui.NewHuhUI() }

func newMenuCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.MenuUse,
		Short: messages.MenuShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd, opts)
		},
	}
}

func runMenu(cmd *cobra.Command, opts *rootOptions) error {
	if !isInteractive() {
		return errors.New(messages.MenuRequiresTerminal)
	}
	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.close()

	menu := &ui.Menu{
		UI:      newUI(),
		Actions: a,
		Tool:    a.cfg.Tool.Name,
		Version: Version,
		Out:     a.out,
	}
	code, err := menu.Run(cmd.Context())
	if err != nil {
		return err
	}
	if code != 0 {
		return &SilentExitError{Code: code}
	}
	return nil
}

func newManualCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ManualUse,
		Short: messages.ManualShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()
			return a.Manual(a.out)
		},
	}
}
