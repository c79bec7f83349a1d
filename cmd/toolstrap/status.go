package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/toolstrap/internal/doctor"
	"github.com/conn-castle/toolstrap/internal/messages"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	output := doctor.FormatText
	cmd := &cobra.Command{
		Use:   messages.StatusUse,
		Short: messages.StatusShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch output {
			case doctor.FormatText, doctor.FormatJSON, doctor.FormatYAML:
			default:
				return fmt.Errorf(messages.StatusInvalidOutputFmt, output)
			}
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			results := doctor.Run(cmd.Context(), doctor.Inputs{
				Tool:        a.cfg.Tool.Name,
				VersionArgs: a.cfg.Tool.VersionArgs,
				Manager:     a.manager,
				Prober:      a.checker,
				Locator:     a.locator(true),
				Privileged:  isElevated,
				Store:       a.store,
				Syntax:      a.syntax,
			})
			report := doctor.NewReport(a.cfg.Tool.Name, a.manager.Name, results)
			if err := doctor.Render(a.out, report, output); err != nil {
				return err
			}
			if report.Status == doctor.StatusFail {
				return &SilentExitError{Code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", output, messages.FlagOutput)
	return cmd
}
