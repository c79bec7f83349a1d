package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/toolstrap/internal/messages"
	"github.com/conn-castle/toolstrap/internal/update"
	"github.com/conn-castle/toolstrap/internal/version"
)

var (
	checkForUpdate  = update.Check
	newUpdateSource = update.NewSource
)

func newVersionCmd() *cobra.Command {
	var checkLatest bool
	cmd := &cobra.Command{
		Use:   messages.VersionUse,
		Short: messages.VersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, versionString())
			if !checkLatest {
				return nil
			}
			if version.IsDev(Version) {
				_, _ = fmt.Fprint(out, messages.UpdateDevBuild)
				return nil
			}
			result, err := checkForUpdate(cmd.Context(), newUpdateSource(), Version)
			if err != nil {
				return fmt.Errorf(messages.UpdateCheckFailedFmt, err)
			}
			if !result.Outdated {
				_, _ = fmt.Fprintf(out, messages.UpdateCurrentFmt, result.Current)
				return nil
			}
			_, _ = fmt.Fprintf(out, messages.UpdateAvailableFmt, result.Latest, result.Current)
			_, _ = fmt.Fprintf(out, messages.UpdateDownloadFmt, update.ReleasesURL)
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkLatest, "check", false, messages.FlagCheckLatest)
	return cmd
}
