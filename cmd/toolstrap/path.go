package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/toolstrap/internal/bootstrap"
	"github.com/conn-castle/toolstrap/internal/messages"
	"github.com/conn-castle/toolstrap/internal/pathenv"
)

func newPathCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.PathUse,
		Short: messages.PathShort,
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newPathAddCmd(opts), newPathShowCmd(opts))
	return cmd
}

func newPathAddCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   messages.PathAddUse,
		Short: messages.PathAddShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			mutator := pathenv.NewMutator(a.store, a.syntax)
			if dryRun {
				mutation, err := mutator.Preview(args[0])
				if err != nil {
					return err
				}
				if !mutation.Changed() {
					_, _ = fmt.Fprint(a.out, messages.PathDryRunNoop)
					return nil
				}
				_, _ = fmt.Fprintf(a.out, messages.PathDryRunFmt, mutation.Dir)
				if mutation.Seeded {
					_, _ = fmt.Fprintf(a.out, messages.PathSeededFmt, mutation.Before)
				}
				_, _ = fmt.Fprint(a.out, mutation.UnifiedDiff(a.syntax))
				return nil
			}

			mutation, err := mutator.Append(args[0])
			if err != nil {
				failure := &bootstrap.Failure{
					Kind:  bootstrap.KindPathWrite,
					State: bootstrap.StateMutatePath,
					Err:   err,
					Next:  messages.NextPathWrite,
				}
				bootstrap.Report(a.out, failure)
				return &SilentExitError{Code: failure.ExitCode()}
			}
			if mutation.Changed() {
				_, _ = color.New(color.FgGreen).Fprintf(a.out, messages.PathAppendedFmt, mutation.Dir)
				if mutation.Seeded {
					_, _ = fmt.Fprintf(a.out, messages.PathSeededFmt, mutation.Before)
				}
				_, _ = fmt.Fprintf(a.out, messages.NoteFmt, messages.PathRestartSession)
				return nil
			}
			_, _ = fmt.Fprintf(a.out, messages.PathAlreadyPresentFmt, mutation.Dir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.FlagDryRun)
	return cmd
}

func newPathShowCmd(opts *rootOptions) *cobra.Command {
	scope := string(pathenv.ScopeMachine)
	cmd := &cobra.Command{
		Use:   messages.PathShowUse,
		Short: messages.PathShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			value, err := readScope(a, scope)
			if err != nil {
				return err
			}
			for i, entry := range a.syntax.Split(value) {
				_, _ = fmt.Fprintf(a.out, messages.PathEntryFmt, i, entry)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scope, "scope", scope, messages.FlagScope)
	return cmd
}

func readScope(a *app, raw string) (string, error) {
	if strings.EqualFold(strings.TrimSpace(raw), messages.PathScopeEffective) {
		return pathenv.Effective(a.store, a.syntax)
	}
	scope, err := pathenv.ParseScope(raw)
	if err != nil {
		return "", fmt.Errorf(messages.PathInvalidScopeFmt, raw)
	}
	value, err := a.store.Read(scope)
	if err != nil {
		return "", fmt.Errorf(messages.PathStoreReadFmt, scope, err)
	}
	return value, nil
}
