package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/conn-castle/toolstrap/internal/bootstrap"
	"github.com/conn-castle/toolstrap/internal/messages"
)

// Actions are the bootstrap entry points reachable from the menu.
type Actions interface {
	Check(ctx context.Context) *bootstrap.Outcome
	Install(ctx context.Context) *bootstrap.Outcome
	Repair(ctx context.Context) *bootstrap.Outcome
	Manual(w io.Writer) error
}

// Menu loops over the top-level choices until the user exits.
type Menu struct {
	UI      UI
	Actions Actions
	Tool    string
	Version string
	Out     io.Writer
}

// Choices returns the menu options in display order.
func Choices() []string {
	return []string{
		messages.MenuChoiceCheck,
		messages.MenuChoiceInstall,
		messages.MenuChoiceManual,
		messages.MenuChoiceRepair,
		messages.MenuChoiceExit,
	}
}

// Run shows the menu until Exit is chosen or a prompt is cancelled. It returns the exit code of
// the last action that ran.
func (m *Menu) Run(ctx context.Context) (int, error) {
	out := m.Out
	if out == nil {
		out = io.Discard
	}
	_, _ = fmt.Fprintln(out, Banner(m.Tool, m.Version))

	code := bootstrap.ExitOK
	for {
		choice := messages.MenuChoiceCheck
		if err := m.UI.Select(fmt.Sprintf(messages.MenuTitleFmt, m.Tool), Choices(), &choice); err != nil {
			if errors.Is(err, ErrCancelled) {
				return code, nil
			}
			return code, err
		}

		var outcome *bootstrap.Outcome
		switch choice {
		case messages.MenuChoiceCheck:
			outcome = m.Actions.Check(ctx)
		case messages.MenuChoiceInstall:
			proceed := false
			if err := m.UI.Confirm(messages.MenuConfirmInstall, &proceed); err != nil && !errors.Is(err, ErrCancelled) {
				return code, err
			}
			if !proceed {
				_, _ = fmt.Fprintln(out, messages.MenuCancelled)
				continue
			}
			outcome = m.Actions.Install(ctx)
		case messages.MenuChoiceManual:
			if err := m.Actions.Manual(out); err != nil {
				return code, err
			}
			continue
		case messages.MenuChoiceRepair:
			outcome = m.Actions.Repair(ctx)
		default:
			return code, nil
		}

		code = outcome.ExitCode()
		if outcome.Failure == nil && outcome.State != bootstrap.StateDone {
			code = bootstrap.ExitToolNotFound
		}
		if err := m.UI.Note(messages.MenuResultTitle, m.summary(choice, outcome)); err != nil && !errors.Is(err, ErrCancelled) {
			return code, err
		}
	}
}

func (m *Menu) summary(choice string, outcome *bootstrap.Outcome) string {
	if outcome.Failure != nil {
		return fmt.Sprintf(messages.MenuResultFailFmt, choice, outcome.Failure.Kind.Label(), outcome.ExitCode())
	}
	if outcome.State != bootstrap.StateDone {
		return fmt.Sprintf(messages.MenuResultAbsentFmt, m.Tool)
	}
	return fmt.Sprintf(messages.MenuResultOKFmt, choice)
}
