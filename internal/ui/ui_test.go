package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/toolstrap/internal/bootstrap"
	"github.com/conn-castle/toolstrap/internal/messages"
	"github.com/conn-castle/toolstrap/internal/pkgmgr"
)

func TestHuhUIRequiresTerminal(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return false }}

	var choice string
	assert.EqualError(t, ui.Select("Title", []string{"A"}, &choice), messages.UIRequiresTerminal)
	var ok bool
	assert.Error(t, ui.Confirm("Title", &ok))
	assert.Error(t, ui.Note("Title", "Body"))
}

func TestHuhUIRunForm(t *testing.T) {
	orig := runFormFunc
	t.Cleanup(func() { runFormFunc = orig })
	ui := &HuhUI{isTerminal: func() bool { return true }}

	runFormFunc = func(form *huh.Form) error {
		assert.NotNil(t, form)
		return nil
	}
	var choice string
	require.NoError(t, ui.Select("Title", []string{"A", "B"}, &choice))

	runFormFunc = func(*huh.Form) error { return huh.ErrUserAborted }
	assert.ErrorIs(t, ui.Note("Title", "Body"), ErrCancelled)

	boom := errors.New("boom")
	runFormFunc = func(*huh.Form) error { return boom }
	var ok bool
	assert.ErrorIs(t, ui.Confirm("Title", &ok), boom)
}

type scriptedUI struct {
	selects   []string
	confirms  []bool
	notes     []string
	selectErr error
}

func (u *scriptedUI) Select(_ string, options []string, current *string) error {
	if len(u.selects) == 0 {
		if u.selectErr != nil {
			return u.selectErr
		}
		return ErrCancelled
	}
	*current = u.selects[0]
	u.selects = u.selects[1:]
	return nil
}

func (u *scriptedUI) Confirm(_ string, value *bool) error {
	*value = u.confirms[0]
	u.confirms = u.confirms[1:]
	return nil
}

func (u *scriptedUI) Note(_ string, body string) error {
	u.notes = append(u.notes, body)
	return nil
}

type fakeActions struct {
	calls   []string
	install *bootstrap.Outcome
}

func (a *fakeActions) Check(context.Context) *bootstrap.Outcome {
	a.calls = append(a.calls, "check")
	return &bootstrap.Outcome{State: bootstrap.StateCheckPresent}
}

func (a *fakeActions) Install(context.Context) *bootstrap.Outcome {
	a.calls = append(a.calls, "install")
	return a.install
}

func (a *fakeActions) Repair(context.Context) *bootstrap.Outcome {
	a.calls = append(a.calls, "repair")
	return &bootstrap.Outcome{State: bootstrap.StateDone}
}

func (a *fakeActions) Manual(w io.Writer) error {
	a.calls = append(a.calls, "manual")
	_, err := io.WriteString(w, "manual page\n")
	return err
}

func TestMenuDispatchesChoices(t *testing.T) {
	ui := &scriptedUI{
		selects: []string{
			messages.MenuChoiceCheck,
			messages.MenuChoiceManual,
			messages.MenuChoiceInstall,
			messages.MenuChoiceInstall,
			messages.MenuChoiceRepair,
			messages.MenuChoiceExit,
		},
		confirms: []bool{false, true},
	}
	actions := &fakeActions{install: &bootstrap.Outcome{
		State:   bootstrap.StateFatal,
		Failure: &bootstrap.Failure{Kind: bootstrap.KindToolInstall},
	}}
	var out bytes.Buffer
	menu := &Menu{UI: ui, Actions: actions, Tool: "ffmpeg", Version: "v1.0.0", Out: &out}

	code, err := menu.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bootstrap.ExitOK, code)
	assert.Equal(t, []string{"check", "manual", "install", "repair"}, actions.calls)
	assert.Equal(t, []string{
		"ffmpeg is not on the search path.",
		"Auto-install and fix PATH (requires elevation): tool install failure (exit 3).",
		"Find an existing install and fix PATH: done (exit 0).",
	}, ui.notes)
	assert.Contains(t, out.String(), "toolstrap v1.0.0")
	assert.Contains(t, out.String(), "manual page")
	assert.Contains(t, out.String(), "Cancelled.")
}

func TestMenuReturnsLastExitCodeOnCancel(t *testing.T) {
	ui := &scriptedUI{selects: []string{messages.MenuChoiceCheck}}
	code, err := (&Menu{UI: ui, Actions: &fakeActions{}, Tool: "ffmpeg"}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bootstrap.ExitToolNotFound, code)
}

func TestMenuPropagatesPromptErrors(t *testing.T) {
	ui := &scriptedUI{selectErr: errors.New(messages.UIRequiresTerminal)}
	_, err := (&Menu{UI: ui, Actions: &fakeActions{}, Tool: "ffmpeg"}).Run(context.Background())
	assert.EqualError(t, err, messages.UIRequiresTerminal)
}

func TestManualMarkdown(t *testing.T) {
	choco, err := pkgmgr.Lookup("chocolatey")
	require.NoError(t, err)

	md := ManualMarkdown("ffmpeg", []string{"-version"}, choco, "", "windows")
	assert.Contains(t, md, "# Installing ffmpeg by hand")
	assert.Contains(t, md, "choco install ffmpeg -y --no-progress")
	assert.Contains(t, md, `C:\ffmpeg\bin`)
	assert.Contains(t, md, "`ffmpeg.exe`")
	assert.Contains(t, md, "ffmpeg -version")

	bare := ManualMarkdown("ffprobe", []string{"-version"}, pkgmgr.Manager{}, "", "linux")
	assert.NotContains(t, bare, "## With")
	assert.NotContains(t, bare, "release archive")
}

func TestRenderManualPlain(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderManual(&out, "# Title\n\nSome *text*.\n", false))
	assert.Contains(t, out.String(), "Title")
	assert.Contains(t, out.String(), "text")
}
