package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/conn-castle/toolstrap/internal/locate"
	"github.com/conn-castle/toolstrap/internal/messages"
	"github.com/conn-castle/toolstrap/internal/pkgmgr"
)

const manualWrap = 80

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Banner renders the menu header.
func Banner(tool string, version string) string {
	title := bannerStyle.Render("toolstrap " + version)
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitleStyle.Render(fmt.Sprintf(messages.BannerSubtitleFmt, tool)))
}

// ManualMarkdown returns step-by-step install instructions for tool as Markdown.
func ManualMarkdown(tool string, versionArgs []string, m pkgmgr.Manager, pkg string, goos string) string {
	if pkg == "" {
		pkg = m.Package
	}
	if pkg == "" {
		pkg = tool
	}
	suggested := messages.ManualSuggestedUnix
	if goos == "windows" {
		suggested = messages.ManualSuggestedWin
	}

	var b strings.Builder
	_, _ = fmt.Fprintf(&b, messages.ManualTitleFmt, tool)
	if m.Binary != "" {
		command := append([]string{m.Binary}, m.InstallCommand(pkg)...)
		_, _ = fmt.Fprintf(&b, messages.ManualManagerFmt, m.Name, strings.Join(command, " "))
	}
	if m.ManualURL != "" {
		_, _ = fmt.Fprintf(&b, messages.ManualDownloadFmt, m.ManualURL, suggested, locate.ExeName(tool, goos))
	}
	_, _ = fmt.Fprintf(&b, messages.ManualVerifyFmt, tool, strings.Join(versionArgs, " "))
	return b.String()
}

// RenderManual writes markdown to w. Styled output is used on a terminal and plain text
// otherwise. If rendering fails the raw Markdown is written.
func RenderManual(w io.Writer, markdown string, styled bool) error {
	style := glamour.WithStandardStyle("notty")
	if styled {
		style = glamour.WithAutoStyle()
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(manualWrap))
	if err != nil {
		_, werr := io.WriteString(w, markdown)
		return werr
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		_, werr := io.WriteString(w, markdown)
		return werr
	}
	_, err = io.WriteString(w, out)
	if err != nil {
		return fmt.Errorf(messages.UIRenderManualFmt, err)
	}
	return nil
}
