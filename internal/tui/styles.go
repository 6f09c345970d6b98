package tui

import (
	"bundledit/internal/config"

	"github.com/charmbracelet/lipgloss"
)

type styleSet struct {
	header       lipgloss.Style
	selected     lipgloss.Style
	untranslated lipgloss.Style
	normal       lipgloss.Style
	status       lipgloss.Style
	errText      lipgloss.Style
	term         lipgloss.Style
	border       lipgloss.Style
}

func newStyles(cfg *config.Config) styleSet {
	primary := lipgloss.Color(cfg.Theme.Primary)
	errColor := lipgloss.Color(cfg.Theme.Error)
	emphasis := lipgloss.Color(cfg.Theme.Emphasis)

	return styleSet{
		header:       lipgloss.NewStyle().Bold(true).Foreground(primary),
		selected:     lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		untranslated: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		normal:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		status:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		errText:      lipgloss.NewStyle().Foreground(errColor).Bold(true),
		term:         lipgloss.NewStyle().Foreground(emphasis).Bold(true),
		border:       lipgloss.NewStyle().Foreground(primary),
	}
}
