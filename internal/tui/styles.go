package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/ui"
)

type styles struct {
	panel   lipgloss.Style
	header  lipgloss.Style
	title   lipgloss.Style
	version lipgloss.Style
	elapsed lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style

	running lipgloss.Style
	done    lipgloss.Style
	warn    lipgloss.Style
	failed  lipgloss.Style

	cpuLine  lipgloss.Style
	memLine  lipgloss.Style
	rateLine lipgloss.Style
}

// sty holds the dashboard styles. Run rebuilds it once the ui theme is known.
var sty = newStyles(ui.GetCurrentTUITheme())

func newStyles(t ui.TUITheme) styles {
	fg := func(c lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	return styles{
		panel:   fg(t.Text).Border(lipgloss.RoundedBorder()).BorderForeground(t.Border),
		header:  fg(t.Accent).Background(t.Bg).Bold(true).Padding(0, 1),
		title:   fg(t.Accent).Bold(true),
		version: fg(t.Dim),
		elapsed: fg(t.Accent),
		label:   fg(t.Dim),
		value:   fg(t.Accent).Bold(true),

		running: fg(t.Success).Bold(true),
		done:    fg(t.Accent).Bold(true),
		warn:    fg(t.Warning).Bold(true),
		failed:  fg(t.Error).Bold(true),

		cpuLine:  fg(t.Accent),
		memLine:  fg(t.Warning),
		rateLine: fg(t.Success),
	}
}

func initTUIStyles() {
	sty = newStyles(ui.GetCurrentTUITheme())
}
