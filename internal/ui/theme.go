package ui

import (
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of ANSI escape sequences for terminal output. Every field
// is empty in the plain theme.
type Theme struct {
	Name      string
	Accent    string
	Muted     string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

// TUITheme is the lipgloss palette used by the dashboard.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	// ColorTheme uses 256-color sequences readable on dark and light
	// backgrounds.
	ColorTheme = Theme{
		Name:      "color",
		Accent:    "\033[38;5;39m",
		Muted:     "\033[38;5;245m",
		Success:   "\033[38;5;34m",
		Warning:   "\033[38;5;214m",
		Error:     "\033[38;5;160m",
		Info:      "\033[38;5;37m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// PlainTheme disables all escape sequences.
	PlainTheme = Theme{Name: "plain"}

	colorTUI = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"},
		Border:  lipgloss.Color("#3B82F6"),
		Accent:  lipgloss.Color("#38BDF8"),
		Success: lipgloss.Color("#22C55E"),
		Warning: lipgloss.Color("#F59E0B"),
		Error:   lipgloss.Color("#EF4444"),
		Dim:     lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		Info:    lipgloss.Color("#14B8A6"),
	}

	plainTUI = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}

	current atomic.Pointer[Theme]
)

func init() {
	current.Store(&ColorTheme)
}

// InitTheme selects the plain theme when noColor is set or NO_COLOR is
// present in the environment (https://no-color.org/), the color theme
// otherwise.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		current.Store(&PlainTheme)
		return
	}
	current.Store(&ColorTheme)
}

// CurrentTheme returns the active theme.
func CurrentTheme() Theme { return *current.Load() }

// GetCurrentTUITheme returns the dashboard palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	if current.Load().Name == PlainTheme.Name {
		return plainTUI
	}
	return colorTUI
}

// Accessors for the sequences of the active theme.

func ColorReset() string     { return current.Load().Reset }
func ColorBold() string      { return current.Load().Bold }
func ColorUnderline() string { return current.Load().Underline }
func ColorBlue() string      { return current.Load().Accent }
func ColorCyan() string      { return current.Load().Info }
func ColorGreen() string     { return current.Load().Success }
func ColorYellow() string    { return current.Load().Warning }
func ColorRed() string       { return current.Load().Error }
func ColorMagenta() string   { return current.Load().Muted }
