package main

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	lightPrimary = lipgloss.Color("#2E7D32")
	lightMuted   = lipgloss.Color("#6B7280")
	darkPrimary  = lipgloss.Color("#8BC34A")
	darkMuted    = lipgloss.Color("#9CA3AF")

	warning = lipgloss.Color("#FFC107")
)

// theme holds the styles used by command output.
type theme struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Warning lipgloss.Style
}

func newTheme(dark bool) theme {
	primary, muted := lightPrimary, lightMuted
	if dark {
		primary, muted = darkPrimary, darkMuted
	}
	return theme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(primary),
		Heading: lipgloss.NewStyle().Bold(true).Underline(true),
		Muted:   lipgloss.NewStyle().Foreground(muted),
		Warning: lipgloss.NewStyle().Foreground(warning),
	}
}

// currentTheme follows the dark mode setting.
func currentTheme() theme {
	return newTheme(application.Settings.Settings().DarkMode)
}

// swatch renders text on one of the chaos colors.
func swatch(hex, text string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hex)).Render(text)
}
