package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#7D56F4")
	mutedColor   = lipgloss.Color("#666666")

	rowStyle = lipgloss.NewStyle()

	rowAltStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#0A0A0A"))

	cursorStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Background(lipgloss.Color("#1A1A1A"))

	statusCountStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)
)
