package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#333333")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#555555"))

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0070F3")).
			Padding(0, 2)

	disabledButtonStyle = buttonStyle.
				Background(lipgloss.Color("#CCCCCC"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CC3333")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FFCCCC")).
			Padding(0, 1)

	responseStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#E0E0E0")).
			Padding(0, 1)

	traceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)
)
