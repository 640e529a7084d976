package prompt

import "github.com/charmbracelet/lipgloss"

var (
	colorTitle = lipgloss.Color("#6C63FF")
	colorError = lipgloss.Color("#E74C3C")
	colorMuted = lipgloss.Color("#666666")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	hintStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)
