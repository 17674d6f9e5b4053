package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha subset.
const (
	colorBrand   lipgloss.Color = "#cba6f7"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorText    lipgloss.Color = "#cdd6f4"
	colorSubtext lipgloss.Color = "#a6adc8"
	colorOverlay lipgloss.Color = "#7f849c"
	colorSurface lipgloss.Color = "#45475a"
	colorGreen   lipgloss.Color = "#a6e3a1"
	colorRed     lipgloss.Color = "#f38ba8"
	colorYellow  lipgloss.Color = "#f9e2af"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(colorOverlay)
	labelStyle  = lipgloss.NewStyle().Foreground(colorSubtext)

	yesStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle = lipgloss.NewStyle().Foreground(colorYellow)

	statusStyle = lipgloss.NewStyle().Foreground(colorSubtext)

	footerStyle = lipgloss.NewStyle().Foreground(colorOverlay)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)
