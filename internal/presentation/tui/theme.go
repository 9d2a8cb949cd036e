package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent lipgloss.Color = "#c084fc"
	colorDanger lipgloss.Color = "#fb7185"
	colorMuted  lipgloss.Color = "#6c7086"
	colorText   lipgloss.Color = "#cdd6f4"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	itemStyle     = lipgloss.NewStyle().Foreground(colorText).PaddingLeft(2)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	dangerStyle   = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(colorDanger)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1).MarginTop(1)
	alertStyle    = panelStyle.BorderForeground(colorDanger)
	inputStyle    = lipgloss.NewStyle().Foreground(colorText).Underline(true)
	helpKeyStyle  = lipgloss.NewStyle().Foreground(colorAccent)
	helpDescStyle = mutedStyle
)
