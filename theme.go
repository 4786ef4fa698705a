// theme.go holds the color table and the lipgloss styles built from it.
package main

import "github.com/charmbracelet/lipgloss"

// theme is the color table shared by every view style.
var theme = struct {
	bg     lipgloss.Color
	grey   lipgloss.Color
	light  lipgloss.Color
	toDoBg lipgloss.Color
	finish lipgloss.Color
	update lipgloss.Color
	delete lipgloss.Color
}{
	bg:     lipgloss.Color("#000000"),
	grey:   lipgloss.Color("#3A3D40"),
	light:  lipgloss.Color("#FFFFFF"),
	toDoBg: lipgloss.Color("#5C5C60"),
	finish: lipgloss.Color("#4CAF50"),
	update: lipgloss.Color("#FFC107"),
	delete: lipgloss.Color("#D73A4A"),
}

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(theme.light).Padding(0, 2)
	inactiveTabStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.grey).Padding(0, 2)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.light).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1)

	toDoStyle = lipgloss.NewStyle().
			Background(theme.toDoBg).
			Foreground(theme.light).
			Bold(true).
			Padding(0, 2)
	toDoDoneStyle = toDoStyle.
			Foreground(theme.grey).
			Strikethrough(true)
	cursorStyle = lipgloss.NewStyle().Foreground(theme.update).Bold(true)

	finishStyle  = lipgloss.NewStyle().Foreground(theme.finish)
	updateStyle  = lipgloss.NewStyle().Foreground(theme.update)
	deleteStyle  = lipgloss.NewStyle().Foreground(theme.delete)
	disabledIcon = lipgloss.NewStyle().Foreground(theme.grey)

	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.delete).
			Padding(0, 2)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666"))
	statusStyle = lipgloss.NewStyle().Foreground(theme.finish)
)
