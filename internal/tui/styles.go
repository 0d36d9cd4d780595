package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(cellWidth).
			Align(lipgloss.Center)

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Height(cellHeight).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238"))

	selectedCellStyle = cellStyle.
				BorderForeground(lipgloss.Color("205"))

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

// moodColors maps ratings 1..5 from red to green.
var moodColors = map[int]lipgloss.Color{
	1: lipgloss.Color("196"),
	2: lipgloss.Color("208"),
	3: lipgloss.Color("226"),
	4: lipgloss.Color("148"),
	5: lipgloss.Color("46"),
}
