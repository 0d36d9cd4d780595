package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifedash/internal/calendar"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateMoodForm && m.form != nil {
		return docStyle.Render(m.form.View())
	}

	title := titleStyle.Render(fmt.Sprintf("%s %d", m.month, m.year))
	if m.loading {
		title += mutedStyle.Render(" loading…")
	}

	var body string
	switch {
	case m.err != nil:
		body = dangerStyle.Render("Error: " + m.err.Error())
	case m.state == StateDay:
		body = detailStyle.Render(RenderDay(m.summaryFor(m.selected)))
	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			RenderMonth(GridOptions{
				Year:      m.year,
				Month:     m.month,
				WeekStart: m.weekStart,
				Today:     m.today,
				Selected:  m.selected,
			}, m.summaries),
			"",
			RenderTotals(m.totals),
		)
	}

	parts := []string{title, body}
	if m.status != "" {
		parts = append(parts, warningStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) summaryFor(date string) calendar.DaySummary {
	if summary, ok := m.summaries[date]; ok {
		return summary
	}
	return calendar.DaySummary{Date: date}
}
