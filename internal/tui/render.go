package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifedash/internal/calendar"
)

const (
	cellWidth  = 10
	cellHeight = 3
)

// GridOptions controls how RenderMonth draws a month.
type GridOptions struct {
	Year      int
	Month     time.Month
	WeekStart time.Weekday
	Today     string
	Selected  string
}

// RenderMonth draws a month as a bordered grid of day cells. Each cell shows
// the day number, the mood rating and the number of records.
func RenderMonth(opts GridOptions, summaries map[string]calendar.DaySummary) string {
	headers := make([]string, 0, 7)
	for _, h := range calendar.WeekdayHeaders(opts.WeekStart) {
		headers = append(headers, headerStyle.Render(h))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, headers...)}

	for _, week := range calendar.MonthGrid(opts.Year, opts.Month, opts.WeekStart) {
		cells := make([]string, 0, 7)
		for _, date := range week {
			cells = append(cells, renderCell(date, summaries[date], opts))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(date string, s calendar.DaySummary, opts GridOptions) string {
	style := cellStyle
	if date != "" && date == opts.Selected {
		style = selectedCellStyle
	}
	if date == "" {
		return style.Render("")
	}

	day := strings.TrimLeft(date[8:], "0")
	if date == opts.Today {
		day = todayStyle.Render(day)
	}

	var marks []string
	if s.MoodRating != nil {
		marks = append(marks, lipgloss.NewStyle().Foreground(moodColors[*s.MoodRating]).Render(fmt.Sprintf("☺%d", *s.MoodRating)))
	}
	if s.DuolingoDone {
		marks = append(marks, "🦉")
	}

	detail := ""
	if n := s.Total(); n > 0 {
		detail = mutedStyle.Render(fmt.Sprintf("%d item%s", n, plural(n)))
	}
	if s.Tasks.Overdue > 0 {
		detail = dangerStyle.Render(fmt.Sprintf("%d overdue", s.Tasks.Overdue))
	}

	return style.Render(strings.Join([]string{day, strings.Join(marks, " "), detail}, "\n"))
}

// RenderDay lists every non-empty category of a day with its first record.
func RenderDay(s calendar.DaySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(s.Date))

	if s.MoodRating != nil {
		fmt.Fprintf(&b, "Mood: %d/5\n", *s.MoodRating)
	}
	if s.DuolingoDone {
		b.WriteString("Duolingo: done\n")
	}
	if s.IsEmpty() {
		b.WriteString(mutedStyle.Render("Nothing recorded."))
		return b.String()
	}

	for _, c := range calendar.Categories {
		cs := s.Category(c)
		if cs.Count == 0 {
			continue
		}
		line := fmt.Sprintf("%-13s %d", c.String()+":", cs.Count)
		if cs.First != nil {
			line += mutedStyle.Render(fmt.Sprintf("  %s", previewText(*cs.First)))
		}
		if c == calendar.CategoryTasks {
			line += fmt.Sprintf("  (%d done, %d overdue, %d upcoming)", s.Tasks.Completed, s.Tasks.Overdue, s.Tasks.Upcoming)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderTotals is the one-paragraph month summary shown under the grid.
func RenderTotals(t calendar.MonthTotals) string {
	mood := "n/a"
	if t.AvgMood != nil {
		mood = fmt.Sprintf("%.1f", calendar.Round1(*t.AvgMood))
	}
	lines := []string{
		fmt.Sprintf("Mood avg %s over %d day(s)  ·  Habits %.0f%%  ·  Duolingo %.0f%%",
			mood, t.MoodDays, t.HabitRate*100, t.DuolingoRate*100),
		fmt.Sprintf("Events %d  ·  Tasks %d (%d done)  ·  Activities %d (%d min, %.1f km)  ·  Media %d",
			t.Events, t.Tasks, t.TasksCompleted, t.Activities, t.ActivityMinutes, calendar.Round1(t.DistanceKm), t.Media),
		fmt.Sprintf("Parks %d  ·  Journals %d  ·  Goals %d  ·  GitHub %d  ·  Meals %d (%d kcal)",
			t.Parks, t.Journals, t.GoalsCompleted, t.GithubEvents, t.Meals, t.MealCalories),
	}
	return strings.Join(lines, "\n")
}

func previewText(p calendar.Preview) string {
	if p.Type == "" {
		return p.Title
	}
	return fmt.Sprintf("%s [%s]", p.Title, p.Type)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
