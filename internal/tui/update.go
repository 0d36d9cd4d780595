package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/lifedash/internal/calendar"
	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/logger"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case monthLoadedMsg:
		// a slower load for a month we already left is stale
		if msg.year != m.year || msg.month != m.month {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			logger.Error("Failed to load month", "month", fmt.Sprintf("%d-%02d", msg.year, msg.month), "error", msg.err)
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.days = msg.days
		m.summaries = calendar.SummarizeMonth(msg.days, m.today)
		m.totals = calendar.AggregateMonth(msg.days)
		return m, nil

	case moodSavedMsg:
		if msg.err != nil {
			m.status = "Failed to save mood: " + msg.err.Error()
			return m, nil
		}
		m.status = "Mood saved for " + m.selected
		m.loading = true
		return m, m.loadMonth()
	}

	if m.state == StateMoodForm {
		return m.updateMoodForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Mood):
		return m.openMoodForm()
	}

	if m.state == StateDay {
		if key.Matches(keyMsg, m.keys.Back, m.keys.Enter) {
			m.state = StateMonth
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Enter):
		m.state = StateDay
		return m, nil
	case key.Matches(keyMsg, m.keys.Left):
		return m.moveSelection(-1)
	case key.Matches(keyMsg, m.keys.Right):
		return m.moveSelection(1)
	case key.Matches(keyMsg, m.keys.Up):
		return m.moveSelection(-7)
	case key.Matches(keyMsg, m.keys.Down):
		return m.moveSelection(7)
	case key.Matches(keyMsg, m.keys.PrevMonth):
		return m.shiftMonth(-1)
	case key.Matches(keyMsg, m.keys.NextMonth):
		return m.shiftMonth(1)
	case key.Matches(keyMsg, m.keys.Today):
		return m.selectDate(m.today)
	}
	return m, nil
}

// moveSelection shifts the highlighted day, following it into the adjacent
// month when it leaves the current one.
func (m Model) moveSelection(days int) (tea.Model, tea.Cmd) {
	next, err := utils.AddDays(m.selected, days)
	if err != nil {
		return m, nil
	}
	return m.selectDate(next)
}

func (m Model) selectDate(date string) (tea.Model, tea.Cmd) {
	t, err := utils.ParseDate(date)
	if err != nil {
		return m, nil
	}
	m.selected = date
	m.status = ""
	if t.Year() == m.year && t.Month() == m.month {
		return m, nil
	}
	m.year, m.month = t.Year(), t.Month()
	m.loading = true
	return m, m.loadMonth()
}

// shiftMonth moves by whole months and keeps the day of month when the
// target month is long enough.
func (m Model) shiftMonth(delta int) (tea.Model, tea.Cmd) {
	first := time.Date(m.year, m.month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	day := 1
	if sel, err := utils.ParseDate(m.selected); err == nil {
		day = sel.Day()
	}
	last := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}
	return m.selectDate(utils.FormatDate(time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)))
}

func (m Model) openMoodForm() (tea.Model, tea.Cmd) {
	if m.saver == nil {
		return m, nil
	}
	m.moodForm = &MoodFormModel{Rating: 3}
	if s, ok := m.summaries[m.selected]; ok && s.MoodRating != nil {
		m.moodForm.Rating = *s.MoodRating
	}
	m.form = NewMoodForm(m.selected, m.moodForm)
	m.state = StateMoodForm
	return m, m.form.Init()
}

func (m Model) updateMoodForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = StateMonth
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = StateMonth
		mood := models.Mood{
			ID:     uuid.New().String(),
			Date:   m.selected,
			Rating: m.moodForm.Rating,
			Note:   m.moodForm.Note,
		}
		if err := mood.Validate(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.saveMood(mood)
	case huh.StateAborted:
		m.state = StateMonth
		return m, nil
	}
	return m, cmd
}

// NewMoodForm builds the rating form shared by the browser and 'mood log
// --interactive'. Results are written into target.
func NewMoodForm(date string, target *MoodFormModel) *huh.Form {
	options := make([]huh.Option[int], 0, constants.MaxMoodRating)
	for r := constants.MinMoodRating; r <= constants.MaxMoodRating; r++ {
		options = append(options, huh.NewOption(strconv.Itoa(r)+" "+moodLabel(r), r))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Mood for "+date).
				Options(options...).
				Value(&target.Rating),
			huh.NewInput().
				Title("Note").
				Placeholder("optional").
				Value(&target.Note),
		),
	)
}

func moodLabel(rating int) string {
	switch rating {
	case 1:
		return "awful"
	case 2:
		return "bad"
	case 3:
		return "okay"
	case 4:
		return "good"
	default:
		return "great"
	}
}
