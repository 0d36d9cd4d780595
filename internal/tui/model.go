// Package tui is the interactive month browser.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifedash/internal/calendar"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/utils"
)

type SessionState int

const (
	StateMonth SessionState = iota
	StateDay
	StateMoodForm
)

// MonthLoader builds the day map of one calendar month.
type MonthLoader interface {
	BuildMonth(ctx context.Context, year int, month time.Month) (calendar.DayMap, error)
}

// MoodSaver persists a mood entered from the browser.
type MoodSaver interface {
	SaveMood(ctx context.Context, mood models.Mood) error
}

type MoodFormModel struct {
	Rating int
	Note   string
}

type monthLoadedMsg struct {
	year  int
	month time.Month
	days  calendar.DayMap
	err   error
}

type moodSavedMsg struct {
	err error
}

type Model struct {
	loader    MonthLoader
	saver     MoodSaver
	weekStart time.Weekday
	today     string

	state    SessionState
	year     int
	month    time.Month
	selected string
	loading  bool

	days      calendar.DayMap
	summaries map[string]calendar.DaySummary
	totals    calendar.MonthTotals

	keys     KeyMap
	help     help.Model
	form     *huh.Form
	moodForm *MoodFormModel

	err      error
	status   string
	quitting bool
	width    int
	height   int
}

// NewModel opens the browser on the month containing today.
func NewModel(loader MonthLoader, saver MoodSaver, settings models.Settings, today string) Model {
	t, err := utils.ParseDate(today)
	if err != nil {
		t = time.Now().UTC()
		today = utils.FormatDate(t)
	}
	return Model{
		loader:    loader,
		saver:     saver,
		weekStart: calendar.ParseWeekStart(settings.WeekStart),
		today:     today,
		state:     StateMonth,
		year:      t.Year(),
		month:     t.Month(),
		selected:  today,
		loading:   true,
		summaries: map[string]calendar.DaySummary{},
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadMonth()
}

func (m Model) loadMonth() tea.Cmd {
	loader, year, month := m.loader, m.year, m.month
	return func() tea.Msg {
		days, err := loader.BuildMonth(context.Background(), year, month)
		return monthLoadedMsg{year: year, month: month, days: days, err: err}
	}
}

func (m Model) saveMood(mood models.Mood) tea.Cmd {
	saver := m.saver
	return func() tea.Msg {
		return moodSavedMsg{err: saver.SaveMood(context.Background(), mood)}
	}
}

// Selected returns the highlighted date.
func (m Model) Selected() string {
	return m.selected
}

// Month returns the displayed year and month.
func (m Model) Month() (int, time.Month) {
	return m.year, m.month
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateDay:
		return []key.Binding{m.keys.Back, m.keys.Mood, m.keys.Quit}
	default:
		return []key.Binding{m.keys.PrevMonth, m.keys.NextMonth, m.keys.Enter, m.keys.Mood, m.keys.Help, m.keys.Quit}
	}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right},
		{m.keys.PrevMonth, m.keys.NextMonth, m.keys.Today},
		{m.keys.Enter, m.keys.Mood, m.keys.Back, m.keys.Help, m.keys.Quit},
	}
}
