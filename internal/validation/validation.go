package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/lifedash/internal/calendar"
	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingEvents     ConflictType = "overlapping_events"
	ConflictEventEndBeforeStart   ConflictType = "event_end_before_start"
	ConflictDuplicateHabitName    ConflictType = "duplicate_habit_name"
	ConflictMissingCompletionDate ConflictType = "missing_completion_date"
	ConflictRatingOutOfRange      ConflictType = "rating_out_of_range"
	ConflictUnknownMediaType      ConflictType = "unknown_media_type"
	ConflictInvalidDateTime       ConflictType = "invalid_datetime"
)

// Conflict represents a detected integrity problem in stored records
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Titles or names involved
	TimeRange   string   // Human-readable time range (if applicable)
	RecordIDs   []string // IDs of records involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Merge appends the conflicts of other.
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks stored records for integrity problems
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabits reports active habits whose names differ only by case or
// surrounding whitespace.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byName := map[string][]models.Habit{}
	var order []string
	for _, h := range habits {
		if h.ArchivedAt != nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(h.Name))
		if key == "" {
			continue
		}
		if _, seen := byName[key]; !seen {
			order = append(order, key)
		}
		byName[key] = append(byName[key], h)
	}

	for _, key := range order {
		group := byName[key]
		if len(group) < 2 {
			continue
		}
		ids := make([]string, len(group))
		for i, h := range group {
			ids[i] = h.ID
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateHabitName,
			Description: fmt.Sprintf("Duplicate habit name: \"%s\" (IDs: %v)", group[0].Name, ids),
			Items:       []string{group[0].Name},
			RecordIDs:   ids,
		})
	}
	return result
}

// ValidateEvents checks event dates and times, and reports timed events that
// overlap on a shared day.
func (v *Validator) ValidateEvents(events []models.Event) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, e := range events {
		if !utils.ValidateDate(e.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Event \"%s\" has invalid date: %s", e.Title, e.Date),
				Items:       []string{e.Title},
				RecordIDs:   []string{e.ID},
			})
			continue
		}
		if e.EndDate != "" {
			if !utils.ValidateDate(e.EndDate) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidDateTime,
					Description: fmt.Sprintf("Event \"%s\" has invalid end date: %s", e.Title, e.EndDate),
					Date:        e.Date,
					Items:       []string{e.Title},
					RecordIDs:   []string{e.ID},
				})
			} else if e.EndDate < e.Date {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictEventEndBeforeStart,
					Description: fmt.Sprintf("Event \"%s\" ends (%s) before it starts (%s)", e.Title, e.EndDate, e.Date),
					Date:        e.Date,
					Items:       []string{e.Title},
					RecordIDs:   []string{e.ID},
				})
			}
		}

		for _, field := range []struct{ name, value string }{
			{"start_time", e.StartTime},
			{"end_time", e.EndTime},
		} {
			if field.value != "" && !isValidTimeFormat(field.value) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidDateTime,
					Description: fmt.Sprintf("Event \"%s\" has invalid %s: %s", e.Title, field.name, field.value),
					Date:        e.Date,
					Items:       []string{e.Title},
					RecordIDs:   []string{e.ID},
				})
			}
		}

		if isTimed(e) && !e.IsMultiDay() {
			start, _ := parseTimeToMinutes(e.StartTime)
			end, _ := parseTimeToMinutes(e.EndTime)
			if end < start {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictEventEndBeforeStart,
					Description: fmt.Sprintf("Event \"%s\" has end time (%s) before start time (%s)", e.Title, e.EndTime, e.StartTime),
					Date:        e.Date,
					Items:       []string{e.Title},
					TimeRange:   fmt.Sprintf("%s-%s", e.StartTime, e.EndTime),
					RecordIDs:   []string{e.ID},
				})
			}
		}
	}

	result.Merge(v.overlappingEvents(events))
	return result
}

// overlappingEvents compares timed single-day events sharing a date.
func (v *Validator) overlappingEvents(events []models.Event) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byDate := map[string][]models.Event{}
	for _, e := range events {
		if isTimed(e) && !e.IsMultiDay() && utils.ValidateDate(e.Date) {
			byDate[e.Date] = append(byDate[e.Date], e)
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, date := range dates {
		day := byDate[date]
		for i := 0; i < len(day); i++ {
			for j := i + 1; j < len(day); j++ {
				a, b := day[i], day[j]
				if !timesOverlap(a.StartTime, a.EndTime, b.StartTime, b.EndTime) {
					continue
				}
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: ConflictOverlappingEvents,
					Description: fmt.Sprintf("Events \"%s\" (%s-%s) and \"%s\" (%s-%s) overlap on %s (%s)",
						a.Title, a.StartTime, a.EndTime, b.Title, b.StartTime, b.EndTime, date, weekday(date)),
					Date:      date,
					Items:     []string{a.Title, b.Title},
					TimeRange: fmt.Sprintf("%s-%s", maxTime(a.StartTime, b.StartTime), minTime(a.EndTime, b.EndTime)),
					RecordIDs: []string{a.ID, b.ID},
				})
			}
		}
	}
	return result
}

// ValidateTasks reports malformed task dates and completed tasks missing a
// completion date.
func (v *Validator) ValidateTasks(tasks []models.Task) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, t := range tasks {
		if t.DueDate != "" && t.DueDay() == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Task \"%s\" has invalid due date: %s", t.Title, t.DueDate),
				Items:       []string{t.Title},
				RecordIDs:   []string{t.ID},
			})
		}
		if t.Completed && t.CompletionDay() == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingCompletionDate,
				Description: fmt.Sprintf("Task \"%s\" is completed but has no valid completion date", t.Title),
				Date:        t.DueDay(),
				Items:       []string{t.Title},
				RecordIDs:   []string{t.ID},
			})
		}
	}
	return result
}

// ValidateMoods reports ratings outside the allowed scale and dates holding
// more than one mood.
func (v *Validator) ValidateMoods(moods []models.Mood) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := map[string]string{}
	for _, m := range moods {
		if m.Rating < constants.MinMoodRating || m.Rating > constants.MaxMoodRating {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictRatingOutOfRange,
				Description: fmt.Sprintf("Mood on %s has rating %d (expected %d-%d)",
					m.Date, m.Rating, constants.MinMoodRating, constants.MaxMoodRating),
				Date:      m.Date,
				RecordIDs: []string{m.ID},
			})
		}
		if first, dup := seen[m.Date]; dup {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("More than one mood recorded on %s", m.Date),
				Date:        m.Date,
				RecordIDs:   []string{first, m.ID},
			})
			continue
		}
		seen[m.Date] = m.ID
	}
	return result
}

// ValidateMedia reports unknown media types and ratings outside 0-10.
func (v *Validator) ValidateMedia(items []models.MediaItem) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, m := range items {
		if !constants.IsValidMediaType(m.Type) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownMediaType,
				Description: fmt.Sprintf("Media \"%s\" has unknown type: %s", m.Title, m.Type),
				Date:        m.CompletedDate,
				Items:       []string{m.Title},
				RecordIDs:   []string{m.ID},
			})
		}
		if m.Rating != nil && (*m.Rating < 0 || *m.Rating > 10) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictRatingOutOfRange,
				Description: fmt.Sprintf("Media \"%s\" has rating %.1f (expected 0-10)", m.Title, *m.Rating),
				Date:        m.CompletedDate,
				Items:       []string{m.Title},
				RecordIDs:   []string{m.ID},
			})
		}
	}
	return result
}

// ValidateCalendar runs every record check over an aggregated range. Records
// spanning several days are checked once.
func (v *Validator) ValidateCalendar(m calendar.DayMap) ValidationResult {
	var (
		events []models.Event
		tasks  []models.Task
		moods  []models.Mood
		media  []models.MediaItem
	)
	seenEvents := map[string]bool{}
	seenTasks := map[string]bool{}

	for _, date := range m.Dates() {
		day := m[date]
		if day.Mood != nil {
			moods = append(moods, *day.Mood)
		}
		media = append(media, day.Media...)
		for _, e := range day.Events {
			if !seenEvents[e.ID] {
				seenEvents[e.ID] = true
				events = append(events, e)
			}
		}
		for _, t := range day.Tasks {
			if !seenTasks[t.ID] {
				seenTasks[t.ID] = true
				tasks = append(tasks, t)
			}
		}
	}

	result := ValidationResult{Conflicts: []Conflict{}}
	result.Merge(v.ValidateEvents(events))
	result.Merge(v.ValidateTasks(tasks))
	result.Merge(v.ValidateMoods(moods))
	result.Merge(v.ValidateMedia(media))
	return result
}

// Helper functions

func isTimed(e models.Event) bool {
	return !e.AllDay && isValidTimeFormat(e.StartTime) && isValidTimeFormat(e.EndTime)
}

func isValidTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

func parseTimeToMinutes(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// timesOverlap checks if two time ranges overlap
// Assumes all times are in HH:MM format
func timesOverlap(start1, end1, start2, end2 string) bool {
	s1, err := parseTimeToMinutes(start1)
	if err != nil {
		return false
	}
	e1, err := parseTimeToMinutes(end1)
	if err != nil {
		return false
	}
	s2, err := parseTimeToMinutes(start2)
	if err != nil {
		return false
	}
	e2, err := parseTimeToMinutes(end2)
	if err != nil {
		return false
	}

	// Two ranges overlap if: start1 < end2 AND start2 < end1
	return s1 < e2 && s2 < e1
}

// HH:MM strings order lexically
func maxTime(a, b string) string {
	if a > b {
		return a
	}
	return b
}

func minTime(a, b string) string {
	if a < b {
		return a
	}
	return b
}

func weekday(date string) string {
	t, err := utils.ParseDate(date)
	if err != nil {
		return ""
	}
	return t.Format("Mon")
}

// AutoFixDuplicateHabits archives all but the oldest habit of each duplicate
// group. Returns a slice of FixActions describing what was fixed.
func AutoFixDuplicateHabits(conflicts []Conflict, habits []models.Habit, archiveFunc func(id string) error) []FixAction {
	actions := []FixAction{}

	habitMap := make(map[string]models.Habit)
	for _, h := range habits {
		habitMap[h.ID] = h
	}

	for _, conflict := range conflicts {
		if conflict.Type != ConflictDuplicateHabitName {
			continue
		}

		var group []models.Habit
		for _, id := range conflict.RecordIDs {
			if h, ok := habitMap[id]; ok && h.ArchivedAt == nil {
				group = append(group, h)
			}
		}
		if len(group) <= 1 {
			continue
		}

		// Oldest first; ID breaks ties so reruns pick the same survivor.
		sort.Slice(group, func(i, j int) bool {
			if !group[i].CreatedAt.Equal(group[j].CreatedAt) {
				return group[i].CreatedAt.Before(group[j].CreatedAt)
			}
			return group[i].ID < group[j].ID
		})

		keep := group[0]
		var archivedIDs, failedIDs []string
		for _, h := range group[1:] {
			if err := archiveFunc(h.ID); err != nil {
				failedIDs = append(failedIDs, h.ID)
				continue
			}
			archivedIDs = append(archivedIDs, h.ID)
		}

		if len(archivedIDs) > 0 {
			msg := fmt.Sprintf("Archived %d duplicate habit(s) named \"%s\" (kept ID: %s, archived: %v)", len(archivedIDs), keep.Name, keep.ID, archivedIDs)
			if len(failedIDs) > 0 {
				msg += fmt.Sprintf(" (failed to archive: %v)", failedIDs)
			}
			actions = append(actions, FixAction{Action: msg, SourceConflict: conflict})
		} else if len(failedIDs) > 0 {
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to archive duplicates for \"%s\": %v", keep.Name, failedIDs),
				SourceConflict: conflict,
			})
		}
	}

	return actions
}
