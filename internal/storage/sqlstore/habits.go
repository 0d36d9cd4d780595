package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/lifedash/internal/models"
)

func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	var createdAt string
	var archivedAt sql.NullString
	if err := row.Scan(&h.ID, &h.Name, &createdAt, &archivedAt); err != nil {
		return models.Habit{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("parsing habit created_at: %w", err)
	}
	h.CreatedAt = t
	if archivedAt.Valid && archivedAt.String != "" {
		at, err := time.Parse(time.RFC3339Nano, archivedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("parsing habit archived_at: %w", err)
		}
		h.ArchivedAt = &at
	}
	return h, nil
}

func (s *Store) AddHabit(ctx context.Context, habit models.Habit) error {
	ensureID(&habit.ID)
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = time.Now()
	}
	_, err := s.exec(ctx, "INSERT INTO habits (id, name, created_at) VALUES (?, ?, ?)",
		habit.ID, habit.Name, habit.CreatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

func (s *Store) GetHabitByName(ctx context.Context, name string) (models.Habit, error) {
	row, err := s.queryRow(ctx, "SELECT id, name, created_at, archived_at FROM habits WHERE name = ?", name)
	if err != nil {
		return models.Habit{}, err
	}
	h, err := scanHabit(row)
	if err != nil {
		return models.Habit{}, notFound(err)
	}
	return h, nil
}

func (s *Store) GetAllHabits(ctx context.Context, includeArchived bool) ([]models.Habit, error) {
	query := "SELECT id, name, created_at, archived_at FROM habits"
	if !includeArchived {
		query += " WHERE archived_at IS NULL"
	}
	return list(ctx, s, scanHabit, query+" ORDER BY name")
}

func (s *Store) ArchiveHabit(ctx context.Context, id string) error {
	return s.execOne(ctx, "UPDATE habits SET archived_at = ? WHERE id = ? AND archived_at IS NULL", now(), id)
}

// AddHabitCompletion marks a habit done for a date. Marking it again updates the note.
func (s *Store) AddHabitCompletion(ctx context.Context, completion models.HabitCompletion) error {
	ensureID(&completion.ID)
	_, err := s.exec(ctx, `
		INSERT INTO habit_completions (id, habit_id, date, note, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (habit_id, date) DO UPDATE SET note = excluded.note`,
		completion.ID, completion.HabitID, completion.Date, completion.Note, now())
	return err
}

func (s *Store) GetHabitCompletionsInRange(ctx context.Context, start, end string) ([]models.HabitCompletion, error) {
	return list(ctx, s, func(row scanner) (models.HabitCompletion, error) {
		var c models.HabitCompletion
		err := row.Scan(&c.ID, &c.HabitID, &c.HabitName, &c.Date, &c.Note)
		return c, err
	}, `
		SELECT hc.id, hc.habit_id, h.name, hc.date, hc.note
		FROM habit_completions hc JOIN habits h ON h.id = hc.habit_id
		WHERE hc.date >= ? AND hc.date <= ?
		ORDER BY hc.date, hc.created_at`,
		start, end)
}
