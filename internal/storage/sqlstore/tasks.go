package sqlstore

import (
	"context"

	"github.com/julianstephens/lifedash/internal/models"
)

const taskColumns = "id, title, notes, due_date, completed, completed_date, priority, created_at"

func scanTask(row scanner) (models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.Title, &t.Notes, &t.DueDate, &t.Completed, &t.CompletedDate, &t.Priority, &t.CreatedAt)
	return t, err
}

func (s *Store) AddTask(ctx context.Context, task models.Task) error {
	ensureID(&task.ID)
	if task.CreatedAt == "" {
		task.CreatedAt = now()
	}
	_, err := s.exec(ctx, `
		INSERT INTO tasks (id, title, notes, due_date, completed, completed_date, priority, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Notes, task.DueDate, task.Completed, task.CompletedDate, task.Priority, task.CreatedAt)
	return err
}

func (s *Store) GetTask(ctx context.Context, id string) (models.Task, error) {
	row, err := s.queryRow(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	if err != nil {
		return models.Task{}, err
	}
	t, err := scanTask(row)
	if err != nil {
		return models.Task{}, notFound(err)
	}
	return t, nil
}

func (s *Store) CompleteTask(ctx context.Context, id string, completedDate string) error {
	return s.execOne(ctx, "UPDATE tasks SET completed = ?, completed_date = ? WHERE id = ?", true, completedDate, id)
}

// GetTasksInRange returns tasks due in the range plus completed tasks whose
// completion date is in the range. Only the date portion of either column is
// compared.
func (s *Store) GetTasksInRange(ctx context.Context, start, end string) ([]models.Task, error) {
	return list(ctx, s, scanTask, `
		SELECT `+taskColumns+` FROM tasks
		WHERE (substr(due_date, 1, 10) >= ? AND substr(due_date, 1, 10) <= ?)
		   OR (completed = ? AND substr(completed_date, 1, 10) >= ? AND substr(completed_date, 1, 10) <= ?)
		ORDER BY due_date, created_at`,
		start, end, true, start, end)
}
