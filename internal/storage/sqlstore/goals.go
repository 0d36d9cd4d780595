package sqlstore

import (
	"context"

	"github.com/julianstephens/lifedash/internal/models"
)

const goalColumns = "id, title, description, target_date, completed, completed_date"

func scanGoal(row scanner) (models.Goal, error) {
	var g models.Goal
	err := row.Scan(&g.ID, &g.Title, &g.Description, &g.TargetDate, &g.Completed, &g.CompletedDate)
	return g, err
}

func scanMilestone(row scanner) (models.Milestone, error) {
	var m models.Milestone
	err := row.Scan(&m.ID, &m.GoalID, &m.Title, &m.Completed, &m.CompletedDate, &m.Position)
	return m, err
}

func (s *Store) AddGoal(ctx context.Context, goal models.Goal) error {
	ensureID(&goal.ID)
	_, err := s.exec(ctx, `
		INSERT INTO goals (id, title, description, target_date, completed, completed_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.Title, goal.Description, goal.TargetDate, goal.Completed, goal.CompletedDate, now())
	return err
}

func (s *Store) GetGoal(ctx context.Context, id string) (models.Goal, error) {
	row, err := s.queryRow(ctx, "SELECT "+goalColumns+" FROM goals WHERE id = ?", id)
	if err != nil {
		return models.Goal{}, err
	}
	g, err := scanGoal(row)
	if err != nil {
		return models.Goal{}, notFound(err)
	}
	return g, nil
}

func (s *Store) CompleteGoal(ctx context.Context, id string, completedDate string) error {
	return s.execOne(ctx, "UPDATE goals SET completed = ?, completed_date = ? WHERE id = ?", true, completedDate, id)
}

// GetGoalsCompletedInRange returns completed goals whose completion date is in range.
func (s *Store) GetGoalsCompletedInRange(ctx context.Context, start, end string) ([]models.Goal, error) {
	return list(ctx, s, scanGoal, `
		SELECT `+goalColumns+` FROM goals
		WHERE completed = ? AND substr(completed_date, 1, 10) >= ? AND substr(completed_date, 1, 10) <= ?
		ORDER BY completed_date, created_at`,
		true, start, end)
}

func (s *Store) AddMilestone(ctx context.Context, milestone models.Milestone) error {
	ensureID(&milestone.ID)
	_, err := s.exec(ctx, `
		INSERT INTO milestones (id, goal_id, title, completed, completed_date, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		milestone.ID, milestone.GoalID, milestone.Title, milestone.Completed, milestone.CompletedDate,
		milestone.Position, now())
	return err
}

func (s *Store) GetMilestones(ctx context.Context, goalID string) ([]models.Milestone, error) {
	return list(ctx, s, scanMilestone, `
		SELECT id, goal_id, title, completed, completed_date, position FROM milestones
		WHERE goal_id = ? ORDER BY position, created_at`,
		goalID)
}
