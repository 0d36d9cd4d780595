package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/lifedash/internal/errors"
	"github.com/julianstephens/lifedash/internal/models"
	"github.com/julianstephens/lifedash/internal/utils"
)

func (s *Store) SaveMood(ctx context.Context, mood models.Mood) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "SaveMood"); err != nil {
		return err
	}
	for i, m := range s.data.Moods {
		if m.Date == mood.Date {
			mood.ID = m.ID
			s.data.Moods[i] = mood
			return s.save()
		}
	}
	mood.ID = newID(mood.ID)
	s.data.Moods = append(s.data.Moods, mood)
	return s.save()
}

func (s *Store) DeleteMood(ctx context.Context, date string) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "DeleteMood"); err != nil {
		return err
	}
	for i, m := range s.data.Moods {
		if m.Date == date {
			s.data.Moods = append(s.data.Moods[:i], s.data.Moods[i+1:]...)
			return s.save()
		}
	}
	return errors.ErrNotFound
}

func (s *Store) GetMoodsInRange(ctx context.Context, start, end string) ([]models.Mood, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetMoodsInRange"); err != nil {
		return nil, err
	}
	return filter(s.data.Moods, start, end, func(m models.Mood) string { return m.Date }), nil
}

func (s *Store) GetAllMoods(ctx context.Context) ([]models.Mood, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetAllMoods"); err != nil {
		return nil, err
	}
	return sorted(s.data.Moods, func(m models.Mood) string { return m.Date }), nil
}

func (s *Store) AddTask(ctx context.Context, task models.Task) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "AddTask"); err != nil {
		return err
	}
	task.ID = newID(task.ID)
	if task.CreatedAt == "" {
		task.CreatedAt = nowRFC3339()
	}
	s.data.Tasks = append(s.data.Tasks, task)
	return s.save()
}

func (s *Store) GetTask(ctx context.Context, id string) (models.Task, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetTask"); err != nil {
		return models.Task{}, err
	}
	for _, t := range s.data.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, errors.ErrNotFound
}

func (s *Store) CompleteTask(ctx context.Context, id string, completedDate string) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "CompleteTask"); err != nil {
		return err
	}
	for i := range s.data.Tasks {
		if s.data.Tasks[i].ID == id {
			s.data.Tasks[i].Completed = true
			s.data.Tasks[i].CompletedDate = completedDate
			return s.save()
		}
	}
	return errors.ErrNotFound
}

// GetTasksInRange returns tasks due in range or completed in range, ordered by due date.
func (s *Store) GetTasksInRange(ctx context.Context, start, end string) ([]models.Task, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetTasksInRange"); err != nil {
		return nil, err
	}
	matched := []models.Task{}
	for _, t := range s.data.Tasks {
		if inRange(t.DueDay(), start, end) || inRange(t.CompletionDay(), start, end) {
			matched = append(matched, t)
		}
	}
	return sorted(matched, func(t models.Task) string { return t.DueDate }), nil
}

func (s *Store) AddEvent(ctx context.Context, event models.Event) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "AddEvent"); err != nil {
		return err
	}
	event.ID = newID(event.ID)
	s.data.Events = append(s.data.Events, event)
	return s.save()
}

// GetEventsInRange returns events overlapping the range.
func (s *Store) GetEventsInRange(ctx context.Context, start, end string) ([]models.Event, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetEventsInRange"); err != nil {
		return nil, err
	}
	matched := []models.Event{}
	for _, e := range s.data.Events {
		last := e.EndDate
		if last == "" {
			last = e.Date
		}
		if e.Date <= end && last >= start {
			matched = append(matched, e)
		}
	}
	return sorted(matched, func(e models.Event) string { return e.Date }), nil
}

func (s *Store) AddMedia(ctx context.Context, item models.MediaItem) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "AddMedia"); err != nil {
		return err
	}
	item.ID = newID(item.ID)
	if item.Genres == nil {
		item.Genres = []string{}
	}
	s.data.Media = append(s.data.Media, item)
	return s.save()
}

func (s *Store) GetMediaInRange(ctx context.Context, start, end string) ([]models.MediaItem, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetMediaInRange"); err != nil {
		return nil, err
	}
	return filter(s.data.Media, start, end, func(m models.MediaItem) string { return m.CompletedDate }), nil
}

func (s *Store) GetAllMedia(ctx context.Context) ([]models.MediaItem, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetAllMedia"); err != nil {
		return nil, err
	}
	return sorted(s.data.Media, func(m models.MediaItem) string { return m.CompletedDate }), nil
}

func (s *Store) AddActivity(ctx context.Context, activity models.Activity) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "AddActivity"); err != nil {
		return err
	}
	activity.ID = newID(activity.ID)
	if activity.Exercises == nil {
		activity.Exercises = []string{}
	}
	s.data.Activities = append(s.data.Activities, activity)
	return s.save()
}

func (s *Store) GetActivitiesInRange(ctx context.Context, start, end string) ([]models.Activity, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetActivitiesInRange"); err != nil {
		return nil, err
	}
	return filter(s.data.Activities, start, end, func(a models.Activity) string { return utils.DatePart(a.StartTime) }), nil
}

func (s *Store) AddPark(ctx context.Context, park models.Park) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "AddPark"); err != nil {
		return err
	}
	park.ID = newID(park.ID)
	s.data.Parks = append(s.data.Parks, park)
	return s.save()
}

func (s *Store) GetParksInRange(ctx context.Context, start, end string) ([]models.Park, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetParksInRange"); err != nil {
		return nil, err
	}
	return filter(s.data.Parks, start, end, func(p models.Park) string { return p.Date }), nil
}

func (s *Store) AddJournal(ctx context.Context, journal models.Journal) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "AddJournal"); err != nil {
		return err
	}
	journal.ID = newID(journal.ID)
	if journal.Tags == nil {
		journal.Tags = []string{}
	}
	s.data.Journals = append(s.data.Journals, journal)
	return s.save()
}

func (s *Store) GetJournalsInRange(ctx context.Context, start, end string) ([]models.Journal, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetJournalsInRange"); err != nil {
		return nil, err
	}
	return filter(s.data.Journals, start, end, func(j models.Journal) string { return j.Date }), nil
}

func (s *Store) AddGoal(ctx context.Context, goal models.Goal) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "AddGoal"); err != nil {
		return err
	}
	goal.ID = newID(goal.ID)
	s.data.Goals = append(s.data.Goals, goal)
	return s.save()
}

func (s *Store) GetGoal(ctx context.Context, id string) (models.Goal, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetGoal"); err != nil {
		return models.Goal{}, err
	}
	for _, g := range s.data.Goals {
		if g.ID == id {
			return g, nil
		}
	}
	return models.Goal{}, errors.ErrNotFound
}

func (s *Store) CompleteGoal(ctx context.Context, id string, completedDate string) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "CompleteGoal"); err != nil {
		return err
	}
	for i := range s.data.Goals {
		if s.data.Goals[i].ID == id {
			s.data.Goals[i].Completed = true
			s.data.Goals[i].CompletedDate = completedDate
			return s.save()
		}
	}
	return errors.ErrNotFound
}

func (s *Store) GetGoalsCompletedInRange(ctx context.Context, start, end string) ([]models.Goal, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetGoalsCompletedInRange"); err != nil {
		return nil, err
	}
	return filter(s.data.Goals, start, end, func(g models.Goal) string {
		if !g.Completed {
			return ""
		}
		return utils.DatePart(g.CompletedDate)
	}), nil
}

func (s *Store) AddMilestone(ctx context.Context, milestone models.Milestone) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "AddMilestone"); err != nil {
		return err
	}
	milestone.ID = newID(milestone.ID)
	s.data.Milestones = append(s.data.Milestones, milestone)
	return s.save()
}

func (s *Store) GetMilestones(ctx context.Context, goalID string) ([]models.Milestone, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetMilestones"); err != nil {
		return nil, err
	}
	out := []models.Milestone{}
	for _, m := range s.data.Milestones {
		if m.GoalID == goalID {
			out = append(out, m)
		}
	}
	return sorted(out, func(m models.Milestone) string { return fmt.Sprintf("%010d", m.Position) }), nil
}

func (s *Store) AddHabit(ctx context.Context, habit models.Habit) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "AddHabit"); err != nil {
		return err
	}
	for _, h := range s.data.Habits {
		if h.Name == habit.Name {
			return fmt.Errorf("habit %q already exists", habit.Name)
		}
	}
	habit.ID = newID(habit.ID)
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = time.Now()
	}
	s.data.Habits = append(s.data.Habits, habit)
	return s.save()
}

func (s *Store) GetHabitByName(ctx context.Context, name string) (models.Habit, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetHabitByName"); err != nil {
		return models.Habit{}, err
	}
	for _, h := range s.data.Habits {
		if h.Name == name {
			return h, nil
		}
	}
	return models.Habit{}, errors.ErrNotFound
}

func (s *Store) GetAllHabits(ctx context.Context, includeArchived bool) ([]models.Habit, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetAllHabits"); err != nil {
		return nil, err
	}
	out := []models.Habit{}
	for _, h := range s.data.Habits {
		if includeArchived || h.ArchivedAt == nil {
			out = append(out, h)
		}
	}
	return sorted(out, func(h models.Habit) string { return h.Name }), nil
}

func (s *Store) ArchiveHabit(ctx context.Context, id string) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "ArchiveHabit"); err != nil {
		return err
	}
	for i := range s.data.Habits {
		if s.data.Habits[i].ID == id && s.data.Habits[i].ArchivedAt == nil {
			now := time.Now()
			s.data.Habits[i].ArchivedAt = &now
			return s.save()
		}
	}
	return errors.ErrNotFound
}

func (s *Store) AddHabitCompletion(ctx context.Context, completion models.HabitCompletion) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "AddHabitCompletion"); err != nil {
		return err
	}
	for _, h := range s.data.Habits {
		if h.ID == completion.HabitID {
			completion.HabitName = h.Name
		}
	}
	for i, c := range s.data.HabitCompletions {
		if c.HabitID == completion.HabitID && c.Date == completion.Date {
			s.data.HabitCompletions[i].Note = completion.Note
			return s.save()
		}
	}
	completion.ID = newID(completion.ID)
	s.data.HabitCompletions = append(s.data.HabitCompletions, completion)
	return s.save()
}

func (s *Store) GetHabitCompletionsInRange(ctx context.Context, start, end string) ([]models.HabitCompletion, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetHabitCompletionsInRange"); err != nil {
		return nil, err
	}
	return filter(s.data.HabitCompletions, start, end, func(c models.HabitCompletion) string { return c.Date }), nil
}

func (s *Store) AddGithubEvent(ctx context.Context, event models.GithubEvent) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "AddGithubEvent"); err != nil {
		return err
	}
	event.ID = newID(event.ID)
	if event.CreatedAt == "" {
		event.CreatedAt = nowRFC3339()
	}
	s.data.GithubEvents = append(s.data.GithubEvents, event)
	return s.save()
}

func (s *Store) GetGithubEventsInRange(ctx context.Context, start, end string) ([]models.GithubEvent, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetGithubEventsInRange"); err != nil {
		return nil, err
	}
	return filter(s.data.GithubEvents, start, end, func(g models.GithubEvent) string { return utils.DatePart(g.CreatedAt) }), nil
}

func (s *Store) AddRelationshipItem(ctx context.Context, item models.RelationshipItem) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "AddRelationshipItem"); err != nil {
		return err
	}
	item.ID = newID(item.ID)
	s.data.RelationshipItems = append(s.data.RelationshipItems, item)
	return s.save()
}

func (s *Store) GetRelationshipItemsInRange(ctx context.Context, start, end string) ([]models.RelationshipItem, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetRelationshipItemsInRange"); err != nil {
		return nil, err
	}
	return filter(s.data.RelationshipItems, start, end, func(r models.RelationshipItem) string { return r.Date }), nil
}

func (s *Store) AddMeal(ctx context.Context, meal models.Meal) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "AddMeal"); err != nil {
		return err
	}
	meal.ID = newID(meal.ID)
	s.data.Meals = append(s.data.Meals, meal)
	return s.save()
}

func (s *Store) GetMealsInRange(ctx context.Context, start, end string) ([]models.Meal, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetMealsInRange"); err != nil {
		return nil, err
	}
	return filter(s.data.Meals, start, end, func(m models.Meal) string { return m.Date }), nil
}

func (s *Store) SaveDuolingoDay(ctx context.Context, day models.DuolingoDay) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "SaveDuolingoDay"); err != nil {
		return err
	}
	for i, d := range s.data.Duolingo {
		if d.Date == day.Date {
			day.ID = d.ID
			s.data.Duolingo[i] = day
			return s.save()
		}
	}
	day.ID = newID(day.ID)
	s.data.Duolingo = append(s.data.Duolingo, day)
	return s.save()
}

func (s *Store) GetDuolingoInRange(ctx context.Context, start, end string) ([]models.DuolingoDay, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetDuolingoInRange"); err != nil {
		return nil, err
	}
	return filter(s.data.Duolingo, start, end, func(d models.DuolingoDay) string { return d.Date }), nil
}
