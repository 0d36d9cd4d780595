// Package memory is a Provider kept in process memory, optionally persisted
// as a single JSON document. Tests use it as a fake; a .json config path
// selects it as a lightweight file backend.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifedash/internal/errors"
	"github.com/julianstephens/lifedash/internal/models"
)

const schemaVersion = 1

type snapshot struct {
	Version           int                       `json:"version"`
	Settings          models.Settings           `json:"settings"`
	Moods             []models.Mood             `json:"moods"`
	Activities        []models.Activity         `json:"activities"`
	Media             []models.MediaItem        `json:"media"`
	Tasks             []models.Task             `json:"tasks"`
	Events            []models.Event            `json:"events"`
	Parks             []models.Park             `json:"parks"`
	Journals          []models.Journal          `json:"journals"`
	Goals             []models.Goal             `json:"goals"`
	Milestones        []models.Milestone        `json:"milestones"`
	Habits            []models.Habit            `json:"habits"`
	HabitCompletions  []models.HabitCompletion  `json:"habit_completions"`
	GithubEvents      []models.GithubEvent      `json:"github_events"`
	RelationshipItems []models.RelationshipItem `json:"relationship_items"`
	Meals             []models.Meal             `json:"meals"`
	Duolingo          []models.DuolingoDay      `json:"duolingo"`
}

type Store struct {
	mu       sync.Mutex
	path     string
	data     *snapshot
	failures map[string]error
	calls    map[string]int
}

// New returns an empty, ready to use store that is never written to disk.
func New() *Store {
	s := &Store{}
	s.reset()
	return s
}

// NewFileStore returns a store persisted to path as JSON.
func NewFileStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) reset() {
	settings := models.Settings{}
	models.ApplyDefaultSettings(&settings)
	s.data = &snapshot{Version: schemaVersion, Settings: settings}
}

// FailOn makes every later call to method return err.
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures == nil {
		s.failures = map[string]error{}
	}
	s.failures[method] = err
}

// Calls returns how many times method was invoked.
func (s *Store) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// TotalCalls returns the number of data method invocations.
func (s *Store) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// enter locks the store and records the call. Callers must unlock.
func (s *Store) enter(ctx context.Context, method string) error {
	s.mu.Lock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[method]++
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.data == nil {
		return errors.ErrNotInitialized
	}
	if err := s.failures[method]; err != nil {
		return err
	}
	return nil
}

func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		if s.data == nil {
			s.reset()
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return s.read()
	}
	s.reset()
	return s.save()
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data != nil {
		return nil
	}
	if s.path == "" {
		s.reset()
		return nil
	}
	return s.read()
}

func (s *Store) read() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}
	snap := &snapshot{}
	if err := json.Unmarshal(raw, snap); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if snap.Version > schemaVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade the application", snap.Version, schemaVersion)
	}
	models.ApplyDefaultSettings(&snap.Settings)
	s.data = snap
	return nil
}

// save writes the snapshot when the store is file backed. Callers hold mu.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) GetConfigPath() string {
	if s.path == "" {
		return "memory"
	}
	return s.path
}

func (s *Store) Migrate(logFn func(string)) (int, error) {
	if logFn != nil {
		logFn(fmt.Sprintf("Database schema is up to date (version %d)", schemaVersion))
	}
	return 0, nil
}

func (s *Store) SchemaVersion() (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return 0, schemaVersion, errors.ErrNotInitialized
	}
	return s.data.Version, schemaVersion, nil
}

func (s *Store) GetSettings(ctx context.Context) (models.Settings, error) {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "GetSettings"); err != nil {
		return models.Settings{}, err
	}
	return s.data.Settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) error {
	defer s.mu.Unlock()
	if err := s.enter(ctx, "SaveSettings"); err != nil {
		return err
	}
	models.ApplyDefaultSettings(&settings)
	s.data.Settings = settings
	return s.save()
}

func newID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}

func inRange(date, start, end string) bool {
	return date != "" && date >= start && date <= end
}

// filter returns the items whose date (as reported by day) is in range,
// stably sorted by that date. The result is never nil.
func filter[T any](items []T, start, end string, day func(T) string) []T {
	out := []T{}
	for _, item := range items {
		if inRange(day(item), start, end) {
			out = append(out, item)
		}
	}
	return sorted(out, day)
}

// sorted returns a stably sorted copy of items. Insertion order breaks ties.
func sorted[T any](items []T, key func(T) string) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) < key(out[j])
	})
	return out
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
