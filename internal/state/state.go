package state

import (
	"context"
	"strings"
	"sync"
	"time"

	apperrors "github.com/abarbosa/tarefitas/internal/errors"
	"github.com/abarbosa/tarefitas/internal/models"
	"github.com/abarbosa/tarefitas/internal/storage"
	"github.com/abarbosa/tarefitas/internal/utils"
	"github.com/abarbosa/tarefitas/internal/validation"
)

// Snapshot is a read-only copy of the cached collections handed to
// subscribers and derived views.
type Snapshot struct {
	Tasks    []models.Task
	Routines []models.Routine
}

// Progress summarizes completion over a task list.
type Progress struct {
	Completed int
	Total     int
	Percent   float64
}

// Store is the reactive state layer: it owns in-memory mirrors of the
// persisted collections, applies mutations through the relational store
// first, and republishes the collections to subscribers after every change.
// The relational store stays the source of truth; the mirrors are a cache
// rebuilt after each mutation.
//
// All methods are safe for concurrent use; the mutex guards the
// read-modify-write paths (toggle in particular) against lost updates.
type Store struct {
	mu sync.Mutex
	db storage.Store

	tasks    []models.Task
	routines []models.Routine

	subs    map[int]func(Snapshot)
	nextSub int
}

// New builds a state store backed by db and populates the collections.
func New(ctx context.Context, db storage.Store) (*Store, error) {
	s := &Store{
		db:   db,
		subs: make(map[int]func(Snapshot)),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refreshLocked(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) refreshLocked(ctx context.Context) error {
	tasks, err := s.db.GetAllTasks(ctx)
	if err != nil {
		return err
	}
	routines, err := s.db.GetAllRoutines(ctx)
	if err != nil {
		return err
	}
	s.tasks = tasks
	s.routines = routines
	return nil
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Tasks:    append([]models.Task(nil), s.tasks...),
		Routines: append([]models.Routine(nil), s.routines...),
	}
}

func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	for _, fn := range s.subs {
		fn(snap)
	}
}

// Subscribe registers fn to be called with a fresh snapshot after every
// mutation. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Tasks returns a copy of the cached task collection.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Task(nil), s.tasks...)
}

// Routines returns a copy of the cached routine collection.
func (s *Store) Routines() []models.Routine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Routine(nil), s.routines...)
}

// CreateTask validates and persists a new task, then republishes.
func (s *Store) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	if err := validation.ValidateTask(task); err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.db.CreateTask(ctx, task)
	if err != nil {
		return models.Task{}, err
	}
	if err := s.refreshLocked(ctx); err != nil {
		return models.Task{}, err
	}
	s.notifyLocked()
	return stored, nil
}

// UpdateTask validates and overwrites a stored task, then republishes.
func (s *Store) UpdateTask(ctx context.Context, task models.Task) error {
	if err := validation.ValidateTask(task); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.UpdateTask(ctx, task); err != nil {
		return err
	}
	if err := s.refreshLocked(ctx); err != nil {
		return err
	}
	s.notifyLocked()
	return nil
}

// DeleteTask removes a stored task, then republishes.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.DeleteTask(ctx, id); err != nil {
		return err
	}
	if err := s.refreshLocked(ctx); err != nil {
		return err
	}
	s.notifyLocked()
	return nil
}

// ToggleTaskCompletion flips the completed flag of the task with the given
// id. An id not present in the collection is a no-op. The in-memory update is
// applied only after the durable write succeeds, so cache and store always
// agree on the flag afterwards.
func (s *Store) ToggleTaskCompletion(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	next := !s.tasks[idx].Completed
	if err := s.db.ToggleTaskCompletion(ctx, id, next); err != nil {
		return err
	}

	s.tasks[idx].Completed = next
	s.tasks[idx].UpdatedAt = utils.Now()
	s.notifyLocked()
	return nil
}

// CreateRoutine validates and persists a new routine with its weekday set,
// then republishes.
func (s *Store) CreateRoutine(ctx context.Context, routine models.Routine, days []time.Weekday) (models.Routine, error) {
	routine.Days = days
	if err := validation.ValidateRoutine(routine); err != nil {
		return models.Routine{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.db.CreateRoutine(ctx, routine, days)
	if err != nil {
		return models.Routine{}, err
	}
	if err := s.refreshLocked(ctx); err != nil {
		return models.Routine{}, err
	}
	s.notifyLocked()
	return stored, nil
}

// UpdateRoutine validates and overwrites a routine and its weekday set, then
// republishes.
func (s *Store) UpdateRoutine(ctx context.Context, routine models.Routine, days []time.Weekday) error {
	routine.Days = days
	if err := validation.ValidateRoutine(routine); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.UpdateRoutine(ctx, routine, days); err != nil {
		return err
	}
	if err := s.refreshLocked(ctx); err != nil {
		return err
	}
	s.notifyLocked()
	return nil
}

// DeleteRoutine removes a routine. Its routine_days rows cascade away and
// every linked task has its routine link cleared; the refreshed collections
// reflect both.
func (s *Store) DeleteRoutine(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.DeleteRoutine(ctx, id); err != nil {
		return err
	}
	if err := s.refreshLocked(ctx); err != nil {
		return err
	}
	s.notifyLocked()
	return nil
}

// TasksForDate returns the effective task list for a date, including
// synthesized routine occurrences.
func (s *Store) TasksForDate(ctx context.Context, date string) ([]models.Task, error) {
	return s.db.GetTasksByDate(ctx, date)
}

// PromoteOccurrence persists a synthesized routine occurrence as a stored
// task, assigning it a durable identity. This is the explicit transition a
// synthesized task must make before any mutation (such as completion) can
// apply to it.
func (s *Store) PromoteOccurrence(ctx context.Context, task models.Task) (models.Task, error) {
	if !task.FromRoutine() {
		return models.Task{}, apperrors.Validation("routine_id", "only routine occurrences can be promoted")
	}
	return s.CreateTask(ctx, task)
}

// FilterTasks returns tasks whose title or description contains the query as
// a case-insensitive substring. An empty query returns all tasks.
func (s *Store) FilterTasks(query string) []models.Task {
	return Filter(s.Tasks(), query)
}

// TodayTasks returns tasks dated today (device-local).
func (s *Store) TodayTasks() []models.Task {
	today := utils.Today()
	var out []models.Task
	for _, t := range s.Tasks() {
		if t.Date == today {
			out = append(out, t)
		}
	}
	return out
}

// ActiveRoutines returns routines with is_active set.
func (s *Store) ActiveRoutines() []models.Routine {
	var out []models.Routine
	for _, r := range s.Routines() {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out
}

// Filter applies the search contract to an arbitrary task list.
func Filter(tasks []models.Task, query string) []models.Task {
	if query == "" {
		return tasks
	}
	q := strings.ToLower(query)
	var out []models.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}

// Summarize computes the completion aggregate for a task list. The percentage
// is 0 for an empty list, never a division error.
func Summarize(tasks []models.Task) Progress {
	p := Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = float64(p.Completed) / float64(p.Total) * 100
	}
	return p
}
