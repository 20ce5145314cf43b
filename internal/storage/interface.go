package storage

import (
	"context"
	"time"

	"github.com/abarbosa/tarefitas/internal/models"
)

// Store defines the durable persistence interface for tasks, routines, and
// their weekday associations. The relational store is the single source of
// truth; the reactive state layer only caches what it reads from here.
type Store interface {
	// Tasks
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	GetTask(ctx context.Context, id string) (models.Task, error)
	GetAllTasks(ctx context.Context) ([]models.Task, error)
	GetTasksByDate(ctx context.Context, date string) ([]models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) error
	ToggleTaskCompletion(ctx context.Context, id string, completed bool) error
	DeleteTask(ctx context.Context, id string) error

	// Routines. The days argument fully replaces the routine_days rows on
	// every write; routine row and day rows are written atomically.
	CreateRoutine(ctx context.Context, routine models.Routine, days []time.Weekday) (models.Routine, error)
	GetAllRoutines(ctx context.Context) ([]models.Routine, error)
	GetRoutineByID(ctx context.Context, id string) (models.Routine, error)
	UpdateRoutine(ctx context.Context, routine models.Routine, days []time.Weekday) error
	DeleteRoutine(ctx context.Context, id string) error

	Close() error
}
