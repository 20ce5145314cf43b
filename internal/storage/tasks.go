package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	apperrors "github.com/abarbosa/tarefitas/internal/errors"
	"github.com/abarbosa/tarefitas/internal/logger"
	"github.com/abarbosa/tarefitas/internal/models"
	"github.com/abarbosa/tarefitas/internal/schedule"
	"github.com/abarbosa/tarefitas/internal/utils"
)

const taskColumns = `id, title, description, completed, date, time, priority, duration,
	time_of_day, visual_aid, color, routine_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var description, timeVal, priority, timeOfDay, visualAid, color sql.NullString
	var duration sql.NullInt64

	err := row.Scan(
		&t.ID, &t.Title, &description, &t.Completed, &t.Date, &timeVal, &priority, &duration,
		&timeOfDay, &visualAid, &color, &t.RoutineID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return models.Task{}, err
	}

	t.Description = description.String
	t.Time = timeVal.String
	t.Priority = models.Priority(priority.String)
	t.Duration = int(duration.Int64)
	t.TimeOfDay = models.TimeOfDay(timeOfDay.String)
	t.VisualAid = visualAid.String
	t.Color = color.String
	return t, nil
}

// CreateTask assigns a fresh id and timestamps, persists the task, and returns
// the stored value including the server-assigned fields.
func (s *SQLiteStore) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return models.Task{}, apperrors.Validation("title", "must not be empty")
	}

	task.ID = utils.NewID()
	now := utils.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, nullStr(task.Description), task.Completed, task.Date,
		nullStr(task.Time), nullStr(string(task.Priority)), nullInt(task.Duration),
		nullStr(string(task.TimeOfDay)), nullStr(task.VisualAid), nullStr(task.Color),
		task.RoutineID, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		logger.Error("Failed to create task", "id", task.ID, "error", err)
		return models.Task{}, apperrors.Storage("creating task", err)
	}
	return task, nil
}

// GetTask retrieves a single stored task by id.
func (s *SQLiteStore) GetTask(ctx context.Context, id string) (models.Task, error) {
	row := s.db.QueryRowxContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, apperrors.NotFound("task", id)
		}
		return models.Task{}, apperrors.Storage("getting task", err)
	}
	return t, nil
}

// GetAllTasks returns every stored task ordered by date, then time, with
// untimed tasks last within a date grouped by title.
func (s *SQLiteStore) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		ORDER BY date, time IS NULL, time, title`)
	if err != nil {
		logger.Error("Failed to list tasks", "error", err)
		return nil, apperrors.Storage("listing tasks", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, apperrors.Storage("scanning task", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTasksByDate returns the effective task list for a date: stored tasks
// whose date matches, merged with synthesized occurrences of active routines
// scheduled on that date's weekday that have no stored task for the date yet.
func (s *SQLiteStore) GetTasksByDate(ctx context.Context, date string) ([]models.Task, error) {
	rows, err := s.db.QueryxContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE date = ?`, date)
	if err != nil {
		logger.Error("Failed to query tasks by date", "date", date, "error", err)
		return nil, apperrors.Storage("querying tasks by date", err)
	}
	defer rows.Close()

	var stored []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, apperrors.Storage("scanning task", err)
		}
		stored = append(stored, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("querying tasks by date", err)
	}

	routines, err := s.getActiveRoutines(ctx)
	if err != nil {
		return nil, err
	}

	return schedule.Materialize(date, stored, routines)
}

// UpdateTask overwrites a stored task by id and refreshes updated_at.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task models.Task) error {
	task.UpdatedAt = utils.Now()

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			title = ?, description = ?, completed = ?, date = ?, time = ?,
			priority = ?, duration = ?, time_of_day = ?, visual_aid = ?,
			color = ?, routine_id = ?, updated_at = ?
		WHERE id = ?`,
		task.Title, nullStr(task.Description), task.Completed, task.Date, nullStr(task.Time),
		nullStr(string(task.Priority)), nullInt(task.Duration), nullStr(string(task.TimeOfDay)),
		nullStr(task.VisualAid), nullStr(task.Color), task.RoutineID, task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		logger.Error("Failed to update task", "id", task.ID, "error", err)
		return apperrors.Storage("updating task", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NotFound("task", task.ID)
	}
	return nil
}

// ToggleTaskCompletion updates only the completed flag and updated_at.
func (s *SQLiteStore) ToggleTaskCompletion(ctx context.Context, id string, completed bool) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET completed = ?, updated_at = ? WHERE id = ?",
		completed, utils.Now(), id,
	)
	if err != nil {
		logger.Error("Failed to toggle task completion", "id", id, "error", err)
		return apperrors.Storage("toggling task completion", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NotFound("task", id)
	}
	return nil
}

// DeleteTask removes a task by id. Deleting an absent id is not an error.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id); err != nil {
		logger.Error("Failed to delete task", "id", id, "error", err)
		return apperrors.Storage("deleting task", err)
	}
	return nil
}
