package storage

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	apperrors "github.com/abarbosa/tarefitas/internal/errors"
	"github.com/abarbosa/tarefitas/internal/logger"
	"github.com/abarbosa/tarefitas/internal/models"
	"github.com/abarbosa/tarefitas/internal/utils"
)

const routineColumns = `id, title, description, time_of_day, is_active, color, created_at, updated_at`

func scanRoutine(row rowScanner) (models.Routine, error) {
	var r models.Routine
	var description, timeOfDay, color sql.NullString

	err := row.Scan(
		&r.ID, &r.Title, &description, &timeOfDay, &r.IsActive, &color, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return models.Routine{}, err
	}

	r.Description = description.String
	r.TimeOfDay = models.TimeOfDay(timeOfDay.String)
	r.Color = color.String
	return r, nil
}

// CreateRoutine atomically inserts the routine row plus one routine_days row
// per weekday. On any failure the whole write rolls back and no partial rows
// persist.
func (s *SQLiteStore) CreateRoutine(ctx context.Context, routine models.Routine, days []time.Weekday) (models.Routine, error) {
	if strings.TrimSpace(routine.Title) == "" {
		return models.Routine{}, apperrors.Validation("title", "must not be empty")
	}

	routine.ID = utils.NewID()
	now := utils.Now()
	routine.CreatedAt = now
	routine.UpdatedAt = now

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Routine{}, apperrors.Storage("beginning transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO routines (`+routineColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		routine.ID, routine.Title, nullStr(routine.Description), nullStr(string(routine.TimeOfDay)),
		routine.IsActive, nullStr(routine.Color), routine.CreatedAt, routine.UpdatedAt,
	)
	if err != nil {
		logger.Error("Failed to create routine", "id", routine.ID, "error", err)
		return models.Routine{}, apperrors.Storage("creating routine", err)
	}

	if err := insertRoutineDays(ctx, tx, routine.ID, days); err != nil {
		logger.Error("Failed to create routine days", "id", routine.ID, "error", err)
		return models.Routine{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Routine{}, apperrors.Storage("committing routine", err)
	}

	routine.Days = sortedDays(days)
	return routine, nil
}

// GetAllRoutines returns every routine with its sorted weekday list, ordered
// by title.
func (s *SQLiteStore) GetAllRoutines(ctx context.Context) ([]models.Routine, error) {
	return s.listRoutines(ctx, false)
}

func (s *SQLiteStore) getActiveRoutines(ctx context.Context) ([]models.Routine, error) {
	return s.listRoutines(ctx, true)
}

func (s *SQLiteStore) listRoutines(ctx context.Context, activeOnly bool) ([]models.Routine, error) {
	query := `SELECT ` + routineColumns + ` FROM routines ORDER BY title`
	if activeOnly {
		query = `SELECT ` + routineColumns + ` FROM routines WHERE is_active = 1 ORDER BY title`
	}

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		logger.Error("Failed to list routines", "error", err)
		return nil, apperrors.Storage("listing routines", err)
	}
	defer rows.Close()

	var routines []models.Routine
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			return nil, apperrors.Storage("scanning routine", err)
		}
		routines = append(routines, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("listing routines", err)
	}

	daysByRoutine, err := s.loadRoutineDays(ctx)
	if err != nil {
		return nil, err
	}
	for i := range routines {
		routines[i].Days = daysByRoutine[routines[i].ID]
	}

	return routines, nil
}

func (s *SQLiteStore) loadRoutineDays(ctx context.Context) (map[string][]time.Weekday, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT routine_id, day FROM routine_days ORDER BY routine_id, day")
	if err != nil {
		return nil, apperrors.Storage("listing routine days", err)
	}
	defer rows.Close()

	days := make(map[string][]time.Weekday)
	for rows.Next() {
		var rd models.RoutineDay
		if err := rows.Scan(&rd.RoutineID, &rd.Day); err != nil {
			return nil, apperrors.Storage("scanning routine day", err)
		}
		days[rd.RoutineID] = append(days[rd.RoutineID], rd.Day)
	}
	return days, rows.Err()
}

// GetRoutineByID returns a routine with its sorted days, or ErrNotFound.
func (s *SQLiteStore) GetRoutineByID(ctx context.Context, id string) (models.Routine, error) {
	row := s.db.QueryRowxContext(ctx, `SELECT `+routineColumns+` FROM routines WHERE id = ?`, id)
	r, err := scanRoutine(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Routine{}, apperrors.NotFound("routine", id)
		}
		return models.Routine{}, apperrors.Storage("getting routine", err)
	}

	rows, err := s.db.QueryxContext(ctx,
		"SELECT day FROM routine_days WHERE routine_id = ? ORDER BY day", id)
	if err != nil {
		return models.Routine{}, apperrors.Storage("getting routine days", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day time.Weekday
		if err := rows.Scan(&day); err != nil {
			return models.Routine{}, apperrors.Storage("scanning routine day", err)
		}
		r.Days = append(r.Days, day)
	}
	return r, rows.Err()
}

// UpdateRoutine atomically updates the routine row, deletes all existing
// routine_days rows for the id, and inserts the new set. Same rollback
// guarantee as CreateRoutine.
func (s *SQLiteStore) UpdateRoutine(ctx context.Context, routine models.Routine, days []time.Weekday) error {
	if strings.TrimSpace(routine.Title) == "" {
		return apperrors.Validation("title", "must not be empty")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.Storage("beginning transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE routines SET
			title = ?, description = ?, time_of_day = ?, is_active = ?, color = ?, updated_at = ?
		WHERE id = ?`,
		routine.Title, nullStr(routine.Description), nullStr(string(routine.TimeOfDay)),
		routine.IsActive, nullStr(routine.Color), utils.Now(),
		routine.ID,
	)
	if err != nil {
		logger.Error("Failed to update routine", "id", routine.ID, "error", err)
		return apperrors.Storage("updating routine", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NotFound("routine", routine.ID)
	}

	// Day rows are fully replaced, no partial diffing.
	if _, err := tx.ExecContext(ctx, "DELETE FROM routine_days WHERE routine_id = ?", routine.ID); err != nil {
		logger.Error("Failed to clear routine days", "id", routine.ID, "error", err)
		return apperrors.Storage("clearing routine days", err)
	}

	if err := insertRoutineDays(ctx, tx, routine.ID, days); err != nil {
		logger.Error("Failed to replace routine days", "id", routine.ID, "error", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Storage("committing routine update", err)
	}
	return nil
}

// DeleteRoutine removes the routine row. Its routine_days rows go with it via
// ON DELETE CASCADE, and linked tasks have routine_id set to NULL by the
// foreign key constraint.
func (s *SQLiteStore) DeleteRoutine(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM routines WHERE id = ?", id)
	if err != nil {
		logger.Error("Failed to delete routine", "id", id, "error", err)
		return apperrors.Storage("deleting routine", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NotFound("routine", id)
	}
	return nil
}

func insertRoutineDays(ctx context.Context, tx *sqlx.Tx, routineID string, days []time.Weekday) error {
	stmt, err := tx.PreparexContext(ctx,
		"INSERT INTO routine_days (routine_id, day) VALUES (?, ?)")
	if err != nil {
		return apperrors.Storage("preparing routine day insert", err)
	}
	defer stmt.Close()

	for _, day := range days {
		if _, err := stmt.ExecContext(ctx, routineID, int(day)); err != nil {
			return apperrors.Storage("inserting routine day", err)
		}
	}
	return nil
}

func sortedDays(days []time.Weekday) []time.Weekday {
	out := make([]time.Weekday, len(days))
	copy(out, days)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
