package storage

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/abarbosa/tarefitas/internal/errors"
	"github.com/abarbosa/tarefitas/internal/models"
)

func TestCreateRoutine_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateRoutine(ctx, models.Routine{
		Title:     "Evening reading",
		TimeOfDay: models.TimeOfDayEvening,
		IsActive:  true,
		Color:     "#03dac6",
	}, []time.Weekday{time.Friday, time.Monday, time.Wednesday})
	if err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}

	got, err := store.GetRoutineByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetRoutineByID failed: %v", err)
	}
	if got.Title != "Evening reading" || !got.IsActive {
		t.Errorf("Round-trip mismatch: %+v", got)
	}

	want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if len(got.Days) != len(want) {
		t.Fatalf("Expected %d days, got %d", len(want), len(got.Days))
	}
	for i, d := range want {
		if got.Days[i] != d {
			t.Errorf("Day %d: expected %s, got %s", i, d, got.Days[i])
		}
	}
}

func TestGetRoutineByID_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetRoutineByID(context.Background(), "missing-id")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRoutine_ReplacesDays(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateRoutine(ctx, models.Routine{Title: "Gym", IsActive: true},
		[]time.Weekday{time.Monday, time.Thursday})
	if err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}

	created.Title = "Gym session"
	created.IsActive = false
	err = store.UpdateRoutine(ctx, created, []time.Weekday{time.Saturday})
	if err != nil {
		t.Fatalf("UpdateRoutine failed: %v", err)
	}

	got, err := store.GetRoutineByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetRoutineByID failed: %v", err)
	}
	if got.Title != "Gym session" || got.IsActive {
		t.Errorf("Update not applied: %+v", got)
	}
	if len(got.Days) != 1 || got.Days[0] != time.Saturday {
		t.Errorf("Expected days fully replaced with [Saturday], got %v", got.Days)
	}
}

func TestUpdateRoutine_RollsBackOnBadDay(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateRoutine(ctx, models.Routine{Title: "Journal", IsActive: true},
		[]time.Weekday{time.Sunday, time.Tuesday})
	if err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}

	// The second day violates the day range constraint, so the whole write
	// must roll back: routine row untouched, original day rows intact.
	created.Title = "Journal (renamed)"
	err = store.UpdateRoutine(ctx, created, []time.Weekday{time.Monday, time.Weekday(9)})
	if err == nil {
		t.Fatal("Expected UpdateRoutine to fail on out-of-range day")
	}

	got, err := store.GetRoutineByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetRoutineByID failed: %v", err)
	}
	if got.Title != "Journal" {
		t.Errorf("Routine row changed despite rollback: %q", got.Title)
	}
	want := []time.Weekday{time.Sunday, time.Tuesday}
	if len(got.Days) != len(want) {
		t.Fatalf("Expected original days after rollback, got %v", got.Days)
	}
	for i, d := range want {
		if got.Days[i] != d {
			t.Errorf("Day %d: expected %s, got %s", i, d, got.Days[i])
		}
	}
}

func TestUpdateRoutine_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdateRoutine(context.Background(),
		models.Routine{ID: "missing-id", Title: "Ghost"}, []time.Weekday{time.Monday})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRoutine_CascadesAndUnlinks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	routine, err := store.CreateRoutine(ctx, models.Routine{Title: "Meds", IsActive: true},
		[]time.Weekday{time.Monday, time.Wednesday, time.Friday})
	if err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}

	var linked []models.Task
	for _, date := range []string{"2025-12-29", "2025-12-31", "2026-01-02"} {
		task, err := store.CreateTask(ctx, models.Task{
			Title:     "Meds",
			Date:      date,
			RoutineID: &routine.ID,
		})
		if err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
		linked = append(linked, task)
	}

	if err := store.DeleteRoutine(ctx, routine.ID); err != nil {
		t.Fatalf("DeleteRoutine failed: %v", err)
	}

	if _, err := store.GetRoutineByID(ctx, routine.ID); !apperrors.IsNotFound(err) {
		t.Fatalf("Expected routine gone, got %v", err)
	}

	var dayCount int
	if err := store.db.Get(&dayCount,
		"SELECT COUNT(*) FROM routine_days WHERE routine_id = ?", routine.ID); err != nil {
		t.Fatalf("Counting routine_days failed: %v", err)
	}
	if dayCount != 0 {
		t.Errorf("Expected routine_days rows cascaded away, found %d", dayCount)
	}

	// The linked tasks survive with their routine link cleared.
	for _, task := range linked {
		got, err := store.GetTask(ctx, task.ID)
		if err != nil {
			t.Fatalf("GetTask failed after routine delete: %v", err)
		}
		if got.FromRoutine() {
			t.Errorf("Task %s still links deleted routine", got.ID)
		}
	}
}

func TestDeleteRoutine_NotFound(t *testing.T) {
	store := newTestStore(t)

	if err := store.DeleteRoutine(context.Background(), "missing-id"); !apperrors.IsNotFound(err) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetAllRoutines_IncludesInactive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateRoutine(ctx, models.Routine{Title: "Active", IsActive: true},
		[]time.Weekday{time.Monday}); err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}
	if _, err := store.CreateRoutine(ctx, models.Routine{Title: "Paused", IsActive: false},
		[]time.Weekday{time.Tuesday}); err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}

	all, err := store.GetAllRoutines(ctx)
	if err != nil {
		t.Fatalf("GetAllRoutines failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected both routines, got %d", len(all))
	}

	active, err := store.getActiveRoutines(ctx)
	if err != nil {
		t.Fatalf("getActiveRoutines failed: %v", err)
	}
	if len(active) != 1 || active[0].Title != "Active" {
		t.Errorf("Expected only the active routine, got %+v", active)
	}
}
