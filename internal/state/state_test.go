package state

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/abarbosa/tarefitas/internal/errors"
	"github.com/abarbosa/tarefitas/internal/models"
	"github.com/abarbosa/tarefitas/internal/storage"
)

func newTestState(t *testing.T) *Store {
	t.Helper()
	db, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s, err := New(context.Background(), db)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestCreateTask_UpdatesCollection(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, models.Task{Title: "Read", Date: "2025-12-31"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].ID != created.ID {
		t.Errorf("Collection not refreshed after create: %+v", tasks)
	}
}

func TestCreateTask_RejectsInvalidInput(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()

	cases := []struct {
		name string
		task models.Task
	}{
		{"empty title", models.Task{Title: "", Date: "2025-12-31"}},
		{"bad date", models.Task{Title: "x", Date: "31/12/2025"}},
		{"bad time", models.Task{Title: "x", Date: "2025-12-31", Time: "9am"}},
		{"bad priority", models.Task{Title: "x", Date: "2025-12-31", Priority: "urgent"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.CreateTask(ctx, tc.task); !apperrors.IsValidation(err) {
				t.Fatalf("Expected validation error, got %v", err)
			}
		})
	}

	if len(s.Tasks()) != 0 {
		t.Error("Rejected input must not reach the collection")
	}
}

func TestToggleTaskCompletion(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, models.Task{Title: "Flip", Date: "2025-12-31"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	t.Run("double toggle restores the flag", func(t *testing.T) {
		if err := s.ToggleTaskCompletion(ctx, created.ID); err != nil {
			t.Fatalf("First toggle failed: %v", err)
		}
		if !s.Tasks()[0].Completed {
			t.Fatal("Expected completed after first toggle")
		}

		if err := s.ToggleTaskCompletion(ctx, created.ID); err != nil {
			t.Fatalf("Second toggle failed: %v", err)
		}
		if s.Tasks()[0].Completed {
			t.Fatal("Expected incomplete after second toggle")
		}
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		before := s.Tasks()
		if err := s.ToggleTaskCompletion(ctx, "missing-id"); err != nil {
			t.Fatalf("Toggle of absent id errored: %v", err)
		}
		after := s.Tasks()
		if len(before) != len(after) || before[0].Completed != after[0].Completed {
			t.Error("Absent-id toggle changed the collection")
		}
	})
}

func TestSubscribe(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()

	var got []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		got = append(got, snap)
	})

	if _, err := s.CreateTask(ctx, models.Task{Title: "Notify", Date: "2025-12-31"}); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected one notification, got %d", len(got))
	}
	if len(got[0].Tasks) != 1 || got[0].Tasks[0].Title != "Notify" {
		t.Errorf("Snapshot does not carry the new task: %+v", got[0].Tasks)
	}

	unsubscribe()
	if _, err := s.CreateTask(ctx, models.Task{Title: "Silent", Date: "2025-12-31"}); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Expected no notifications after unsubscribe, got %d", len(got))
	}
}

func TestDeleteRoutine_UnlinksTasksInCollection(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()

	routine, err := s.CreateRoutine(ctx, models.Routine{Title: "Meds", IsActive: true},
		[]time.Weekday{time.Monday, time.Wednesday, time.Friday})
	if err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}

	for _, date := range []string{"2025-12-29", "2025-12-31", "2026-01-02"} {
		if _, err := s.CreateTask(ctx, models.Task{
			Title:     "Meds",
			Date:      date,
			RoutineID: &routine.ID,
		}); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	if err := s.DeleteRoutine(ctx, routine.ID); err != nil {
		t.Fatalf("DeleteRoutine failed: %v", err)
	}

	if len(s.Routines()) != 0 {
		t.Error("Routine still present after delete")
	}
	tasks := s.Tasks()
	if len(tasks) != 3 {
		t.Fatalf("Expected the linked tasks to survive, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.FromRoutine() {
			t.Errorf("Task %s still links deleted routine", task.ID)
		}
	}
}

func TestPromoteOccurrence(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()

	routine, err := s.CreateRoutine(ctx, models.Routine{Title: "Stretch", IsActive: true},
		[]time.Weekday{time.Wednesday})
	if err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}

	occurrences, err := s.TasksForDate(ctx, "2025-12-31")
	if err != nil {
		t.Fatalf("TasksForDate failed: %v", err)
	}
	if len(occurrences) != 1 || !occurrences[0].FromRoutine() {
		t.Fatalf("Expected one synthesized occurrence, got %+v", occurrences)
	}

	promoted, err := s.PromoteOccurrence(ctx, occurrences[0])
	if err != nil {
		t.Fatalf("PromoteOccurrence failed: %v", err)
	}
	if !promoted.FromRoutine() || *promoted.RoutineID != routine.ID {
		t.Errorf("Promoted task lost its routine link: %+v", promoted)
	}

	// Once stored, the occurrence suppresses further synthesis for the date.
	after, err := s.TasksForDate(ctx, "2025-12-31")
	if err != nil {
		t.Fatalf("TasksForDate failed: %v", err)
	}
	if len(after) != 1 {
		t.Fatalf("Expected exactly one task after promotion, got %d", len(after))
	}
	if after[0].ID != promoted.ID {
		t.Errorf("Expected the stored task, got %q", after[0].ID)
	}

	t.Run("rejects unlinked tasks", func(t *testing.T) {
		_, err := s.PromoteOccurrence(ctx, models.Task{Title: "Plain", Date: "2025-12-31"})
		if !apperrors.IsValidation(err) {
			t.Fatalf("Expected validation error, got %v", err)
		}
	})
}

func TestFilter(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Title: "Buy groceries", Description: "milk and eggs"},
		{ID: "2", Title: "Call dentist"},
		{ID: "3", Title: "Plan trip", Description: "book GROCERY run on the way"},
	}

	t.Run("empty query returns everything", func(t *testing.T) {
		if got := Filter(tasks, ""); len(got) != len(tasks) {
			t.Errorf("Expected all %d tasks, got %d", len(tasks), len(got))
		}
	})

	t.Run("matches title and description case-insensitively", func(t *testing.T) {
		got := Filter(tasks, "groCerY")
		if len(got) != 2 {
			t.Fatalf("Expected 2 matches, got %d", len(got))
		}
		if got[0].ID != "1" || got[1].ID != "3" {
			t.Errorf("Wrong matches: %+v", got)
		}
	})

	t.Run("filtering twice with the same query is stable", func(t *testing.T) {
		once := Filter(tasks, "groceries")
		twice := Filter(once, "groceries")
		if len(once) != len(twice) {
			t.Errorf("Filter is not idempotent: %d vs %d", len(once), len(twice))
		}
	})

	t.Run("no match yields empty", func(t *testing.T) {
		if got := Filter(tasks, "xyzzy"); len(got) != 0 {
			t.Errorf("Expected no matches, got %d", len(got))
		}
	})
}

func TestSummarize(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		p := Summarize(nil)
		if p.Total != 0 || p.Completed != 0 || p.Percent != 0 {
			t.Errorf("Expected zero progress, got %+v", p)
		}
	})

	t.Run("partial completion", func(t *testing.T) {
		p := Summarize([]models.Task{
			{Completed: true}, {Completed: false},
			{Completed: true}, {Completed: false},
		})
		if p.Completed != 2 || p.Total != 4 || p.Percent != 50 {
			t.Errorf("Expected 2/4 (50%%), got %+v", p)
		}
	})

	t.Run("all done", func(t *testing.T) {
		p := Summarize([]models.Task{{Completed: true}, {Completed: true}})
		if p.Percent != 100 {
			t.Errorf("Expected 100%%, got %+v", p)
		}
	})
}
