package schedule

import (
	"sort"

	"github.com/abarbosa/tarefitas/internal/models"
	"github.com/abarbosa/tarefitas/internal/utils"
)

// Materialize answers "what should the user see as their task list for the
// given date" by merging the stored tasks for that date with synthesized
// occurrences of active routines scheduled on that date's weekday.
//
// A routine is suppressed only when one of the stored tasks *for this date*
// already references it. A completed occurrence stored under a different date
// sharing the same weekday must not stop the routine from generating again.
func Materialize(date string, stored []models.Task, routines []models.Routine) ([]models.Task, error) {
	weekday, err := utils.WeekdayOf(date)
	if err != nil {
		return nil, err
	}

	covered := make(map[string]bool, len(stored))
	for _, t := range stored {
		if t.FromRoutine() {
			covered[*t.RoutineID] = true
		}
	}

	merged := make([]models.Task, 0, len(stored)+len(routines))
	merged = append(merged, stored...)

	for _, r := range routines {
		if !r.IsActive || !r.ScheduledOn(weekday) || covered[r.ID] {
			continue
		}
		merged = append(merged, Synthesize(r, date))
	}

	Sort(merged)
	return merged, nil
}

// Synthesize builds the ephemeral, non-persisted task occurrence for a
// (routine, date) pair. The id is fresh on every call; a durable identity is
// only assigned if the occurrence is later promoted to a stored task.
func Synthesize(r models.Routine, date string) models.Task {
	now := utils.Now()
	routineID := r.ID
	return models.Task{
		ID:          utils.NewID(),
		Title:       r.Title,
		Description: r.Description,
		Completed:   false,
		Date:        date,
		TimeOfDay:   r.TimeOfDay,
		Color:       r.Color,
		RoutineID:   &routineID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Sort orders a day's task list: entries with a time value ascending by time,
// then entries without a time ascending by title, timed entries first. Ties
// break on title so the order is stable across calls regardless of ids.
func Sort(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch {
		case a.Time != "" && b.Time != "":
			if a.Time != b.Time {
				return a.Time < b.Time
			}
			return a.Title < b.Title
		case a.Time != "":
			return true
		case b.Time != "":
			return false
		default:
			return a.Title < b.Title
		}
	})
}
