package validation

import (
	"strings"
	"time"

	apperrors "github.com/abarbosa/tarefitas/internal/errors"
	"github.com/abarbosa/tarefitas/internal/models"
	"github.com/abarbosa/tarefitas/internal/utils"
)

// ValidateTask checks task input before it reaches the store. Server-assigned
// fields (id, timestamps) are not inspected.
func ValidateTask(t models.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return apperrors.Validation("title", "must not be empty")
	}
	if !utils.ValidDate(t.Date) {
		return apperrors.Validation("date", "invalid date %q (expected YYYY-MM-DD)", t.Date)
	}
	if t.Time != "" && !utils.ValidTime(t.Time) {
		return apperrors.Validation("time", "invalid time %q (expected HH:MM)", t.Time)
	}
	if t.Priority != "" && !validPriority(t.Priority) {
		return apperrors.Validation("priority", "invalid priority %q (expected low|medium|high)", t.Priority)
	}
	if t.TimeOfDay != "" && !validTimeOfDay(t.TimeOfDay) {
		return apperrors.Validation("time_of_day", "invalid time of day %q", t.TimeOfDay)
	}
	if t.Duration < 0 {
		return apperrors.Validation("duration", "must be a positive number of minutes")
	}
	return nil
}

// ValidateRoutine checks routine input, including its weekday set.
func ValidateRoutine(r models.Routine) error {
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.Validation("title", "must not be empty")
	}
	if r.TimeOfDay != "" && !validTimeOfDay(r.TimeOfDay) {
		return apperrors.Validation("time_of_day", "invalid time of day %q", r.TimeOfDay)
	}
	return ValidateDays(r.Days)
}

// ValidateDays checks a weekday set for range and uniqueness.
func ValidateDays(days []time.Weekday) error {
	seen := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			return apperrors.Validation("days", "weekday %d out of range 0-6", int(d))
		}
		if seen[d] {
			return apperrors.Validation("days", "duplicate weekday %s", d)
		}
		seen[d] = true
	}
	return nil
}

func validPriority(p models.Priority) bool {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return true
	}
	return false
}

func validTimeOfDay(t models.TimeOfDay) bool {
	switch t {
	case models.TimeOfDayMorning, models.TimeOfDayAfternoon, models.TimeOfDayEvening, models.TimeOfDayNight:
		return true
	}
	return false
}
