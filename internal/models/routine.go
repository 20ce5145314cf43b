package models

import "time"

// Routine is a recurring template scheduled on a set of weekdays, from which
// task occurrences are generated.
type Routine struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	TimeOfDay   TimeOfDay `json:"time_of_day,omitempty" db:"time_of_day"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	Color       string    `json:"color,omitempty" db:"color"`
	CreatedAt   string    `json:"created_at" db:"created_at"`
	UpdatedAt   string    `json:"updated_at" db:"updated_at"`

	// Days holds the scheduled weekdays (0 = Sunday), sorted ascending. Backed
	// by routine_days rows, fully replaced on every update.
	Days []time.Weekday `json:"days"`
}

// RoutineDay is a single (routine, weekday) association row.
type RoutineDay struct {
	RoutineID string       `json:"routine_id" db:"routine_id"`
	Day       time.Weekday `json:"day" db:"day"`
}

// ScheduledOn reports whether the routine is scheduled on the given weekday.
func (r Routine) ScheduledOn(day time.Weekday) bool {
	for _, d := range r.Days {
		if d == day {
			return true
		}
	}
	return false
}
