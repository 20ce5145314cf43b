package models

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayEvening   TimeOfDay = "evening"
	TimeOfDayNight     TimeOfDay = "night"
)

// Task is a single actionable, dated item, optionally linked to a routine.
type Task struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	Date        string    `json:"date" db:"date"` // YYYY-MM-DD format
	Time        string    `json:"time,omitempty" db:"time"` // HH:MM format, empty when unscheduled
	Priority    Priority  `json:"priority,omitempty" db:"priority"`
	Duration    int       `json:"duration,omitempty" db:"duration"` // minutes
	TimeOfDay   TimeOfDay `json:"time_of_day,omitempty" db:"time_of_day"`
	VisualAid   string    `json:"visual_aid,omitempty" db:"visual_aid"`
	Color       string    `json:"color,omitempty" db:"color"`
	RoutineID   *string   `json:"routine_id,omitempty" db:"routine_id"`
	CreatedAt   string    `json:"created_at" db:"created_at"` // RFC3339 timestamp
	UpdatedAt   string    `json:"updated_at" db:"updated_at"` // RFC3339 timestamp
}

// FromRoutine returns true when the task is linked to a routine.
func (t Task) FromRoutine() bool {
	return t.RoutineID != nil && *t.RoutineID != ""
}
