package utils

import (
	"fmt"
	"time"

	"github.com/abarbosa/tarefitas/internal/constants"
)

// Today returns the current calendar date (YYYY-MM-DD) in device-local time.
func Today() string {
	return time.Now().Format(constants.DateFormat)
}

// Now returns the current instant as an RFC3339 timestamp, used for the
// created_at/updated_at columns.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ParseDate parses a date string in the standard format (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return t, nil
}

// ParseTime parses a clock time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM): %w", timeStr, err)
	}
	return t, nil
}

// WeekdayOf returns the weekday (0 = Sunday) of a date string.
func WeekdayOf(dateStr string) (time.Weekday, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// ValidDate reports whether the string is a well-formed YYYY-MM-DD date.
func ValidDate(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// ValidTime reports whether the string is a well-formed HH:MM clock time.
func ValidTime(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}
