package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abarbosa/tarefitas/internal/state"
	"github.com/abarbosa/tarefitas/internal/storage"
)

// Context carries the wired stores into every command.
type Context struct {
	State   *state.Store
	KV      *storage.KVStore
	DataDir string
}

// ParseWeekdays parses a comma-separated list of weekdays, accepting names
// ("mon", "monday") or numbers (0=Sunday, 6=Saturday).
func ParseWeekdays(s string) ([]time.Weekday, error) {
	dayMap := map[string]time.Weekday{
		"sun": time.Sunday, "sunday": time.Sunday,
		"mon": time.Monday, "monday": time.Monday,
		"tue": time.Tuesday, "tuesday": time.Tuesday,
		"wed": time.Wednesday, "wednesday": time.Wednesday,
		"thu": time.Thursday, "thursday": time.Thursday,
		"fri": time.Friday, "friday": time.Friday,
		"sat": time.Saturday, "saturday": time.Saturday,
	}

	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, time.Weekday(num))
	}

	return weekdays, nil
}

// FormatDays renders a weekday set as abbreviated names ("Mon,Wed,Fri").
func FormatDays(days []time.Weekday) string {
	if len(days) == 0 {
		return "-"
	}
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()[:3]
	}
	return strings.Join(names, ",")
}
