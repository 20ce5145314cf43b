package cli

import (
	"context"
	"fmt"

	"github.com/abarbosa/tarefitas/internal/state"
	"github.com/abarbosa/tarefitas/internal/utils"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD). Defaults to today."`
}

// Run shows the effective task list for a date: stored tasks merged with
// synthesized occurrences of active routines scheduled on that weekday.
func (c *DayCmd) Run(appCtx *Context) error {
	date := c.Date
	if date == "" {
		date = utils.Today()
	}
	if !utils.ValidDate(date) {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}

	tasks, err := appCtx.State.TasksForDate(context.Background(), date)
	if err != nil {
		return err
	}

	weekday, _ := utils.WeekdayOf(date)
	fmt.Println(headerStyle.Render(fmt.Sprintf("%s (%s)", date, weekday)))

	if len(tasks) == 0 {
		fmt.Println(faintStyle.Render("Nothing planned."))
		return nil
	}

	for _, t := range tasks {
		fmt.Println(renderTask(t))
	}

	p := state.Summarize(tasks)
	fmt.Println(faintStyle.Render(
		fmt.Sprintf("%d/%d done (%.0f%%)", p.Completed, p.Total, p.Percent)))
	return nil
}
