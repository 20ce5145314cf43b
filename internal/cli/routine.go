package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/abarbosa/tarefitas/internal/models"
	"github.com/abarbosa/tarefitas/internal/schedule"
	"github.com/abarbosa/tarefitas/internal/utils"
)

type RoutineAddCmd struct {
	Title       string `arg:"" optional:"" help:"Routine title. Omit for an interactive form."`
	Description string `short:"D" help:"Routine description."`
	Days        string `short:"w" help:"Comma-separated weekdays (names or 0-6, 0=Sunday)."`
	TimeOfDay   string `help:"Time of day (morning|afternoon|evening|night)."`
	Color       string `help:"Display color."`
	Inactive    bool   `help:"Create the routine deactivated."`
}

func (c *RoutineAddCmd) Run(appCtx *Context) error {
	routine := models.Routine{
		Title:       c.Title,
		Description: c.Description,
		TimeOfDay:   models.TimeOfDay(c.TimeOfDay),
		Color:       c.Color,
		IsActive:    !c.Inactive,
	}

	var days []time.Weekday
	if c.Days != "" {
		parsed, err := ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		days = parsed
	}

	if routine.Title == "" {
		if err := runRoutineForm(&routine, &days); err != nil {
			return err
		}
	}

	stored, err := appCtx.State.CreateRoutine(context.Background(), routine, days)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s on %s (%s)\n",
		okStyle.Render("Added routine"), stored.Title, FormatDays(stored.Days), stored.ID)
	return nil
}

func runRoutineForm(r *models.Routine, days *[]time.Weekday) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&r.Title),
			huh.NewInput().Title("Description").Value(&r.Description),
			huh.NewMultiSelect[time.Weekday]().
				Title("Days").
				Options(
					huh.NewOption("Sunday", time.Sunday),
					huh.NewOption("Monday", time.Monday),
					huh.NewOption("Tuesday", time.Tuesday),
					huh.NewOption("Wednesday", time.Wednesday),
					huh.NewOption("Thursday", time.Thursday),
					huh.NewOption("Friday", time.Friday),
					huh.NewOption("Saturday", time.Saturday),
				).
				Value(days),
			huh.NewSelect[models.TimeOfDay]().
				Title("Time of day").
				Options(
					huh.NewOption("None", models.TimeOfDay("")),
					huh.NewOption("Morning", models.TimeOfDayMorning),
					huh.NewOption("Afternoon", models.TimeOfDayAfternoon),
					huh.NewOption("Evening", models.TimeOfDayEvening),
					huh.NewOption("Night", models.TimeOfDayNight),
				).
				Value(&r.TimeOfDay),
		),
	).Run()
}

type RoutineListCmd struct{}

func (c *RoutineListCmd) Run(appCtx *Context) error {
	routines := appCtx.State.Routines()
	if len(routines) == 0 {
		fmt.Println(faintStyle.Render("No routines."))
		return nil
	}

	for _, r := range routines {
		status := okStyle.Render("active")
		if !r.IsActive {
			status = faintStyle.Render("inactive")
		}
		fmt.Printf("%s  %s  %s %s\n",
			headerStyle.Render(r.Title), FormatDays(r.Days), status, faintStyle.Render(r.ID))
	}
	return nil
}

type RoutineEditCmd struct {
	ID          string `arg:"" help:"Routine id."`
	Title       string `help:"New title."`
	Description string `short:"D" help:"New description."`
	Days        string `short:"w" help:"New comma-separated weekday set (fully replaces the old one)."`
	TimeOfDay   string `help:"New time of day."`
	Activate    bool   `help:"Activate the routine."`
	Deactivate  bool   `help:"Deactivate the routine."`
}

func (c *RoutineEditCmd) Run(appCtx *Context) error {
	if c.Activate && c.Deactivate {
		return fmt.Errorf("--activate and --deactivate are mutually exclusive")
	}

	ctx := context.Background()
	routine, found := findRoutine(appCtx, c.ID)
	if !found {
		return fmt.Errorf("routine %s not found", c.ID)
	}

	if c.Title != "" {
		routine.Title = c.Title
	}
	if c.Description != "" {
		routine.Description = c.Description
	}
	if c.TimeOfDay != "" {
		routine.TimeOfDay = models.TimeOfDay(c.TimeOfDay)
	}
	if c.Activate {
		routine.IsActive = true
	}
	if c.Deactivate {
		routine.IsActive = false
	}

	days := routine.Days
	if c.Days != "" {
		parsed, err := ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		days = parsed
	}

	if err := appCtx.State.UpdateRoutine(ctx, routine, days); err != nil {
		return err
	}
	fmt.Println(okStyle.Render("Updated ") + routine.Title)
	return nil
}

type RoutineDeleteCmd struct {
	ID string `arg:"" help:"Routine id."`
}

func (c *RoutineDeleteCmd) Run(appCtx *Context) error {
	if err := appCtx.State.DeleteRoutine(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Println(okStyle.Render("Deleted routine ") + c.ID)
	return nil
}

type RoutineDoneCmd struct {
	ID   string `arg:"" help:"Routine id."`
	Date string `short:"d" help:"Date of the occurrence (YYYY-MM-DD)." default:"${today}"`
}

// Run marks a routine's occurrence for a date as done. If the occurrence is
// still synthesized it is first promoted to a stored task.
func (c *RoutineDoneCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	routine, found := findRoutine(appCtx, c.ID)
	if !found {
		return fmt.Errorf("routine %s not found", c.ID)
	}

	tasks, err := appCtx.State.TasksForDate(ctx, c.Date)
	if err != nil {
		return err
	}

	var occurrence *models.Task
	for i := range tasks {
		if tasks[i].FromRoutine() && *tasks[i].RoutineID == routine.ID {
			occurrence = &tasks[i]
			break
		}
	}
	if occurrence == nil {
		weekday, err := utils.WeekdayOf(c.Date)
		if err != nil {
			return err
		}
		if !routine.ScheduledOn(weekday) {
			return fmt.Errorf("routine %q is not scheduled on %s", routine.Title, weekday)
		}
		synth := schedule.Synthesize(routine, c.Date)
		occurrence = &synth
	}

	task := *occurrence
	stored := false
	for _, t := range appCtx.State.Tasks() {
		if t.ID == task.ID {
			stored = true
			break
		}
	}
	if !stored {
		promoted, err := appCtx.State.PromoteOccurrence(ctx, task)
		if err != nil {
			return err
		}
		task = promoted
	}

	if task.Completed {
		fmt.Println(faintStyle.Render("Already done: ") + routine.Title)
		return nil
	}
	if err := appCtx.State.ToggleTaskCompletion(ctx, task.ID); err != nil {
		return err
	}

	fmt.Printf("%s %s for %s\n", okStyle.Render("Completed"), routine.Title, c.Date)
	return nil
}

func findRoutine(appCtx *Context, id string) (models.Routine, bool) {
	for _, r := range appCtx.State.Routines() {
		if r.ID == id {
			return r, true
		}
	}
	return models.Routine{}, false
}
