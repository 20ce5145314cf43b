package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/abarbosa/tarefitas/internal/models"
	"github.com/abarbosa/tarefitas/internal/utils"
)

type TaskAddCmd struct {
	Title       string `arg:"" optional:"" help:"Task title. Omit for an interactive form."`
	Description string `short:"D" help:"Task description."`
	Date        string `short:"d" help:"Date (YYYY-MM-DD)." default:"${today}"`
	Time        string `short:"t" help:"Time (HH:MM)."`
	Priority    string `short:"p" help:"Priority (low|medium|high)."`
	Duration    int    `help:"Duration in minutes."`
	TimeOfDay   string `help:"Time of day (morning|afternoon|evening|night)."`
	Color       string `help:"Display color."`
	VisualAid   string `help:"Image URI shown with the task."`
}

func (c *TaskAddCmd) Run(appCtx *Context) error {
	task := models.Task{
		Title:       c.Title,
		Description: c.Description,
		Date:        c.Date,
		Time:        c.Time,
		Priority:    models.Priority(c.Priority),
		Duration:    c.Duration,
		TimeOfDay:   models.TimeOfDay(c.TimeOfDay),
		Color:       c.Color,
		VisualAid:   c.VisualAid,
	}

	if task.Title == "" {
		if err := runTaskForm(&task); err != nil {
			return err
		}
	}

	stored, err := appCtx.State.CreateTask(context.Background(), task)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s (%s)\n", okStyle.Render("Added task"), stored.Title, stored.ID)
	return nil
}

func runTaskForm(t *models.Task) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&t.Title),
			huh.NewInput().Title("Description").Value(&t.Description),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(&t.Date),
			huh.NewInput().Title("Time (HH:MM, optional)").Value(&t.Time),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("None", models.Priority("")),
					huh.NewOption("Low", models.PriorityLow),
					huh.NewOption("Medium", models.PriorityMedium),
					huh.NewOption("High", models.PriorityHigh),
				).
				Value(&t.Priority),
		),
	).Run()
}

type TaskListCmd struct {
	Date string `short:"d" help:"Only show tasks for this date (YYYY-MM-DD)."`
}

func (c *TaskListCmd) Run(appCtx *Context) error {
	tasks := appCtx.State.Tasks()
	if c.Date != "" {
		var filtered []models.Task
		for _, t := range tasks {
			if t.Date == c.Date {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	if len(tasks) == 0 {
		fmt.Println(faintStyle.Render("No tasks."))
		return nil
	}

	for _, t := range tasks {
		fmt.Println(renderTask(t))
	}
	return nil
}

func renderTask(t models.Task) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	line := fmt.Sprintf("%s %s", check, t.Title)
	if t.Time != "" {
		line = fmt.Sprintf("%s %s %s", check, t.Time, t.Title)
	}
	if t.FromRoutine() {
		line += routineStyle.Render(" (routine)")
	}
	if t.Completed {
		return doneStyle.Render(line) + faintStyle.Render("  "+t.ID)
	}
	return line + faintStyle.Render("  "+t.ID)
}

type TaskToggleCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *TaskToggleCmd) Run(appCtx *Context) error {
	if err := appCtx.State.ToggleTaskCompletion(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Println(okStyle.Render("Toggled ") + c.ID)
	return nil
}

type TaskEditCmd struct {
	ID          string `arg:"" help:"Task id."`
	Title       string `help:"New title."`
	Description string `short:"D" help:"New description."`
	Date        string `short:"d" help:"New date (YYYY-MM-DD)."`
	Time        string `short:"t" help:"New time (HH:MM)."`
	Priority    string `short:"p" help:"New priority (low|medium|high)."`
	Duration    int    `help:"New duration in minutes."`
	Color       string `help:"New display color."`
}

func (c *TaskEditCmd) Run(appCtx *Context) error {
	var task models.Task
	found := false
	for _, t := range appCtx.State.Tasks() {
		if t.ID == c.ID {
			task = t
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("task %s not found", c.ID)
	}

	if c.Title != "" {
		task.Title = c.Title
	}
	if c.Description != "" {
		task.Description = c.Description
	}
	if c.Date != "" {
		task.Date = c.Date
	}
	if c.Time != "" {
		task.Time = c.Time
	}
	if c.Priority != "" {
		task.Priority = models.Priority(c.Priority)
	}
	if c.Duration != 0 {
		task.Duration = c.Duration
	}
	if c.Color != "" {
		task.Color = c.Color
	}

	if err := appCtx.State.UpdateTask(context.Background(), task); err != nil {
		return err
	}
	fmt.Println(okStyle.Render("Updated ") + task.Title)
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *TaskDeleteCmd) Run(appCtx *Context) error {
	if err := appCtx.State.DeleteTask(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Println(okStyle.Render("Deleted ") + c.ID)
	return nil
}

// Vars returns the interpolation variables used in flag defaults.
func Vars() map[string]string {
	return map[string]string{"today": utils.Today()}
}
