package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/abarbosa/tarefitas/internal/cli"
	"github.com/abarbosa/tarefitas/internal/constants"
	apperrors "github.com/abarbosa/tarefitas/internal/errors"
	"github.com/abarbosa/tarefitas/internal/logger"
	"github.com/abarbosa/tarefitas/internal/state"
	"github.com/abarbosa/tarefitas/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	DataDir string `help:"Data directory." default:"~/.config/tarefitas"`
	Debug   bool   `help:"Enable debug logging."`

	Init cli.InitCmd `cmd:"" help:"Initialize storage and default settings."`
	Task struct {
		Add    cli.TaskAddCmd    `cmd:"" help:"Add a new task."`
		List   cli.TaskListCmd   `cmd:"" help:"List tasks." default:"1"`
		Edit   cli.TaskEditCmd   `cmd:"" help:"Edit a task."`
		Toggle cli.TaskToggleCmd `cmd:"" help:"Toggle a task's completion."`
		Delete cli.TaskDeleteCmd `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage tasks."`
	Routine struct {
		Add    cli.RoutineAddCmd    `cmd:"" help:"Add a new routine."`
		List   cli.RoutineListCmd   `cmd:"" help:"List routines." default:"1"`
		Edit   cli.RoutineEditCmd   `cmd:"" help:"Edit a routine."`
		Delete cli.RoutineDeleteCmd `cmd:"" help:"Delete a routine."`
		Done   cli.RoutineDoneCmd   `cmd:"" help:"Complete a routine's occurrence for a date."`
	} `cmd:"" help:"Manage routines."`
	Day      cli.DayCmd      `cmd:"" help:"Show the task list for a date." default:"1"`
	Search   cli.SearchCmd   `cmd:"" help:"Search tasks by title or description."`
	Settings cli.SettingsCmd `cmd:"" help:"Show or change settings."`
}

func main() {
	vars := cli.Vars()
	vars["version"] = constants.Version

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal task and routine tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars(vars),
	)

	dataDir := expandHome(CLI.DataDir)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, DataDir: dataDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	db, err := storage.NewSQLiteStore(filepath.Join(dataDir, constants.DBFileName))
	if err != nil {
		apperrors.Fatal(err)
	}
	defer db.Close()

	stateStore, err := state.New(context.Background(), db)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		State:   stateStore,
		KV:      storage.NewKVStore(dataDir),
		DataDir: dataDir,
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
