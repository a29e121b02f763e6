package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ownitapp/ownit/internal/cli"
	"github.com/ownitapp/ownit/internal/constants"
	"github.com/ownitapp/ownit/internal/errors"
	"github.com/ownitapp/ownit/internal/logger"
	"github.com/ownitapp/ownit/internal/notifier"
	"github.com/ownitapp/ownit/internal/reminder"
	"github.com/ownitapp/ownit/internal/storage"
	"github.com/ownitapp/ownit/internal/store"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"~/.config/ownit/ownit.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize ownit storage."`
	Today  cli.TodayCmd  `cmd:"" help:"Show habits due today." default:"1"`
	Done   cli.DoneCmd   `cmd:"" help:"Mark a habit done."`
	Undo   cli.UndoCmd   `cmd:"" help:"Undo a habit completion."`
	Streak cli.StreakCmd `cmd:"" help:"Show current streaks."`
	Habit  struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a new habit."`
		List   cli.HabitListCmd   `cmd:"" help:"List all habits."`
		Show   cli.HabitShowCmd   `cmd:"" help:"Show habit details and history."`
		Edit   cli.HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	} `cmd:"" help:"Manage habits."`
	Category struct {
		Add    cli.CategoryAddCmd    `cmd:"" help:"Add a new category."`
		List   cli.CategoryListCmd   `cmd:"" help:"List all categories."`
		Rename cli.CategoryRenameCmd `cmd:"" help:"Rename a category."`
		Delete cli.CategoryDeleteCmd `cmd:"" help:"Delete a category."`
	} `cmd:"" help:"Manage categories."`
	Remind struct {
		Sync   cli.RemindSyncCmd   `cmd:"" help:"Re-sync reminder triggers with the agent."`
		Status cli.RemindStatusCmd `cmd:"" help:"Show agent and reminder status."`
	} `cmd:"" help:"Manage reminders."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the storage file."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore storage from a backup."`
	} `cmd:"" help:"Manage backups."`
	Theme cli.ThemeCmd `cmd:"" help:"Show or change the theme."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal habit tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		errors.Fatal(err)
	}

	// Determine storage type based on extension
	var provider storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		provider = storage.NewJSONStore(CLI.Config)
	} else {
		provider = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store: store.New(provider, reminder.NewService(notifier.New())),
	}

	err := ctx.Run(appCtx)
	if closeErr := appCtx.Store.Close(); closeErr != nil {
		logger.Warn("could not close storage", "error", closeErr)
	}
	if err != nil {
		errors.Fatal(err)
	}
}
