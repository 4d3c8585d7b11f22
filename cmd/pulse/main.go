package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/cli/backups"
	"github.com/julianstephens/pulse/internal/cli/reminders"
	"github.com/julianstephens/pulse/internal/cli/settings"
	"github.com/julianstephens/pulse/internal/cli/system"
	"github.com/julianstephens/pulse/internal/constants"
	apperrors "github.com/julianstephens/pulse/internal/errors"
	"github.com/julianstephens/pulse/internal/logger"
	"github.com/julianstephens/pulse/internal/notifier"
	"github.com/julianstephens/pulse/internal/reminder"
	"github.com/julianstephens/pulse/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path. A .json extension selects the JSON backend, anything else SQLite." type:"path" default:"~/.config/pulse/pulse.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init     system.InitCmd       `cmd:"" help:"Initialize pulse storage."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Habit    cli.HabitCmd         `cmd:"" help:"Manage habits and habit tracking."`
	Stats    cli.StatsCmd         `cmd:"" help:"Show activity heatmaps, streaks, and trends."`
	Watch    system.WatchCmd      `cmd:"" help:"Run the reminder daemon in the foreground."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Notify   system.NotifyCmd     `cmd:"" hidden:"" help:"Run a single reminder check (used by cron/systemd timers)."`
	Reminder struct {
		Add     reminders.ReminderAddCmd     `cmd:"" help:"Add a reminder."`
		List    reminders.ReminderListCmd    `cmd:"" help:"List reminders." default:"1"`
		Delete  reminders.ReminderDeleteCmd  `cmd:"" help:"Delete a reminder."`
		Enable  reminders.ReminderEnableCmd  `cmd:"" help:"Enable a reminder."`
		Disable reminders.ReminderDisableCmd `cmd:"" help:"Disable a reminder."`
	} `cmd:"" help:"Manage reminders."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with reminders and activity heatmaps"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// Storage backend follows the file extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:     store,
		Scheduler: reminder.New(store, notifier.New()),
	}

	// Load the store before running the command (init handles its own loading)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Run 'pulse init' to set up storage.\n")
			apperrors.Fatal(err)
		}
	}

	apperrors.Fatal(ctx.Run(appCtx))
}
