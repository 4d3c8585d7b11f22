package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing store before initialization."`
	Source string `help:"Source store path to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing store
	if c.Force {
		storePath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absStorePath, err := filepath.Abs(storePath)
			if err == nil {
				storePath = absStorePath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == storePath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", storePath)
			}
		}
		if _, err := os.Stat(storePath); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(storePath); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Printf("Deleted existing store at: %s\n", storePath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized pulse storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

// Entries far enough apart to cover any real data
const (
	migrationRangeStart = "0001-01-01"
	migrationRangeEnd   = "9999-12-31"
)

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	// Source backend follows the file extension, same as the main store
	var sourceStore storage.Provider
	if strings.HasSuffix(sourcePath, ".json") {
		sourceStore = storage.NewJSONStore(sourcePath)
	} else {
		sourceStore = storage.NewSQLiteStore(sourcePath)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source store: %w", err)
	}
	defer sourceStore.Close()

	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load destination store: %w", err)
	}

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating habits...")
	habits, err := sourceStore.GetAllHabits(true, true)
	if err != nil {
		return fmt.Errorf("failed to get habits from source: %w", err)
	}
	for _, habit := range habits {
		if err := ctx.Store.AddHabit(habit); err != nil {
			return fmt.Errorf("failed to add habit %s: %w", habit.ID, err)
		}
	}
	fmt.Printf("    Migrated %d habits\n", len(habits))

	fmt.Println("  Migrating habit entries...")
	entryCount := 0
	for _, habit := range habits {
		entries, err := sourceStore.GetHabitEntriesForHabit(habit.ID, migrationRangeStart, migrationRangeEnd)
		if err != nil {
			return fmt.Errorf("failed to get entries for habit %s: %w", habit.ID, err)
		}
		for _, entry := range entries {
			if err := ctx.Store.AddHabitEntry(entry); err != nil {
				return fmt.Errorf("failed to add habit entry %s: %w", entry.ID, err)
			}
			entryCount++
		}
	}
	fmt.Printf("    Migrated %d habit entries\n", entryCount)

	fmt.Println("  Migrating reminders...")
	reminders, err := sourceStore.GetAllReminders()
	if err != nil {
		return fmt.Errorf("failed to get reminders from source: %w", err)
	}
	for _, rule := range reminders {
		if err := ctx.Store.SaveReminder(rule); err != nil {
			return fmt.Errorf("failed to save reminder %s: %w", rule.ID, err)
		}
		// Firing records carry over so migration never re-fires today's
		// reminders
		lastFired, err := sourceStore.GetLastFired(rule.ID)
		if err != nil {
			return fmt.Errorf("failed to get firing record for %s: %w", rule.ID, err)
		}
		if lastFired != "" {
			if err := ctx.Store.SetLastFired(rule.ID, lastFired); err != nil {
				return fmt.Errorf("failed to save firing record for %s: %w", rule.ID, err)
			}
		}
	}
	fmt.Printf("    Migrated %d reminders\n", len(reminders))

	return nil
}
