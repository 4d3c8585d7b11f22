package reminders

import (
	"fmt"

	"github.com/julianstephens/pulse/internal/cli"
)

type ReminderEnableCmd struct {
	ID string `arg:"" help:"Reminder ID to enable."`
}

func (c *ReminderEnableCmd) Run(ctx *cli.Context) error {
	return setEnabled(ctx, c.ID, true)
}

type ReminderDisableCmd struct {
	ID string `arg:"" help:"Reminder ID to disable."`
}

func (c *ReminderDisableCmd) Run(ctx *cli.Context) error {
	return setEnabled(ctx, c.ID, false)
}

func setEnabled(ctx *cli.Context, id string, enabled bool) error {
	rule, err := ctx.Store.GetReminder(id)
	if err != nil {
		return fmt.Errorf("reminder not found: %w", err)
	}

	if rule.Enabled == enabled {
		fmt.Printf("Reminder %q is already %s.\n", rule.Title, stateWord(enabled))
		return nil
	}

	rule.Enabled = enabled
	if err := ctx.Scheduler.UpsertRule(rule); err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}

	fmt.Printf("✓ Reminder %s: %s\n", stateWord(enabled), rule.Title)
	return nil
}

func stateWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
