package reminders

import (
	"fmt"

	"github.com/julianstephens/pulse/internal/cli"
)

type ReminderDeleteCmd struct {
	ID string `arg:"" help:"Reminder ID to delete."`
}

func (c *ReminderDeleteCmd) Run(ctx *cli.Context) error {
	// Check if reminder exists
	rule, err := ctx.Store.GetReminder(c.ID)
	if err != nil {
		return fmt.Errorf("reminder not found: %w", err)
	}

	if err := ctx.Scheduler.RemoveRule(c.ID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	fmt.Printf("✓ Reminder deleted: %s at %s\n", rule.Title, rule.Time)
	return nil
}
