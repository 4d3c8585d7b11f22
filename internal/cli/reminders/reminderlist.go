package reminders

import (
	"fmt"
	"strings"

	"github.com/julianstephens/pulse/internal/cli"
)

type ReminderListCmd struct{}

func (c *ReminderListCmd) Run(ctx *cli.Context) error {
	reminders, err := ctx.Store.GetAllReminders()
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}

	if len(reminders) == 0 {
		fmt.Println("No reminders configured.")
		return nil
	}

	fmt.Printf("%-36s %-30s %-28s %-8s %-12s\n", "ID", "Title", "Schedule", "Enabled", "Last fired")
	fmt.Println(strings.Repeat("-", 118))

	for _, r := range reminders {
		title := r.Title
		if len(title) > 28 {
			title = title[:25] + "..."
		}

		schedule := r.FormatSchedule()
		if len(schedule) > 26 {
			schedule = schedule[:23] + "..."
		}

		enabledStr := "Yes"
		if !r.Enabled {
			enabledStr = "No"
		}

		lastFired, err := ctx.Store.GetLastFired(r.ID)
		if err != nil || lastFired == "" {
			lastFired = "never"
		}

		fmt.Printf("%-36s %-30s %-28s %-8s %-12s\n",
			r.ID, title, schedule, enabledStr, lastFired)
	}

	return nil
}
