package system

import (
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/notifier"
	"github.com/julianstephens/pulse/internal/reminder"
)

type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

// Run performs a single reminder check. Meant to be driven by cron or a
// systemd timer as an alternative to the watch daemon.
func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	loc, err := settings.Location()
	if err != nil {
		return fmt.Errorf("invalid timezone %q in settings: %w", settings.Timezone, err)
	}

	var dispatcher reminder.Dispatcher
	if c.DryRun {
		dispatcher = notifier.NewConsole(os.Stdout)
	} else {
		dispatcher = notifier.New()
	}

	return reminder.New(ctx.Store, dispatcher).Tick(time.Now().In(loc))
}
