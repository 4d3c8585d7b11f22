package system

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/pulse/internal/cli"
)

type WatchCmd struct {
	Interval time.Duration `help:"Override the tick interval (e.g. 30s). Default comes from settings."`
}

// Run starts the reminder daemon and blocks until SIGINT or SIGTERM.
func (c *WatchCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.NotificationsEnabled {
		return fmt.Errorf("notifications are disabled in settings; enable them with 'pulse settings --notifications-enabled'")
	}

	interval := c.Interval
	if interval <= 0 {
		interval = time.Duration(settings.TickIntervalSec) * time.Second
	}

	loc, err := settings.Location()
	if err != nil {
		return fmt.Errorf("invalid timezone %q in settings: %w", settings.Timezone, err)
	}
	ctx.Scheduler.SetClock(func() time.Time { return time.Now().In(loc) })

	ctx.Scheduler.Start(interval)
	fmt.Printf("Watching reminders every %s. Press Ctrl+C to stop.\n", interval)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	fmt.Println("\nStopping...")
	ctx.Scheduler.Stop()
	return nil
}
