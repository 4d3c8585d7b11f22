package settings

import (
	"fmt"

	"github.com/julianstephens/pulse/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	NotificationsEnabled *bool   `help:"Enable or disable notifications."`
	TickIntervalSec      *int    `help:"Seconds between reminder checks."`
	HeatmapWeeks         *int    `help:"Weeks shown in the heatmap."`
	HeatmapLevels        *int    `help:"Color intensity levels in the heatmap."`
	TrendWindowDays      *int    `help:"Trailing window for trend stats, in days."`
	Timezone             *string `help:"IANA timezone name, or 'Local'."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		fmt.Printf("  Tick Interval:         %d sec\n", settings.TickIntervalSec)
		fmt.Printf("  Heatmap Weeks:         %d\n", settings.HeatmapWeeks)
		fmt.Printf("  Heatmap Levels:        %d\n", settings.HeatmapLevels)
		fmt.Printf("  Trend Window:          %d days\n", settings.TrendWindowDays)
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		return nil
	}

	updated := false
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.TickIntervalSec != nil {
		if *c.TickIntervalSec < 1 {
			return fmt.Errorf("tick interval must be at least 1 second")
		}
		settings.TickIntervalSec = *c.TickIntervalSec
		updated = true
	}
	if c.HeatmapWeeks != nil {
		if *c.HeatmapWeeks < 1 {
			return fmt.Errorf("heatmap weeks must be at least 1")
		}
		settings.HeatmapWeeks = *c.HeatmapWeeks
		updated = true
	}
	if c.HeatmapLevels != nil {
		if *c.HeatmapLevels < 2 {
			return fmt.Errorf("heatmap levels must be at least 2")
		}
		settings.HeatmapLevels = *c.HeatmapLevels
		updated = true
	}
	if c.TrendWindowDays != nil {
		if *c.TrendWindowDays < 2 {
			return fmt.Errorf("trend window must be at least 2 days")
		}
		settings.TrendWindowDays = *c.TrendWindowDays
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		if _, err := settings.Location(); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", *c.Timezone, err)
		}
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
