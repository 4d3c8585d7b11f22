package models

import "time"

// Settings represents application-wide settings
type Settings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether reminder notifications are sent at all
	TickIntervalSec      int    `json:"tick_interval_sec"`     // how often the watch loop checks for due reminders
	HeatmapWeeks         int    `json:"heatmap_weeks"`         // default number of weeks in the heatmap grid
	HeatmapLevels        int    `json:"heatmap_levels"`        // number of intensity buckets in the heatmap
	TrendWindowDays      int    `json:"trend_window_days"`     // default rolling window for trend stats
	Timezone             string `json:"timezone"`              // IANA timezone name, or "Local" for system timezone
}

// Location resolves the configured timezone. "Local" or empty means the
// system timezone.
func (s Settings) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}
