package constants

const (
	// Default settings values
	DefaultNotificationsEnabled = true
	DefaultTickIntervalSec      = 60
	DefaultHeatmapWeeks         = 12
	DefaultHeatmapLevels        = 5
	DefaultTrendWindowDays      = 14
	DefaultTimezone             = "Local" // Use system local timezone by default
)
