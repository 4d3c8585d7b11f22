package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/pulse/internal/constants"
)

// Reminder is a per-habit notification rule: fire at Time on the listed
// weekdays. An empty weekday list means every day. At most one firing per
// reminder per calendar day; the last fired day is tracked separately in
// storage so that editing a reminder never resets its firing state.
type Reminder struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Time      string         `json:"time"`               // HH:MM format
	Weekdays  []time.Weekday `json:"weekdays,omitempty"` // empty means every day
	Enabled   bool           `json:"enabled"`
	CreatedAt time.Time      `json:"created_at"`
}

func (r *Reminder) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("reminder id cannot be empty")
	}

	if r.Title == "" {
		return fmt.Errorf("reminder title cannot be empty")
	}

	if r.Time == "" {
		return fmt.Errorf("reminder time cannot be empty")
	}

	// Validate time format (HH:MM)
	if _, err := time.Parse(constants.TimeFormat, r.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}

	for _, wd := range r.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("invalid weekday %d (must be 0-6)", wd)
		}
	}

	return nil
}

// IsDueOn reports whether the reminder's weekday rule matches the given
// weekday. An empty weekday list matches every day.
func (r *Reminder) IsDueOn(weekday time.Weekday) bool {
	if len(r.Weekdays) == 0 {
		return true
	}
	for _, wd := range r.Weekdays {
		if wd == weekday {
			return true
		}
	}
	return false
}

// MatchesMinute reports whether the reminder's HH:MM equals the given
// minute-truncated wall-clock string.
func (r *Reminder) MatchesMinute(minute string) bool {
	return r.Time == minute
}

// FormatSchedule returns a human-readable description of when the reminder fires
func (r *Reminder) FormatSchedule() string {
	if len(r.Weekdays) == 0 {
		return fmt.Sprintf("Daily at %s", r.Time)
	}

	days := make([]time.Weekday, len(r.Weekdays))
	copy(days, r.Weekdays)
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	names := make([]string, len(days))
	for i, wd := range days {
		names[i] = wd.String()[:3]
	}
	return fmt.Sprintf("%s at %s", strings.Join(names, ", "), r.Time)
}
