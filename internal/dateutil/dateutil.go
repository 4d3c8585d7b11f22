package dateutil

import (
	"fmt"
	"time"

	"github.com/julianstephens/pulse/internal/constants"
)

// Day is a local calendar day carried as plain data. It is computed once at
// the boundary (from a wall-clock time in its own location, or parsed from a
// YYYY-MM-DD string) and threaded through aggregation and scheduling code so
// that none of it has to consult a clock or a timezone again.
//
// Internally the day is pinned to midnight UTC, so AddDays arithmetic never
// crosses a DST seam regardless of where the day originally came from.
type Day struct {
	t time.Time
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	return Day{t: t}, nil
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool {
	return d.t.IsZero()
}

// AddDays returns the day n calendar days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

// Weekday returns the day of the week (Sunday = 0).
func (d Day) Weekday() time.Weekday {
	return d.t.Weekday()
}

// Before reports whether d falls before other.
func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

// After reports whether d falls after other.
func (d Day) After(other Day) bool {
	return d.t.After(other.t)
}

// Equal reports whether d and other are the same calendar day.
func (d Day) Equal(other Day) bool {
	return d.t.Equal(other.t)
}

// DaysUntil returns the number of calendar days from d to other. The result
// is negative when other falls before d.
func (d Day) DaysUntil(other Day) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// String returns the day in YYYY-MM-DD form.
func (d Day) String() string {
	return d.t.Format(constants.DateFormat)
}

// Format formats the day with an arbitrary time layout.
func (d Day) Format(layout string) string {
	return d.t.Format(layout)
}

// MinuteOf returns t's wall-clock time truncated to the minute, in HH:MM
// form. A tick landing anywhere inside a minute matches a reminder set for
// that minute.
func MinuteOf(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

// ParseClock validates an HH:MM wall-clock string.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(constants.TimeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}
	return t, nil
}
