package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/pulse/internal/backup"
	"github.com/julianstephens/pulse/internal/dateutil"
	"github.com/julianstephens/pulse/internal/logger"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/reminder"
	"github.com/julianstephens/pulse/internal/stats"
	"github.com/julianstephens/pulse/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Scheduler *reminder.Scheduler
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

// HabitEvents converts one habit's entries in [startDay, endDay] into
// activity events.
func HabitEvents(store storage.Provider, habitID, startDay, endDay string) ([]stats.Event, error) {
	entries, err := store.GetHabitEntriesForHabit(habitID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	return entriesToEvents(entries), nil
}

// AllHabitEvents aggregates entries across every active habit into one event
// series: a day's value is the number of habits with positive activity that
// day.
func AllHabitEvents(store storage.Provider, startDay, endDay string) ([]stats.Event, error) {
	habits, err := store.GetAllHabits(false, false)
	if err != nil {
		return nil, err
	}

	perDay := make(map[string]float64)
	for _, habit := range habits {
		entries, err := store.GetHabitEntriesForHabit(habit.ID, startDay, endDay)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.Value > 0 {
				perDay[entry.Day]++
			}
		}
	}

	events := make([]stats.Event, 0, len(perDay))
	for dayStr, value := range perDay {
		d, err := dateutil.ParseDay(dayStr)
		if err != nil {
			continue
		}
		events = append(events, stats.Event{Day: d, Value: value})
	}
	return events, nil
}

func entriesToEvents(entries []models.HabitEntry) []stats.Event {
	events := make([]stats.Event, 0, len(entries))
	for _, entry := range entries {
		d, err := dateutil.ParseDay(entry.Day)
		if err != nil {
			// A malformed day in storage should not take down the whole
			// report
			logger.Warn("Skipping entry with invalid day", "id", entry.ID, "day", entry.Day)
			continue
		}
		events = append(events, stats.Event{Day: d, Value: entry.Value})
	}
	return events
}
