package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/dateutil"
	"github.com/julianstephens/pulse/internal/stats"
)

type StatsCmd struct {
	Heatmap StatsHeatmapCmd `cmd:"" help:"Show a calendar heatmap of activity." default:"1"`
	Streak  StatsStreakCmd  `cmd:"" help:"Show the current streak."`
	Trend   StatsTrendCmd   `cmd:"" help:"Show the activity trend."`
}

// statsEvents loads the event series for a single habit or, with an empty
// name, the per-day count of completed habits.
func statsEvents(ctx *Context, habitName string, days int, today dateutil.Day) ([]stats.Event, error) {
	startDay := today.AddDays(-(days - 1)).String()
	endDay := today.String()

	if habitName == "" {
		return AllHabitEvents(ctx.Store, startDay, endDay)
	}

	habit, err := ctx.Store.GetHabitByName(habitName)
	if err != nil {
		return nil, fmt.Errorf("habit %q not found", habitName)
	}
	return HabitEvents(ctx.Store, habit.ID, startDay, endDay)
}

type StatsHeatmapCmd struct {
	Habit string `help:"Show heatmap for a specific habit (default: all habits combined)."`
	Weeks int    `help:"Number of weeks to show (default from settings)."`
}

func (c *StatsHeatmapCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	weeks := c.Weeks
	if weeks < 1 {
		weeks = settings.HeatmapWeeks
	}
	if weeks < 1 {
		weeks = constants.DefaultHeatmapWeeks
	}

	today := dateutil.DayOf(time.Now())
	events, err := statsEvents(ctx, c.Habit, weeks*7, today)
	if err != nil {
		return err
	}

	grid := stats.BuildGrid(events, weeks, today)
	maxValue := stats.MaxValue(events)

	levels := settings.HeatmapLevels
	if levels < 2 {
		levels = constants.DefaultHeatmapLevels
	}

	if c.Habit != "" {
		fmt.Printf("Activity for %q, last %d weeks:\n\n", c.Habit, weeks)
	} else {
		fmt.Printf("Activity across all habits, last %d weeks:\n\n", weeks)
	}
	fmt.Print(stats.RenderGrid(grid, maxValue, levels))

	return nil
}

type StatsStreakCmd struct {
	Habit string `help:"Show streak for a specific habit (default: all habits combined)."`
}

func (c *StatsStreakCmd) Run(ctx *Context) error {
	today := dateutil.DayOf(time.Now())

	// A streak can reach back arbitrarily far; a year is plenty to scan
	events, err := statsEvents(ctx, c.Habit, 366, today)
	if err != nil {
		return err
	}

	streak := stats.ComputeStreak(events, today)
	if c.Habit != "" {
		fmt.Printf("Current streak for %q: %d day(s)\n", c.Habit, streak)
	} else {
		fmt.Printf("Current streak: %d day(s)\n", streak)
	}

	return nil
}

type StatsTrendCmd struct {
	Habit  string `help:"Show trend for a specific habit (default: all habits combined)."`
	Window int    `help:"Trailing window in days (default from settings)."`
}

func (c *StatsTrendCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	window := c.Window
	if window < 2 {
		window = settings.TrendWindowDays
	}
	if window < 2 {
		window = constants.DefaultTrendWindowDays
	}

	today := dateutil.DayOf(time.Now())
	events, err := statsEvents(ctx, c.Habit, window, today)
	if err != nil {
		return err
	}

	summary := stats.Summarize(events, window, today)
	if c.Habit != "" {
		fmt.Printf("Last %d days for %q:\n\n", window, c.Habit)
	} else {
		fmt.Printf("Last %d days across all habits:\n\n", window)
	}
	fmt.Print(stats.RenderSummary(summary))

	return nil
}
