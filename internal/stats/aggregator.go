// Package stats derives heatmap grids, streaks, and trend statistics from
// dated activity events. Every function here is a pure transform: the same
// events and the same "today" always produce the same output, and "today" is
// always passed in explicitly rather than read from a clock.
package stats

import (
	"math"

	"github.com/julianstephens/pulse/internal/dateutil"
)

// Event is one day's activity for a single series: a count, a weight, or 1
// for a simple check-off. Events may arrive unordered. If the input contains
// more than one event for the same day, the last one wins.
type Event struct {
	Day   dateutil.Day
	Value float64
}

// Cell is one day in the heatmap grid.
type Cell struct {
	Day      dateutil.Day
	Value    float64
	IsToday  bool
	IsFuture bool
}

// Week is seven cells in Sunday..Saturday order.
type Week []Cell

// TrendDirection compares recent activity against the period before it.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// Trend is the result of ComputeTrend: the direction of change and the
// difference between the two half-window means.
type Trend struct {
	Direction TrendDirection
	Delta     float64
}

// Summary bundles the rolling-window statistics shown on dashboards.
type Summary struct {
	Completed  int // days in the window with positive activity
	WindowDays int
	Rate       float64 // Completed / WindowDays
	Streak     int
	Trend      Trend
}

// reduceByDay collapses events to one value per day, last-wins.
func reduceByDay(events []Event) map[string]float64 {
	byDay := make(map[string]float64, len(events))
	for _, e := range events {
		byDay[e.Day.String()] = e.Value
	}
	return byDay
}

// BuildGrid lays events out on a calendar grid of weeksToShow weeks. Weeks
// are ordered most-recent-first; within a week, cells run Sunday through
// Saturday. The first cell of the grid is the Sunday that starts the week
// (weeksToShow-1) weeks before today's week, so the grid always holds
// exactly weeksToShow*7 contiguous days with no gaps. Days past today in the
// current week are present but flagged IsFuture; days with no event get a
// zero-value cell.
//
// weeksToShow < 1 yields an empty grid.
func BuildGrid(events []Event, weeksToShow int, today dateutil.Day) []Week {
	if weeksToShow < 1 {
		return nil
	}

	byDay := reduceByDay(events)
	start := today.AddDays(-((weeksToShow-1)*7 + int(today.Weekday())))

	weeks := make([]Week, 0, weeksToShow)
	for w := 0; w < weeksToShow; w++ {
		week := make(Week, 0, 7)
		for d := 0; d < 7; d++ {
			day := start.AddDays(w*7 + d)
			week = append(week, Cell{
				Day:      day,
				Value:    byDay[day.String()],
				IsToday:  day.Equal(today),
				IsFuture: day.After(today),
			})
		}
		weeks = append(weeks, week)
	}

	// Most recent week first
	for i, j := 0, len(weeks)-1; i < j; i, j = i+1, j-1 {
		weeks[i], weeks[j] = weeks[j], weeks[i]
	}

	return weeks
}

// ColorLevel buckets a value into 0..levels-1 intensity levels. Bucket 0 is
// reserved for zero (and negative) values; positive values map to
// ceil(value/maxValue*(levels-1)), clamped to the top bucket. A maxValue
// below 1 is treated as 1, and fewer than 2 levels collapse to on/off.
func ColorLevel(value, maxValue float64, levels int) int {
	if value <= 0 {
		return 0
	}
	if levels < 2 {
		return 1
	}
	if maxValue < 1 {
		maxValue = 1
	}

	level := int(math.Ceil(value / maxValue * float64(levels-1)))
	if level < 1 {
		level = 1
	}
	if level > levels-1 {
		level = levels - 1
	}
	return level
}

// MaxValue returns the largest event value, at least 1 so it can be fed
// straight into ColorLevel.
func MaxValue(events []Event) float64 {
	max := 1.0
	for _, v := range reduceByDay(events) {
		if v > max {
			max = v
		}
	}
	return max
}

// ComputeStreak counts the consecutive days with positive activity ending on
// today, walking backwards. A day counts only if its reduced value is
// positive. If today itself has no positive entry the streak is 0: the
// streak is "days in a row including today", not "days in a row as of
// yesterday".
func ComputeStreak(events []Event, today dateutil.Day) int {
	byDay := reduceByDay(events)

	streak := 0
	for day := today; byDay[day.String()] > 0; day = day.AddDays(-1) {
		streak++
	}
	return streak
}

// ComputeTrend splits the trailing windowDays days (ending on today) into
// two contiguous halves and compares their mean daily values. For odd
// windows the older half gets the extra day. Days without events count as
// zero, so a half with no activity has mean 0. Windows shorter than 2 days
// cannot be split and report flat.
func ComputeTrend(events []Event, windowDays int, today dateutil.Day) Trend {
	if windowDays < 2 {
		return Trend{Direction: TrendFlat}
	}

	byDay := reduceByDay(events)
	start := today.AddDays(-(windowDays - 1))
	olderLen := windowDays - windowDays/2

	var olderSum, newerSum float64
	for i := 0; i < windowDays; i++ {
		v := byDay[start.AddDays(i).String()]
		if i < olderLen {
			olderSum += v
		} else {
			newerSum += v
		}
	}

	olderMean := olderSum / float64(olderLen)
	newerMean := newerSum / float64(windowDays-olderLen)
	delta := newerMean - olderMean

	switch {
	case delta > 0:
		return Trend{Direction: TrendUp, Delta: delta}
	case delta < 0:
		return Trend{Direction: TrendDown, Delta: delta}
	default:
		return Trend{Direction: TrendFlat}
	}
}

// Summarize computes the rolling-window dashboard stats in one pass.
func Summarize(events []Event, windowDays int, today dateutil.Day) Summary {
	if windowDays < 1 {
		windowDays = 1
	}

	byDay := reduceByDay(events)
	start := today.AddDays(-(windowDays - 1))

	completed := 0
	for i := 0; i < windowDays; i++ {
		if byDay[start.AddDays(i).String()] > 0 {
			completed++
		}
	}

	return Summary{
		Completed:  completed,
		WindowDays: windowDays,
		Rate:       float64(completed) / float64(windowDays),
		Streak:     ComputeStreak(events, today),
		Trend:      ComputeTrend(events, windowDays, today),
	}
}
