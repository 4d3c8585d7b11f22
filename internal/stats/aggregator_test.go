package stats

import (
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/pulse/internal/dateutil"
)

func day(t *testing.T, s string) dateutil.Day {
	t.Helper()
	d, err := dateutil.ParseDay(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func ev(t *testing.T, s string, v float64) Event {
	t.Helper()
	return Event{Day: day(t, s), Value: v}
}

func TestBuildGrid_Dimensions(t *testing.T) {
	tests := []struct {
		name  string
		weeks int
		today string
	}{
		{name: "single week, midweek today", weeks: 1, today: "2024-03-13"}, // a Wednesday
		{name: "four weeks", weeks: 4, today: "2024-03-13"},
		{name: "today on Sunday", weeks: 2, today: "2024-03-10"},
		{name: "today on Saturday", weeks: 3, today: "2024-03-16"},
		{name: "year boundary", weeks: 6, today: "2024-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			today := day(t, tt.today)
			grid := BuildGrid(nil, tt.weeks, today)

			if len(grid) != tt.weeks {
				t.Fatalf("expected %d weeks, got %d", tt.weeks, len(grid))
			}

			// Each week has exactly 7 cells, Sunday first, contiguous days
			// across the whole grid with the oldest week last.
			var prev dateutil.Day
			for w := len(grid) - 1; w >= 0; w-- {
				week := grid[w]
				if len(week) != 7 {
					t.Fatalf("week %d has %d cells", w, len(week))
				}
				if week[0].Day.Weekday() != time.Sunday {
					t.Errorf("week %d starts on %v, want Sunday", w, week[0].Day.Weekday())
				}
				for _, cell := range week {
					if !prev.IsZero() && !cell.Day.Equal(prev.AddDays(1)) {
						t.Errorf("gap in grid: %v follows %v", cell.Day, prev)
					}
					prev = cell.Day
				}
			}

			// The last cell of the top (most recent) week is the Saturday of
			// today's week; the last non-future cell is today.
			last := grid[0][6]
			if last.Day.Weekday() != time.Saturday {
				t.Errorf("grid ends on %v, want Saturday", last.Day.Weekday())
			}
			var lastPast dateutil.Day
			foundToday := false
			for _, cell := range grid[0] {
				if !cell.IsFuture {
					lastPast = cell.Day
				}
				if cell.IsToday {
					foundToday = true
					if cell.IsFuture {
						t.Error("today must not be flagged future")
					}
				}
			}
			if !lastPast.Equal(today) {
				t.Errorf("last non-future cell is %v, want %v", lastPast, today)
			}
			if !foundToday {
				t.Error("no cell flagged IsToday")
			}
		})
	}
}

func TestBuildGrid_ZeroFillAndValues(t *testing.T) {
	today := day(t, "2024-03-13") // Wednesday
	events := []Event{
		ev(t, "2024-03-11", 3),
		ev(t, "2024-03-13", 1),
	}

	grid := BuildGrid(events, 1, today)
	week := grid[0]

	wantValues := map[string]float64{
		"2024-03-10": 0,
		"2024-03-11": 3,
		"2024-03-12": 0,
		"2024-03-13": 1,
	}
	for _, cell := range week {
		if want, ok := wantValues[cell.Day.String()]; ok && cell.Value != want {
			t.Errorf("cell %s = %v, want %v", cell.Day, cell.Value, want)
		}
	}

	// Thursday through Saturday are future and zero-valued
	for _, cell := range week[4:] {
		if !cell.IsFuture {
			t.Errorf("cell %s should be future", cell.Day)
		}
		if cell.Value != 0 {
			t.Errorf("future cell %s has value %v", cell.Day, cell.Value)
		}
	}
}

func TestBuildGrid_DuplicateDaysLastWins(t *testing.T) {
	today := day(t, "2024-03-13")
	events := []Event{
		ev(t, "2024-03-12", 5),
		ev(t, "2024-03-12", 2), // last one wins
	}

	grid := BuildGrid(events, 1, today)
	for _, cell := range grid[0] {
		if cell.Day.String() == "2024-03-12" && cell.Value != 2 {
			t.Errorf("duplicate day resolved to %v, want 2 (last wins)", cell.Value)
		}
	}
}

func TestBuildGrid_Deterministic(t *testing.T) {
	today := day(t, "2024-03-13")
	events := []Event{
		ev(t, "2024-03-01", 1),
		ev(t, "2024-03-05", 4),
		ev(t, "2024-03-12", 2),
	}

	a := BuildGrid(events, 4, today)
	b := BuildGrid(events, 4, today)
	if !reflect.DeepEqual(a, b) {
		t.Error("BuildGrid is not deterministic for identical inputs")
	}
}

func TestBuildGrid_InvalidWeeks(t *testing.T) {
	if grid := BuildGrid(nil, 0, day(t, "2024-03-13")); grid != nil {
		t.Errorf("expected nil grid for weeksToShow=0, got %d weeks", len(grid))
	}
}

func TestColorLevel(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		max    float64
		levels int
		want   int
	}{
		{name: "zero is always bucket 0", value: 0, max: 10, levels: 5, want: 0},
		{name: "negative is bucket 0", value: -3, max: 10, levels: 5, want: 0},
		{name: "max value is top bucket", value: 10, max: 10, levels: 5, want: 4},
		{name: "above max clamps to top", value: 25, max: 10, levels: 5, want: 4},
		{name: "small positive rounds up to 1", value: 0.1, max: 10, levels: 5, want: 1},
		{name: "midrange", value: 5, max: 10, levels: 5, want: 2},
		{name: "max below 1 substituted", value: 1, max: 0, levels: 5, want: 4},
		{name: "two levels is on/off", value: 3, max: 10, levels: 2, want: 1},
		{name: "degenerate level count", value: 3, max: 10, levels: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorLevel(tt.value, tt.max, tt.levels); got != tt.want {
				t.Errorf("ColorLevel(%v, %v, %d) = %d, want %d", tt.value, tt.max, tt.levels, got, tt.want)
			}
		})
	}
}

func TestMaxValue(t *testing.T) {
	if got := MaxValue(nil); got != 1 {
		t.Errorf("MaxValue(nil) = %v, want 1", got)
	}

	events := []Event{ev(t, "2024-01-01", 3), ev(t, "2024-01-02", 7)}
	if got := MaxValue(events); got != 7 {
		t.Errorf("MaxValue() = %v, want 7", got)
	}
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		today  string
		want   int
	}{
		{
			name:   "no events",
			events: nil,
			today:  "2024-01-03",
			want:   0,
		},
		{
			name: "zero-value day breaks the run",
			events: []Event{
				ev(t, "2024-01-01", 1),
				ev(t, "2024-01-02", 0),
				ev(t, "2024-01-03", 2),
			},
			today: "2024-01-03",
			want:  1,
		},
		{
			name: "unbroken run",
			events: []Event{
				ev(t, "2024-01-01", 1),
				ev(t, "2024-01-02", 3),
				ev(t, "2024-01-03", 2),
			},
			today: "2024-01-03",
			want:  3,
		},
		{
			name: "today empty means streak 0",
			events: []Event{
				ev(t, "2024-01-01", 1),
				ev(t, "2024-01-02", 1),
			},
			today: "2024-01-03",
			want:  0,
		},
		{
			name: "only today",
			events: []Event{
				ev(t, "2024-01-03", 1),
			},
			today: "2024-01-03",
			want:  1,
		},
		{
			name: "streak crosses month boundary",
			events: []Event{
				ev(t, "2024-01-31", 1),
				ev(t, "2024-02-01", 1),
			},
			today: "2024-02-01",
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeStreak(tt.events, day(t, tt.today)); got != tt.want {
				t.Errorf("ComputeStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeTrend(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		window int
		today  string
		want   TrendDirection
	}{
		{
			name: "increasing activity trends up",
			events: []Event{
				ev(t, "2024-01-05", 1),
				ev(t, "2024-01-06", 2),
				ev(t, "2024-01-07", 3),
				ev(t, "2024-01-08", 4),
			},
			window: 8,
			today:  "2024-01-08",
			want:   TrendUp,
		},
		{
			name: "fading activity trends down",
			events: []Event{
				ev(t, "2024-01-01", 4),
				ev(t, "2024-01-02", 3),
			},
			window: 8,
			today:  "2024-01-08",
			want:   TrendDown,
		},
		{
			name:   "no activity is flat",
			events: nil,
			window: 14,
			today:  "2024-01-08",
			want:   TrendFlat,
		},
		{
			name: "balanced halves are flat",
			events: []Event{
				ev(t, "2024-01-02", 2),
				ev(t, "2024-01-06", 2),
			},
			window: 8,
			today:  "2024-01-08",
			want:   TrendFlat,
		},
		{
			name:   "window too small is flat",
			events: []Event{ev(t, "2024-01-08", 5)},
			window: 1,
			today:  "2024-01-08",
			want:   TrendFlat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTrend(tt.events, tt.window, day(t, tt.today))
			if got.Direction != tt.want {
				t.Errorf("ComputeTrend() = %s (delta %v), want %s", got.Direction, got.Delta, tt.want)
			}
		})
	}
}

func TestComputeTrend_OddWindowSplit(t *testing.T) {
	// 7-day window: older half gets 4 days, newer half 3. One unit on the
	// extra older day must weigh less per-day than one unit in the newer
	// half.
	today := day(t, "2024-01-07")
	events := []Event{
		ev(t, "2024-01-01", 1), // older half: days 1-4
		ev(t, "2024-01-07", 1), // newer half: days 5-7
	}

	got := ComputeTrend(events, 7, today)
	if got.Direction != TrendUp {
		t.Errorf("ComputeTrend() = %s, want up (1/3 > 1/4)", got.Direction)
	}
}

func TestSummarize(t *testing.T) {
	today := day(t, "2024-01-07")
	events := []Event{
		ev(t, "2024-01-05", 1),
		ev(t, "2024-01-06", 2),
		ev(t, "2024-01-07", 1),
	}

	s := Summarize(events, 7, today)
	if s.Completed != 3 {
		t.Errorf("Completed = %d, want 3", s.Completed)
	}
	if s.WindowDays != 7 {
		t.Errorf("WindowDays = %d, want 7", s.WindowDays)
	}
	if s.Streak != 3 {
		t.Errorf("Streak = %d, want 3", s.Streak)
	}
	if s.Trend.Direction != TrendUp {
		t.Errorf("Trend = %s, want up", s.Trend.Direction)
	}
}
