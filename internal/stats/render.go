package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Intensity ramp for heatmap cells, level 0 (empty) to 4 (max).
	levelStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
	}

	futureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	todayStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func styleForLevel(level int) lipgloss.Style {
	if level < 0 {
		level = 0
	}
	if level >= len(levelStyles) {
		level = len(levelStyles) - 1
	}
	return levelStyles[level]
}

// RenderGrid renders a heatmap grid as rows of colored cells, one row per
// week, most recent week on top. Each row is prefixed with the date of its
// Sunday. Future days render as dimmed dots.
func RenderGrid(weeks []Week, maxValue float64, levels int) string {
	if len(weeks) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("       Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")

	for _, week := range weeks {
		if len(week) == 0 {
			continue
		}
		b.WriteString(labelStyle.Render(week[0].Day.Format("01/02")))
		b.WriteString("  ")

		for _, cell := range week {
			var s string
			switch {
			case cell.IsFuture:
				s = futureStyle.Render(" ·")
			case cell.Value <= 0:
				s = styleForLevel(0).Render(" ■")
			default:
				s = styleForLevel(ColorLevel(cell.Value, maxValue, levels)).Render(" ■")
			}
			if cell.IsToday {
				s = todayStyle.Render(s)
			}
			b.WriteString(s)
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderSummary renders the rolling-window stats as a short block of lines.
func RenderSummary(s Summary) string {
	arrow := "→"
	switch s.Trend.Direction {
	case TrendUp:
		arrow = "↑"
	case TrendDown:
		arrow = "↓"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Streak:     %d day(s)\n", s.Streak)
	fmt.Fprintf(&b, "Completion: %d/%d (%.0f%%)\n", s.Completed, s.WindowDays, s.Rate*100)
	fmt.Fprintf(&b, "Trend:      %s %s (%+.2f/day)\n", arrow, s.Trend.Direction, s.Trend.Delta)
	return b.String()
}
