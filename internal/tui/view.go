package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pulse/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateHeatmap:
		content = m.viewHeatmap()
	case StateReminders:
		content = m.viewReminders()
	}

	sections := []string{m.viewTabs(), content}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render("Error: "+m.errMsg))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Heatmap", "Reminders"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Habits for %s", time.Now().Format(constants.DateFormat))))
	b.WriteString("\n\n")

	if len(m.habits) == 0 {
		b.WriteString(dimStyle.Render("No habits yet. Add one with 'pulse habit add'."))
		b.WriteString("\n")
		return docStyle.Render(b.String())
	}

	recorded := 0
	for i, habit := range m.habits {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		status := "[ ]"
		detail := ""
		if entry, ok := m.doneToday[habit.ID]; ok && entry.Value > 0 {
			status = "[x]"
			recorded++
			if habit.Unit != "" {
				detail = dimStyle.Render(fmt.Sprintf("  %v %s", entry.Value, habit.Unit))
			}
		}

		fmt.Fprintf(&b, "%s%s %s%s\n", cursor, status, habit.Name, detail)
	}

	fmt.Fprintf(&b, "\nRecorded: %d/%d\n", recorded, len(m.habits))
	return docStyle.Render(b.String())
}

func (m Model) viewHeatmap() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Activity"))
	b.WriteString("\n\n")
	if m.heatmap == "" {
		b.WriteString(dimStyle.Render("No activity to show yet."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.heatmap)
		b.WriteString("\n")
		b.WriteString(m.summary)
	}
	return docStyle.Render(b.String())
}

func (m Model) viewReminders() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Reminders"))
	b.WriteString("\n\n")

	if len(m.reminders) == 0 {
		b.WriteString(dimStyle.Render("No reminders. Add one with 'pulse reminder add'."))
		b.WriteString("\n")
		return docStyle.Render(b.String())
	}

	for _, r := range m.reminders {
		status := "on "
		if !r.Enabled {
			status = "off"
		}
		lastFired := m.lastFired[r.ID]
		if lastFired == "" {
			lastFired = "never"
		}
		fmt.Fprintf(&b, "[%s] %-30s %-28s last fired: %s\n",
			status, r.Title, r.FormatSchedule(), lastFired)
	}

	return docStyle.Render(b.String())
}
