package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/dateutil"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/stats"
	"github.com/julianstephens/pulse/internal/storage"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHeatmap
	StateReminders

	stateCount
)

type Model struct {
	store storage.Provider
	state SessionState
	keys  KeyMap
	help  help.Model

	habits    []models.Habit
	doneToday map[string]models.HabitEntry
	cursor    int

	heatmap string
	summary string

	reminders []models.Reminder
	lastFired map[string]string

	errMsg   string
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider) Model {
	m := Model{
		store: store,
		state: StateToday,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads everything shown on the dashboard from storage.
func (m *Model) refresh() {
	m.errMsg = ""
	m.loadToday()
	m.loadHeatmap()
	m.loadReminders()
}

func (m *Model) loadToday() {
	habits, err := m.store.GetAllHabits(false, false)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.habits = habits
	if m.cursor >= len(habits) {
		m.cursor = 0
	}

	today := time.Now().Format(constants.DateFormat)
	entries, err := m.store.GetHabitEntriesForDay(today)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	m.doneToday = make(map[string]models.HabitEntry, len(entries))
	for _, entry := range entries {
		m.doneToday[entry.HabitID] = entry
	}
}

func (m *Model) loadHeatmap() {
	settings, err := m.store.GetSettings()
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	weeks := settings.HeatmapWeeks
	if weeks < 1 {
		weeks = constants.DefaultHeatmapWeeks
	}
	levels := settings.HeatmapLevels
	if levels < 2 {
		levels = constants.DefaultHeatmapLevels
	}
	window := settings.TrendWindowDays
	if window < 2 {
		window = constants.DefaultTrendWindowDays
	}

	today := dateutil.DayOf(time.Now())
	startDay := today.AddDays(-(weeks*7 - 1)).String()

	events, err := cli.AllHabitEvents(m.store, startDay, today.String())
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	grid := stats.BuildGrid(events, weeks, today)
	m.heatmap = stats.RenderGrid(grid, stats.MaxValue(events), levels)
	m.summary = stats.RenderSummary(stats.Summarize(events, window, today))
}

func (m *Model) loadReminders() {
	reminders, err := m.store.GetAllReminders()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.reminders = reminders

	m.lastFired = make(map[string]string, len(reminders))
	for _, r := range reminders {
		if day, err := m.store.GetLastFired(r.ID); err == nil {
			m.lastFired[r.ID] = day
		}
	}
}

// toggleSelected toggles today's entry for the habit under the cursor.
func (m *Model) toggleSelected() {
	if m.cursor < 0 || m.cursor >= len(m.habits) {
		return
	}
	habit := m.habits[m.cursor]
	today := time.Now().Format(constants.DateFormat)

	if entry, ok := m.doneToday[habit.ID]; ok {
		if err := m.store.DeleteHabitEntry(entry.ID); err != nil {
			m.errMsg = err.Error()
			return
		}
	} else {
		entry := models.HabitEntry{
			ID:        uuid.New().String(),
			HabitID:   habit.ID,
			Day:       today,
			Value:     1,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := m.store.AddHabitEntry(entry); err != nil {
			m.errMsg = err.Error()
			return
		}
	}

	m.loadToday()
	m.loadHeatmap()
}
