package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % stateCount
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + stateCount) % stateCount
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
		case key.Matches(msg, m.keys.Up):
			if m.state == StateToday && m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.state == StateToday && m.cursor < len(m.habits)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Enter):
			if m.state == StateToday {
				m.toggleSelected()
			}
		}
	}

	return m, nil
}
