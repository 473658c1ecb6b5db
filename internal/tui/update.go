package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case CalculationCompleteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			m.current = nil
			return m, nil
		}
		m.err = nil
		current := m.metrics.CalculateMetrics(m.scenario.Name, msg.Result)
		if m.base == nil {
			base := current
			m.base = &base
		}
		current = m.metrics.CalculateComparison(current, *m.base)
		m.current = &current
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.SupportA):
		m.overrides.SupportA = cycleOverride(m.overrides.SupportA)
		return m.recalculate()

	case key.Matches(msg, m.keys.SupportB):
		m.overrides.SupportB = cycleOverride(m.overrides.SupportB)
		return m.recalculate()

	case key.Matches(msg, m.keys.NextYear), key.Matches(msg, m.keys.PrevYear):
		delta := 1
		if key.Matches(msg, m.keys.PrevYear) {
			delta = -1
		}
		year := m.stepYear(delta)
		if year == m.year {
			return m, nil
		}
		m.year = year
		return m.recalculate()

	case key.Matches(msg, m.keys.Reset):
		m.overrides = m.initialOverrides()
		m.year = m.startYear
		return m.recalculate()
	}

	return m, nil
}
