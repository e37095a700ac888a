package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TickMsg:
		return m, tea.Batch(pollProgress(m.Client), tickCmd())
	case ProgressMsg:
		return m.handleProgress(msg)
	case ActionMsg:
		return m.handleAction(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "c", "C":
		m.Action = "continuing one chunk..."
		return m, triggerContinue(m.Client)
	case "a", "A":
		m.Action = "auto-continuing..."
		return m, triggerAutoContinue(m.Client)
	}
	return m, nil
}

// handleProgress stores the latest snapshot from the server
func (m Model) handleProgress(msg ProgressMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Connected = false
		m.Err = msg.Err
		return m, nil
	}
	m.Connected = true
	m.Err = nil
	m.Snapshot = *msg.Snapshot
	return m, nil
}

// handleAction records the outcome of a user-triggered request
func (m Model) handleAction(msg ActionMsg) (tea.Model, tea.Cmd) {
	m.Action = ""
	if msg.Err != nil {
		m.Err = msg.Err
	}
	return m, nil
}
