package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pollProgress creates a command to fetch the current snapshot.
func pollProgress(client *BatchClient) tea.Cmd {
	return func() tea.Msg {
		snap, err := client.GetProgress()
		return ProgressMsg{
			Snapshot: snap,
			Err:      err,
		}
	}
}

// triggerAutoContinue creates a command that drains the live batch.
func triggerAutoContinue(client *BatchClient) tea.Cmd {
	return func() tea.Msg {
		return ActionMsg{Name: "auto-continue", Err: client.AutoContinue()}
	}
}

// triggerContinue creates a command that advances one chunk.
func triggerContinue(client *BatchClient) tea.Cmd {
	return func() tea.Msg {
		return ActionMsg{Name: "continue", Err: client.Continue()}
	}
}

// tickCmd creates a command that ticks every 500ms for polling
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
