package tui

import (
	"fmt"

	"surveytranslator/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI watcher state (thin client over the API)
type Model struct {
	// Translator API client
	Client *BatchClient

	// Local UI state (synced from the server)
	Snapshot types.ProgressSnapshot
	Err      error
	Action   string

	// Connection status
	Connected bool
}

// NewModel creates a new TUI model
func NewModel(serverURL string) Model {
	return Model{
		Client: NewBatchClient(serverURL),
		Snapshot: types.ProgressSnapshot{
			Status: types.ProgressIdle,
		},
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	// Start polling immediately
	return tea.Batch(
		pollProgress(m.Client),
		tickCmd(),
	)
}

// getStatusText returns the appropriate status message
func (m Model) getStatusText() string {
	if !m.Connected {
		return ErrorStyle.Render("❌ Not connected to translator server")
	}

	switch m.Snapshot.Status {
	case types.ProgressIdle:
		return HighlightStyle.Render("👋 Waiting for a batch") + "\n\n" +
			InfoStyle.Render("Upload questions via the API, then press 'a' to drain")
	case types.ProgressReading:
		return StatusStyle.Render("📄 " + m.Snapshot.Message)
	case types.ProgressProcessingBatch, types.ProgressProcessingQuestion:
		return StatusStyle.Render("⏳ " + m.Snapshot.Message)
	case types.ProgressBatchCompleted:
		return StatusStyle.Render(fmt.Sprintf("🔁 %s — press 'c' or 'a' to continue", m.Snapshot.Message))
	case types.ProgressCompleted:
		return HighlightStyle.Render("✅ " + m.Snapshot.Message)
	case types.ProgressTimeout:
		return ErrorStyle.Render("⏰ " + m.Snapshot.Message)
	case types.ProgressError:
		return ErrorStyle.Render("❌ " + m.Snapshot.Message)
	default:
		return InfoStyle.Render(m.Snapshot.Message)
	}
}
