package tui

import (
	"time"

	"surveytranslator/types"
)

// Messages for the tea program (polling-based)

// ProgressMsg is sent when a progress snapshot arrives from the server.
type ProgressMsg struct {
	Snapshot *types.ProgressSnapshot
	Err      error
}

// TickMsg is sent periodically to trigger polling.
type TickMsg struct {
	Time time.Time
}

// ActionMsg is sent when a user-triggered request completes.
type ActionMsg struct {
	Name string
	Err  error
}
