package tui

import (
	"fmt"
	"strings"
)

const (
	progressBarWidth = 30
	previewWidth     = 80
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("🌐 Survey Translator Progress"))
	b.WriteString("\n\n")

	// Current status
	b.WriteString(m.getStatusText())
	b.WriteString("\n\n")

	// Progress bar
	if m.Connected && m.Snapshot.TotalQuestions > 0 {
		b.WriteString(renderProgressBar(m.Snapshot.CurrentQuestion, m.Snapshot.TotalQuestions))
		b.WriteString("\n")
	}

	// Latest per-question detail
	if m.Snapshot.DetectedLanguage != "" {
		detail := fmt.Sprintf("🔎 Row %d: %s (%d%%)",
			m.Snapshot.CurrentRow, m.Snapshot.DetectedLanguage, m.Snapshot.Confidence)
		b.WriteString(InfoStyle.Render(detail))
		b.WriteString("\n")
		if m.Snapshot.Translation != "" {
			b.WriteString(InfoStyle.Render("   → " + truncate(m.Snapshot.Translation, previewWidth)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	// Pending action / errors
	if m.Action != "" {
		b.WriteString(StatusStyle.Render(m.Action))
		b.WriteString("\n")
	}
	if m.Err != nil && m.Connected {
		b.WriteString(ErrorStyle.Render("Error: " + m.Err.Error()))
		b.WriteString("\n")
	}

	// Help text
	b.WriteString(InfoStyle.Render("Press 'c' to continue one chunk | 'a' to auto-continue | 'q' to quit"))
	b.WriteString("\n")

	return b.String()
}

// truncate shortens s to at most max runes, never splitting a
// multi-byte character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// renderProgressBar draws a fixed-width bar with counts.
func renderProgressBar(current, total int) string {
	if current > total {
		current = total
	}
	filled := 0
	if total > 0 {
		filled = current * progressBarWidth / total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
	return fmt.Sprintf("%s %d/%d", StatusStyle.Render(bar), current, total)
}
