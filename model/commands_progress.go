package model

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ToggleProgress flips the completion mark of a topic.
func (m *Model) ToggleProgress(title string) tea.Cmd {
	if m.Progress == nil {
		return nil
	}
	progress := m.Progress
	return func() tea.Msg {
		done, err := progress.Toggle(title)
		return ProgressToggledMsg{Title: title, Done: done, Err: err}
	}
}

// ResetProgress clears every completion mark.
func (m *Model) ResetProgress() tea.Cmd {
	if m.Progress == nil {
		return nil
	}
	progress := m.Progress
	return func() tea.Msg {
		return ProgressResetMsg{Err: progress.Reset()}
	}
}

// IsComplete reports whether title is marked done.
func (m *Model) IsComplete(title string) bool {
	return m.Progress != nil && m.Progress.IsComplete(title)
}

// Percent is the share of the course completed.
func (m *Model) Percent(total int) int {
	if m.Progress == nil {
		return 0
	}
	return m.Progress.Percent(total)
}
