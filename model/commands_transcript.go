package model

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"englishhero/config"
	"englishhero/storage"
)

// snapshot copies the current log into the transcript record.
func (m *Model) snapshot() *storage.Transcript {
	t := &storage.Transcript{}
	if m.Transcript != nil {
		copied := *m.Transcript
		t = &copied
	}
	t.Model = m.ModelName
	t.Messages = MessagesFromTurns(m.Log.Turns())
	return t
}

// SaveTranscript writes the conversation to disk and marks it as the one to
// resume on next launch.
func (m *Model) SaveTranscript() tea.Cmd {
	if m.Transcripts == nil {
		return nil
	}

	t := m.snapshot()
	m.TranscriptDirty = false
	store := m.Transcripts
	return func() tea.Msg {
		if err := store.Save(t); err != nil {
			return TranscriptSavedMsg{Err: err}
		}
		if err := store.SaveCurrentID(t.ID); err != nil {
			return TranscriptSavedMsg{Transcript: t, Err: fmt.Errorf("failed to record current transcript: %w", err)}
		}
		return TranscriptSavedMsg{Transcript: t}
	}
}

// HandleTranscriptSaved adopts the saved record so later saves update the
// same file. A failed save leaves the conversation dirty.
func (m *Model) HandleTranscriptSaved(msg TranscriptSavedMsg) {
	if msg.Transcript != nil && (m.Transcript == nil || m.Transcript.ID == "" || m.Transcript.ID == msg.Transcript.ID) {
		m.Transcript = msg.Transcript
	}
	if msg.Err != nil {
		m.TranscriptDirty = true
		if config.DebugLog != nil {
			config.DebugLog.Error().Err(msg.Err).Msg("failed to save transcript")
		}
	}
}

// AutoSaveTranscript saves only when something changed.
func (m *Model) AutoSaveTranscript() tea.Cmd {
	if !m.TranscriptDirty {
		return nil
	}
	return m.SaveTranscript()
}

// NewConversation starts over with just the greeting. The previous
// transcript stays on disk.
func (m *Model) NewConversation() {
	m.Log = NewConversationLog(m.Tutor.Greeting())
	m.Transcript = nil
	m.TranscriptDirty = false
}

func (m *Model) FetchTranscriptList() tea.Cmd {
	if m.Transcripts == nil {
		return nil
	}
	store := m.Transcripts
	return func() tea.Msg {
		list, err := store.List()
		return TranscriptsListMsg{Transcripts: list, Err: err}
	}
}

func (m *Model) LoadTranscript(id string) tea.Cmd {
	if m.Transcripts == nil {
		return nil
	}
	store := m.Transcripts
	return func() tea.Msg {
		t, err := store.Load(id)
		return TranscriptLoadedMsg{Transcript: t, Err: err}
	}
}

// HandleTranscriptLoaded replaces the conversation with a stored one.
func (m *Model) HandleTranscriptLoaded(t *storage.Transcript) {
	m.Transcript = t
	if len(t.Messages) == 0 {
		m.Log = NewConversationLog(m.Tutor.Greeting())
	} else {
		m.Log = NewConversationLog(TurnsFromMessages(t.Messages)...)
	}
	m.TranscriptDirty = false
	if m.Transcripts != nil {
		_ = m.Transcripts.SaveCurrentID(t.ID)
	}
}

func (m *Model) DeleteTranscript(id string) tea.Cmd {
	if m.Transcripts == nil {
		return nil
	}
	store := m.Transcripts
	return func() tea.Msg {
		return TranscriptDeletedMsg{ID: id, Err: store.Delete(id)}
	}
}

// SearchTranscripts looks for query in every saved transcript.
func (m *Model) SearchTranscripts(query string) tea.Cmd {
	if m.SearchIndex == nil {
		return nil
	}
	index := m.SearchIndex
	return func() tea.Msg {
		matches, err := index.Search(query)
		return SearchResultsMsg{Query: query, Matches: matches, Err: err}
	}
}
