package model

import (
	"context"

	"englishhero/config"
	"englishhero/storage"
)

// Tutor is the conversation assembler as the app sees it.
//
// It is declared here, like Provider, so the tutor package can depend on
// model without a cycle.
type Tutor interface {
	SendTurn(ctx context.Context, history []ChatTurn, newUserText string) ChatTurn
	StartTopicPractice(ctx context.Context, title, description string) ChatTurn
	Greeting() ChatTurn
	Announce(title string) ChatTurn
}

// Model holds the core application data and business logic state
type Model struct {
	// Core dependencies
	Config      *config.Config
	Tutor       Tutor
	ModelName   string
	Transcripts *storage.TranscriptStorage
	SearchIndex *storage.SearchIndex
	Progress    *storage.Progress

	// Application data
	Log        *ConversationLog
	Transcript *storage.Transcript

	// Runtime state (not UI)
	Pending         int
	TranscriptDirty bool
	Quitting        bool

	Version string
}

// NewModel creates a new Model. The conversation resumes from last when it
// has messages; otherwise it opens with the tutor's greeting.
func NewModel(cfg *config.Config, tutor Tutor, modelName string, transcripts *storage.TranscriptStorage, progress *storage.Progress, last *storage.Transcript, version string) *Model {
	m := &Model{
		Config:      cfg,
		Tutor:       tutor,
		ModelName:   modelName,
		Transcripts: transcripts,
		Progress:    progress,
		Version:     version,
	}
	if transcripts != nil {
		m.SearchIndex = storage.NewSearchIndex(transcripts)
	}

	if last != nil && len(last.Messages) > 0 {
		m.Log = NewConversationLog(TurnsFromMessages(last.Messages)...)
		m.Transcript = last
		if config.DebugLog != nil {
			config.DebugLog.Debug().Str("transcript", last.ID).Int("turns", m.Log.Len()).Msg("resumed transcript")
		}
	} else {
		m.Log = NewConversationLog(tutor.Greeting())
	}

	return m
}

// Busy reports whether a tutor request is in flight.
func (m *Model) Busy() bool {
	return m.Pending > 0
}

// requestContext bounds one tutor call by tutor.request_timeout, when set.
func (m *Model) requestContext() (context.Context, context.CancelFunc) {
	if m.Config != nil && m.Config.RequestTimeout > 0 {
		return context.WithTimeout(context.Background(), m.Config.RequestTimeout)
	}
	return context.WithCancel(context.Background())
}

// TurnsFromMessages converts stored messages back into chat turns.
func TurnsFromMessages(messages []storage.Message) []ChatTurn {
	turns := make([]ChatTurn, 0, len(messages))
	for _, msg := range messages {
		turns = append(turns, ChatTurn{
			Speaker:   Speaker(msg.Speaker),
			Text:      msg.Text,
			Timestamp: msg.Timestamp,
		})
	}
	return turns
}

// MessagesFromTurns converts chat turns into their stored form.
func MessagesFromTurns(turns []ChatTurn) []storage.Message {
	messages := make([]storage.Message, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, storage.Message{
			Speaker:   string(t.Speaker),
			Text:      t.Text,
			Timestamp: t.Timestamp,
		})
	}
	return messages
}
