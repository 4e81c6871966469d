package model

import (
	tea "github.com/charmbracelet/bubbletea"

	"englishhero/config"
)

// SendMessage appends the user's turn and asks the tutor for a reply.
//
// The history handed to the tutor is the log as it was before the new turn
// was appended; the tutor adds the new text as the final turn itself. The
// reply is appended when TutorReplyMsg is handled, so replies to several
// in-flight requests land in the order they complete.
func (m *Model) SendMessage(text string) tea.Cmd {
	log := m.Log
	history := log.Turns()
	log.Append(UserTurn(text))
	m.Pending++
	m.TranscriptDirty = true

	tutor := m.Tutor
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		if config.DebugLog != nil {
			config.DebugLog.Debug().Int("history", len(history)).Msg("sending tutor turn")
		}

		return TutorReplyMsg{Log: log, Turn: tutor.SendTurn(ctx, history, text)}
	}
}

// StartPractice shows the local announcement, then asks the tutor to open a
// practice session on the topic.
func (m *Model) StartPractice(title, description string) tea.Cmd {
	log := m.Log
	log.Append(m.Tutor.Announce(title))
	m.Pending++
	m.TranscriptDirty = true

	tutor := m.Tutor
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		if config.DebugLog != nil {
			config.DebugLog.Debug().Str("topic", title).Msg("starting topic practice")
		}

		return PracticeStartedMsg{Log: log, Title: title, Turn: tutor.StartTopicPractice(ctx, title, description)}
	}
}

// HandleReply records a tutor turn produced by SendMessage or StartPractice
// on the log the request was sent from. A reply for a conversation that has
// since been replaced does not touch the current one. A nil log means the
// current conversation.
func (m *Model) HandleReply(log *ConversationLog, turn ChatTurn) {
	if log == nil {
		log = m.Log
	}
	log.Append(turn)
	if m.Pending > 0 {
		m.Pending--
	}
	if log != m.Log {
		if config.DebugLog != nil {
			config.DebugLog.Debug().Msg("reply arrived for a replaced conversation")
		}
		return
	}
	m.TranscriptDirty = true
}
