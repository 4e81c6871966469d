package model

import (
	"sync"
	"time"
)

// Speaker identifies who produced a turn.
type Speaker string

const (
	SpeakerUser  Speaker = "user"
	SpeakerModel Speaker = "model"
)

// ChatTurn is one message in the conversation. Treat it as a value: a turn is
// never edited after it has been appended to a log.
type ChatTurn struct {
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// UserTurn builds a turn spoken by the learner.
func UserTurn(text string) ChatTurn {
	return ChatTurn{Speaker: SpeakerUser, Text: text, Timestamp: time.Now()}
}

// ModelTurn builds a turn spoken by the tutor.
func ModelTurn(text string) ChatTurn {
	return ChatTurn{Speaker: SpeakerModel, Text: text, Timestamp: time.Now()}
}

// ConversationLog is the ordered, append-only record of a chat.
//
// Appends are serialized, so concurrent in-flight requests can each append
// their reply safely; the relative order of those replies is whatever order
// they complete in.
type ConversationLog struct {
	mu    sync.RWMutex
	turns []ChatTurn
}

// NewConversationLog creates a log seeded with the given turns.
func NewConversationLog(turns ...ChatTurn) *ConversationLog {
	l := &ConversationLog{}
	l.turns = append(l.turns, turns...)
	return l
}

// Append adds turns to the end of the log.
func (l *ConversationLog) Append(turns ...ChatTurn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, turns...)
}

// Turns returns a snapshot copy of the log.
func (l *ConversationLog) Turns() []ChatTurn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]ChatTurn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len returns the number of turns.
func (l *ConversationLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}

// Last returns the most recent turn spoken by speaker.
func (l *ConversationLog) Last(speaker Speaker) (ChatTurn, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.turns) - 1; i >= 0; i-- {
		if l.turns[i].Speaker == speaker {
			return l.turns[i], true
		}
	}
	return ChatTurn{}, false
}
