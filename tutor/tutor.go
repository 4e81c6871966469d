// Package tutor assembles tutoring requests from the conversation log and
// folds the upstream answer, or its failure, back into a chat turn.
package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"englishhero/model"
)

// DefaultPersona steers the upstream model towards a patient tutor for Thai
// beginners.
const DefaultPersona = "You are a friendly and encouraging English tutor for a Thai beginner student. " +
	"Explain things simply. If the user speaks Thai, reply in Thai with clear English examples. " +
	"If they try English, correct them gently and encourage them. Use emojis to be friendly."

// Fallback turns shown when a call produces nothing usable.
const (
	// FallbackNoContent is used when the upstream answered but gave no usable
	// candidate text, including non-2xx statuses and an exhausted 429.
	FallbackNoContent = "ขออภัยครับ ระบบขัดข้องชั่วคราว ลองใหม่อีกครั้งนะครับ (Sorry, I encountered an error.)"

	// FallbackConnection is used when the call itself failed.
	FallbackConnection = "เกิดข้อผิดพลาดในการเชื่อมต่อ (Connection error.)"
)

// GreetingText opens every fresh conversation.
const GreetingText = "สวัสดีครับ! ผมคือ AI Tutor ของคุณ ✨ มีอะไรให้ช่วยเรื่องภาษาอังกฤษไหมครับ? (Hi! I am your AI Tutor. How can I help?)"

// Greeting returns the opening tutor turn.
func Greeting() model.ChatTurn {
	return model.ModelTurn(GreetingText)
}

// Tutor sends conversation turns to a Provider. The zero Logger discards.
type Tutor struct {
	Provider model.Provider
	Persona  string
	Logger   zerolog.Logger
}

// New creates a Tutor. An empty persona selects DefaultPersona.
func New(p model.Provider, persona string) *Tutor {
	if strings.TrimSpace(persona) == "" {
		persona = DefaultPersona
	}
	return &Tutor{Provider: p, Persona: persona, Logger: zerolog.Nop()}
}

// BuildRequest lays out one call: persona out-of-band, history in order, then
// the new user text as the final turn. history must not already contain it.
func BuildRequest(history []model.ChatTurn, persona, newUserText string) model.Request {
	turns := make([]model.ChatTurn, 0, len(history)+1)
	turns = append(turns, history...)
	turns = append(turns, model.UserTurn(newUserText))
	return model.Request{Persona: persona, Turns: turns}
}

// SendTurn sends newUserText after history and returns the tutor's reply.
// It never fails: errors become one of the fallback turns. Callers are
// expected to have rejected empty input with ValidUserText.
func (t *Tutor) SendTurn(ctx context.Context, history []model.ChatTurn, newUserText string) model.ChatTurn {
	req := BuildRequest(history, t.Persona, newUserText)

	text, err := t.Provider.Generate(ctx, req)
	if err != nil {
		return t.fallback(err)
	}
	return model.ModelTurn(text)
}

func (t *Tutor) fallback(err error) model.ChatTurn {
	if model.IsUpstreamRejection(err) {
		t.Logger.Warn().Err(err).Str("model", t.Provider.GetModel()).Msg("upstream returned no usable content")
		return model.ModelTurn(FallbackNoContent)
	}
	t.Logger.Error().Err(err).Str("model", t.Provider.GetModel()).Msg("tutor request failed")
	return model.ModelTurn(FallbackConnection)
}

// PracticePrompt is the priming instruction for a topic practice session.
func PracticePrompt(title, description string) string {
	return fmt.Sprintf("The user is currently learning the topic: \"%s\". \nDescription: %s. \n"+
		"Please act as a teacher and start a simple practice session or roleplay related to this topic. "+
		"Ask the user a simple question to start.", title, description)
}

// PracticeAnnouncement is the local turn shown before a practice session starts.
func PracticeAnnouncement(title string) model.ChatTurn {
	return model.ModelTurn(fmt.Sprintf("✨ เยี่ยมเลย! เรามาฝึกเรื่อง \"%s\" กันครับ เดี๋ยวผมจะเริ่มถามคำถามง่ายๆ นะครับ... (Let's practice!)", title))
}

// StartTopicPractice asks the tutor to open a practice session on a topic.
// The priming call always goes out with an empty history so earlier chat
// does not bias the opening question.
func (t *Tutor) StartTopicPractice(ctx context.Context, title, description string) model.ChatTurn {
	return t.SendTurn(ctx, nil, PracticePrompt(title, description))
}

// Greeting returns the opening tutor turn.
func (t *Tutor) Greeting() model.ChatTurn {
	return Greeting()
}

// Announce returns the local turn shown before practicing title.
func (t *Tutor) Announce(title string) model.ChatTurn {
	return PracticeAnnouncement(title)
}

var _ model.Tutor = (*Tutor)(nil)

// ValidUserText reports whether s has something to send.
func ValidUserText(s string) bool {
	return strings.TrimSpace(s) != ""
}
