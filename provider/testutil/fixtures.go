package testutil

import (
	"encoding/json"

	"englishhero/model"
)

// TestHistory returns a short prior conversation: a greeting exchange.
func TestHistory() []model.ChatTurn {
	return []model.ChatTurn{
		model.UserTurn("Hi"),
		model.ModelTurn("Hello!"),
	}
}

// LongHistory returns a conversation with n alternating turns.
func LongHistory(n int) []model.ChatTurn {
	turns := make([]model.ChatTurn, 0, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			turns = append(turns, model.UserTurn("question"))
		} else {
			turns = append(turns, model.ModelTurn("answer"))
		}
	}
	return turns
}

// SingleUserRequest returns a request with one user turn.
func SingleUserRequest(persona, text string) model.Request {
	return model.Request{
		Persona: persona,
		Turns:   []model.ChatTurn{model.UserTurn(text)},
	}
}

// GeminiReply is a canonical successful generateContent body.
func GeminiReply(text string) string {
	quoted, _ := json.Marshal(text)
	return `{"candidates":[{"content":{"role":"model","parts":[{"text":` + string(quoted) + `}]}}]}`
}
