package model

import (
	"context"
	"errors"
	"fmt"
)

// Provider abstracts the upstream tutoring backends (Gemini, OpenAI, Anthropic,
// Ollama) using the provider-agnostic types of this package.
//
// This interface is defined in the model package (not provider package) to avoid
// import cycles: provider implementations import model, and the assembler and
// UI can hold a Provider without importing the provider package.
type Provider interface {
	// Generate sends one request and returns the text of the first candidate.
	Generate(ctx context.Context, req Request) (string, error)

	// GetModel returns the model name used for API calls.
	GetModel() string

	// Ping checks that the provider is reachable and the credential is accepted.
	Ping(ctx context.Context) error
}

// Request is the provider-agnostic payload of a single tutoring call.
// Persona travels out-of-band; Turns are sent in order, the new user turn last.
type Request struct {
	Persona string
	Turns   []ChatTurn
}

// ErrNoContent is returned when the upstream answered successfully but the
// response carries no usable candidate text.
var ErrNoContent = errors.New("upstream response contained no candidate text")

// StatusError is returned when the upstream answered with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream request failed with status %d: %s", e.StatusCode, e.Body)
}

// IsUpstreamRejection reports whether err means the upstream responded but
// gave nothing usable, as opposed to the call itself failing.
func IsUpstreamRejection(err error) bool {
	if errors.Is(err, ErrNoContent) {
		return true
	}
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}
