// Package provider implements the tutoring backends behind model.Provider.
//
// EnglishHero can talk to several LLM backends through one interface. The
// default is the Gemini generateContent REST endpoint; the official Gemini,
// OpenAI, Anthropic and Ollama SDKs are available for users who prefer a
// different model.
//
// # Retries
//
// Every backend is built on an *http.Client whose transport is
// transport.Transport, and SDK-level retries are switched off. Throttling
// (HTTP 429) and connection failures are therefore retried the same way
// regardless of the backend; everything else is returned as-is.
//
// # Errors
//
// Implementations map upstream failures onto the model error taxonomy:
//   - a non-2xx answer becomes *model.StatusError
//   - a 2xx answer without candidate text becomes model.ErrNoContent
//   - anything else (network, decode, cancellation) is returned wrapped
//
// # Usage
//
//	cfg := provider.Config{
//	    Type:       provider.ProviderTypeGemini,
//	    Model:      provider.DefaultGeminiModel,
//	    APIKey:     os.Getenv("GEMINI_API_KEY"),
//	    HTTPClient: transport.NewClient(transport.DefaultRetryPolicy()),
//	}
//	p, err := provider.NewProvider(cfg)
//	if err != nil {
//	    // handle error
//	}
//	text, err := p.Generate(ctx, req)
package provider

import "net/http"

// Note: The Provider interface is defined in the model package
// (model/provider.go) to avoid import cycles. This package implements model.Provider.

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeGemini     ProviderType = "gemini"
	ProviderTypeGeminiSDK  ProviderType = "gemini-sdk"
	ProviderTypeOllama     ProviderType = "ollama"
	ProviderTypeOpenRouter ProviderType = "openrouter"
	ProviderTypeOpenAI     ProviderType = "openai"
	ProviderTypeAnthropic  ProviderType = "anthropic"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // Unused for Ollama

	// HTTPClient carries the retry transport. nil means a client with the
	// default retry policy.
	HTTPClient *http.Client
}
