package provider

import (
	"fmt"
	"net/http"
	"strings"

	"englishhero/model"
	"englishhero/transport"
)

// NewProvider creates a provider based on configuration.
//
// This is the centralized factory function for creating any provider type.
// It dispatches to the provider constructor matching Config.Type and hands
// every constructor the same retrying HTTP client.
//
// Returns an error if:
//   - The provider type is unknown
//   - The provider-specific constructor fails (e.g., missing API key, invalid URL)
//
// Example:
//
//	cfg := provider.Config{
//	    Type:   provider.ProviderTypeGemini,
//	    APIKey: apiKey,
//	}
//	p, err := provider.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewProvider(cfg Config) (model.Provider, error) {
	client := cfg.HTTPClient
	if client == nil {
		client = transport.NewClient(transport.DefaultRetryPolicy())
	}

	switch cfg.Type {
	case ProviderTypeGemini:
		return NewGeminiProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, client)
	case ProviderTypeGeminiSDK:
		return NewGenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, client)
	case ProviderTypeOllama:
		return NewOllamaProvider(cfg.BaseURL, cfg.Model, client)
	case ProviderTypeOpenRouter:
		return NewOpenRouterProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, client)
	case ProviderTypeOpenAI:
		return NewOpenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, client)
	case ProviderTypeAnthropic:
		return NewAnthropicProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, client)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}

// MapProviderIDToType converts a config provider ID to a factory ProviderType.
//
// Mappings:
//   - "" or "gemini" → ProviderTypeGemini
//   - "gemini-sdk" or "genai" → ProviderTypeGeminiSDK
//   - "ollama" → ProviderTypeOllama
//   - "openrouter" → ProviderTypeOpenRouter
//   - "openai" → ProviderTypeOpenAI
//   - "anthropic" or "claude" → ProviderTypeAnthropic
//
// For unknown IDs, returns the ID cast as ProviderType (factory will error).
func MapProviderIDToType(id string) ProviderType {
	switch id {
	case "", "gemini":
		return ProviderTypeGemini
	case "gemini-sdk", "genai":
		return ProviderTypeGeminiSDK
	case "ollama":
		return ProviderTypeOllama
	case "openrouter":
		return ProviderTypeOpenRouter
	case "openai":
		return ProviderTypeOpenAI
	case "anthropic", "claude":
		return ProviderTypeAnthropic
	default:
		// Fallback: pass ID as-is (factory will return error)
		return ProviderType(id)
	}
}

// RequiresAPIKey reports whether the provider type needs a credential.
func RequiresAPIKey(t ProviderType) bool {
	return t != ProviderTypeOllama
}

// statusError builds a *model.StatusError from a raw response body.
func statusError(code int, body []byte) error {
	const limit = 512
	if len(body) > limit {
		body = body[:limit]
	}
	// the cut may split a multi-byte rune; drop the partial tail
	return &model.StatusError{StatusCode: code, Body: strings.ToValidUTF8(string(body), "")}
}

func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
