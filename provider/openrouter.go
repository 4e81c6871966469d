package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"

	"englishhero/model"
)

// OpenRouterProvider implements model.Provider using OpenAI's official Go SDK.
// It connects to OpenRouter's API which is 100% OpenAI-compatible.
type OpenRouterProvider struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewOpenRouterProvider creates a new OpenRouter provider instance.
//
// Parameters:
//   - baseURL: OpenRouter API base URL ("https://openrouter.ai/api/v1")
//   - apiKey: OpenRouter API key
//   - model: model to use, with or without the vendor prefix
//   - httpClient: HTTP client carrying the retry transport
func NewOpenRouterProvider(baseURL, apiKey, model string, httpClient *http.Client) (*OpenRouterProvider, error) {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}
	if model == "" {
		model = "google/gemini-2.5-flash" // Default model
	}

	return &OpenRouterProvider{
		client:  newOpenAIClient(baseURL, apiKey, httpClient),
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Generate implements model.Provider.
func (p *OpenRouterProvider) Generate(ctx context.Context, req model.Request) (string, error) {
	return openAIComplete(ctx, p.client, p.model, req)
}

// GetModel implements model.Provider.
// Returns the full model name for API calls (e.g., "google/gemini-2.5-flash").
func (p *OpenRouterProvider) GetModel() string {
	return p.model
}

// GetDisplayName returns the model name without the vendor prefix.
func (p *OpenRouterProvider) GetDisplayName() string {
	return stripProviderPrefix(p.model)
}

// Ping implements model.Provider by attempting to list models.
func (p *OpenRouterProvider) Ping(ctx context.Context) error {
	_, err := p.client.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("OpenRouter ping failed: %w", mapOpenAIError(err))
	}
	return nil
}

// stripProviderPrefix removes the vendor prefix from OpenRouter model names.
// Example: "google/gemini-2.5-flash" → "gemini-2.5-flash"
func stripProviderPrefix(modelName string) string {
	if idx := strings.Index(modelName, "/"); idx != -1 {
		return modelName[idx+1:]
	}
	return modelName
}
