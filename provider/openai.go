package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"englishhero/model"
)

// OpenAIProvider implements model.Provider using OpenAI's official API.
// It uses the official OpenAI Go SDK for direct OpenAI API access.
type OpenAIProvider struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewOpenAIProvider creates a new OpenAI provider instance.
//
// Parameters:
//   - baseURL: OpenAI API base URL (default: "https://api.openai.com/v1")
//   - apiKey: OpenAI API key (required)
//   - model: model to use (default: "gpt-4o-mini")
//   - httpClient: HTTP client carrying the retry transport
//
// Returns an error if the API key is missing.
func NewOpenAIProvider(baseURL, apiKey, model string, httpClient *http.Client) (*OpenAIProvider, error) {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini" // Default to affordable model
	}

	return &OpenAIProvider{
		client:  newOpenAIClient(baseURL, apiKey, httpClient),
		model:   model,
		baseURL: baseURL,
	}, nil
}

// newOpenAIClient builds an SDK client whose retries are left to the transport.
func newOpenAIClient(baseURL, apiKey string, httpClient *http.Client) openai.Client {
	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return openai.NewClient(opts...)
}

// Generate implements model.Provider.
func (p *OpenAIProvider) Generate(ctx context.Context, req model.Request) (string, error) {
	return openAIComplete(ctx, p.client, p.model, req)
}

// openAIComplete runs one non-streaming chat completion. Shared with the
// OpenRouter provider, which speaks the same protocol.
func openAIComplete(ctx context.Context, client openai.Client, modelName string, req model.Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: ConvertToOpenAIMessages(req),
		Model:    openai.ChatModel(modelName),
	}

	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", mapOpenAIError(err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", model.ErrNoContent
	}
	return completion.Choices[0].Message.Content, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &model.StatusError{StatusCode: apiErr.StatusCode, Body: apiErr.Message}
	}
	return fmt.Errorf("OpenAI request: %w", err)
}

// GetModel implements model.Provider.
func (p *OpenAIProvider) GetModel() string {
	return p.model
}

// Ping implements model.Provider by attempting to list models.
func (p *OpenAIProvider) Ping(ctx context.Context) error {
	_, err := p.client.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("OpenAI ping failed: %w", mapOpenAIError(err))
	}
	return nil
}
