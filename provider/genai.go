package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"englishhero/model"
)

// GenAIProvider talks to Gemini through the official google.golang.org/genai
// SDK. Unlike GeminiProvider the key is sent as a header, not a query string.
type GenAIProvider struct {
	client *genai.Client
	model  string
}

// NewGenAIProvider creates a Gemini SDK provider.
//
// Parameters:
//   - baseURL: optional API root override (empty uses the SDK default)
//   - apiKey: Gemini API key (required)
//   - model: model name (default: DefaultGeminiModel)
//   - httpClient: HTTP client, normally one carrying the retry transport
func NewGenAIProvider(baseURL, apiKey, model string, httpClient *http.Client) (*GenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIProvider{
		client: client,
		model:  model,
	}, nil
}

// Generate implements model.Provider.
func (p *GenAIProvider) Generate(ctx context.Context, req model.Request) (string, error) {
	var cfg *genai.GenerateContentConfig
	if req.Persona != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(req.Persona, genai.RoleUser),
		}
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, ConvertToGenAIContents(req.Turns), cfg)
	if err != nil {
		return "", mapGenAIError(err)
	}

	return genAICandidateText(resp)
}

// GetModel implements model.Provider.
func (p *GenAIProvider) GetModel() string {
	return p.model
}

// Ping implements model.Provider by fetching the model metadata.
func (p *GenAIProvider) Ping(ctx context.Context) error {
	if _, err := p.client.Models.Get(ctx, p.model, nil); err != nil {
		return fmt.Errorf("GenAI ping failed: %w", mapGenAIError(err))
	}
	return nil
}

// genAICandidateText joins the non-thought text parts of the first candidate.
func genAICandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", model.ErrNoContent
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", model.ErrNoContent
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", model.ErrNoContent
	}
	return sb.String(), nil
}

func mapGenAIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &model.StatusError{StatusCode: apiErr.Code, Body: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &model.StatusError{StatusCode: apiErrPtr.Code, Body: apiErrPtr.Message}
	}
	return fmt.Errorf("genai request: %w", err)
}
