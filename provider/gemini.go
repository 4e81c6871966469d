package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"englishhero/config"
	"englishhero/model"
	"englishhero/transport"
)

const (
	// DefaultGeminiBaseURL is the public Generative Language API root.
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultGeminiModel is the model the tutor persona was tuned against.
	DefaultGeminiModel = "gemini-2.5-flash-preview-09-2025"
)

// Wire types for models/{model}:generateContent.
type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// GeminiProvider calls the generateContent REST endpoint directly. The API
// key travels as the "key" query parameter and is never logged.
type GeminiProvider struct {
	client  *http.Client
	model   string
	baseURL string
	apiKey  string
}

// NewGeminiProvider creates a new Gemini REST provider.
//
// Parameters:
//   - baseURL: API root (default: DefaultGeminiBaseURL)
//   - apiKey: Gemini API key (required)
//   - model: model name (default: DefaultGeminiModel)
//   - client: HTTP client, normally one carrying the retry transport
func NewGeminiProvider(baseURL, apiKey, model string, client *http.Client) (*GeminiProvider, error) {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &GeminiProvider{
		client:  client,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}, nil
}

// Generate implements model.Provider.
func (p *GeminiProvider) Generate(ctx context.Context, req model.Request) (string, error) {
	body, err := json.Marshal(convertToGeminiRequest(req))
	if err != nil {
		return "", fmt.Errorf("encode gemini request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(":generateContent"), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", redactKey(err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if config.DebugLog != nil {
		config.DebugLog.Debug().Str("model", p.model).Int("turns", len(req.Turns)).Msg("gemini generateContent")
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", redactKey(err))
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		if transport.IsThrottled(resp) && config.DebugLog != nil {
			config.DebugLog.Warn().Str("model", p.model).Msg("gemini still rate limited after retries")
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", statusError(resp.StatusCode, raw)
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	return firstCandidateText(decoded)
}

// GetModel implements model.Provider.
func (p *GeminiProvider) GetModel() string {
	return p.model
}

// Ping implements model.Provider by fetching the model resource, which
// validates both reachability and the key.
func (p *GeminiProvider) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint(""), nil)
	if err != nil {
		return fmt.Errorf("Gemini ping failed: %w", redactKey(err))
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("Gemini ping failed: %w", redactKey(err))
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("Gemini ping failed: %w", statusError(resp.StatusCode, raw))
	}
	return nil
}

func (p *GeminiProvider) endpoint(method string) string {
	return fmt.Sprintf("%s/models/%s%s?key=%s", p.baseURL, url.PathEscape(p.model), method, url.QueryEscape(p.apiKey))
}

// firstCandidateText returns the joined text parts of the first candidate.
// Absent and empty candidate lists are treated the same.
func firstCandidateText(resp geminiResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", model.ErrNoContent
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", model.ErrNoContent
	}
	return sb.String(), nil
}

// redactKey strips the key query parameter from URLs embedded in err.
func redactKey(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	redacted := *urlErr
	redacted.URL = redactURL(urlErr.URL)
	return &redacted
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
