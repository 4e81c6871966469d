package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ollama/ollama/api"

	"englishhero/model"
	"englishhero/ollama"
)

// OllamaProvider wraps ollama.Client to implement model.Provider.
//
// This provider converts the provider-agnostic request into Ollama's chat
// messages (persona as a leading system message) and maps Ollama's status
// errors onto *model.StatusError.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates a new Ollama provider instance.
//
// Parameters:
//   - baseURL: The Ollama server URL (e.g., "http://localhost:11434").
//     If empty, defaults to "http://localhost:11434".
//   - model: The model name to use (e.g., "llama3.1:latest").
//     If empty, defaults to "llama3.1:latest".
//   - httpClient: HTTP client carrying the retry transport.
//
// Returns an error if the baseURL is invalid.
//
// Example:
//
//	provider, err := NewOllamaProvider("http://localhost:11434", "llama3.1", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewOllamaProvider(baseURL, model string, httpClient *http.Client) (*OllamaProvider, error) {
	client, err := ollama.NewClient(baseURL, model, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{
		client: client,
	}, nil
}

// Generate implements model.Provider.
func (p *OllamaProvider) Generate(ctx context.Context, req model.Request) (string, error) {
	reply, err := p.client.Complete(ctx, ConvertToOllamaMessages(req))
	if err != nil {
		var statusErr api.StatusError
		if errors.As(err, &statusErr) {
			return "", &model.StatusError{StatusCode: statusErr.StatusCode, Body: statusErr.ErrorMessage}
		}
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	if reply == "" {
		return "", model.ErrNoContent
	}
	return reply, nil
}

// GetModel implements model.Provider.
func (p *OllamaProvider) GetModel() string {
	return p.client.GetModel()
}

// Ping implements model.Provider by checking the server is reachable and the
// configured model has been pulled.
func (p *OllamaProvider) Ping(ctx context.Context) error {
	ok, err := p.client.HasModel(ctx)
	if err != nil {
		return fmt.Errorf("Ollama ping failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("Ollama model %q is not pulled (run: ollama pull %s)", p.client.GetModel(), p.client.GetModel())
	}
	return nil
}

// ListModels returns the models pulled on the Ollama server.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	return p.client.ListModels(ctx)
}
