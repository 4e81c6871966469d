package provider_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"englishhero/model"
	"englishhero/provider"
	"englishhero/provider/testutil"
)

// fakeUpstream answers every backend's chat and health endpoints with reply.
func fakeUpstream(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		path := r.URL.Path
		var body any
		switch {
		case strings.HasSuffix(path, ":generateContent"):
			_, _ = io.WriteString(w, testutil.GeminiReply(reply))
			return
		case strings.Contains(path, "/models/"):
			body = map[string]any{"name": "models/test-model"}
		case path == "/v1/chat/completions":
			body = map[string]any{
				"id": "chatcmpl-1", "object": "chat.completion", "created": 0, "model": "test-model",
				"choices": []any{map[string]any{
					"index": 0, "finish_reason": "stop",
					"message": map[string]any{"role": "assistant", "content": reply},
				}},
			}
		case path == "/v1/models":
			body = map[string]any{"object": "list", "data": []any{}}
		case path == "/v1/messages":
			body = map[string]any{
				"id": "msg_1", "type": "message", "role": "assistant", "model": "test-model",
				"content":     []any{map[string]any{"type": "text", "text": reply}},
				"stop_reason": "end_turn",
				"usage":       map[string]any{"input_tokens": 1, "output_tokens": 1},
			}
		case path == "/api/chat":
			body = map[string]any{
				"model": "test-model", "done": true,
				"message": map[string]any{"role": "assistant", "content": reply},
			}
		case path == "/api/tags":
			body = map[string]any{"models": []any{map[string]any{"name": "test-model:latest"}}}
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

// rejectingUpstream answers every request with status and the error body
// shape each backend expects.
func rejectingUpstream(t *testing.T, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		path := r.URL.Path
		var body any
		switch {
		case strings.Contains(path, "/models/"):
			body = map[string]any{"error": map[string]any{
				"code": status, "message": "model not found", "status": "NOT_FOUND",
			}}
		case strings.HasPrefix(path, "/v1/chat/") || path == "/v1/models":
			body = map[string]any{"error": map[string]any{
				"message": "model not found", "type": "invalid_request_error", "code": "model_not_found",
			}}
		case path == "/v1/messages":
			body = map[string]any{"type": "error", "error": map[string]any{
				"type": "not_found_error", "message": "model not found",
			}}
		default:
			body = map[string]any{"error": "model not found"}
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestProviderRejectionIsStatusError(t *testing.T) {
	server := rejectingUpstream(t, http.StatusNotFound)

	tests := []struct {
		name    string
		pt      provider.ProviderType
		baseURL string
	}{
		{"Gemini", provider.ProviderTypeGemini, server.URL},
		{"GeminiSDK", provider.ProviderTypeGeminiSDK, server.URL},
		{"OpenAI", provider.ProviderTypeOpenAI, server.URL + "/v1"},
		{"OpenRouter", provider.ProviderTypeOpenRouter, server.URL + "/v1"},
		{"Anthropic", provider.ProviderTypeAnthropic, server.URL},
		{"Ollama", provider.ProviderTypeOllama, server.URL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := provider.NewProvider(provider.Config{
				Type:       tt.pt,
				BaseURL:    tt.baseURL,
				Model:      "test-model",
				APIKey:     "test-key",
				HTTPClient: server.Client(),
			})
			if err != nil {
				t.Fatalf("NewProvider(%s): %v", tt.pt, err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, err = p.Generate(ctx, testutil.SingleUserRequest("You are a tutor.", "Hi"))

			var statusErr *model.StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("Generate() error = %v (%T), want *model.StatusError", err, err)
			}
			if statusErr.StatusCode != http.StatusNotFound {
				t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, http.StatusNotFound)
			}
			if !model.IsUpstreamRejection(err) {
				t.Errorf("IsUpstreamRejection(%v) = false", err)
			}
		})
	}
}

// TestProviderContract defines the contract ALL providers must satisfy.
func TestProviderContract(t *testing.T) {
	const reply = "Mock response"
	server := fakeUpstream(t, reply)

	build := func(pt provider.ProviderType, baseURL string) model.Provider {
		p, err := provider.NewProvider(provider.Config{
			Type:       pt,
			BaseURL:    baseURL,
			Model:      "test-model",
			APIKey:     "test-key",
			HTTPClient: server.Client(),
		})
		if err != nil {
			t.Fatalf("NewProvider(%s): %v", pt, err)
		}
		return p
	}

	tests := []struct {
		name     string
		provider model.Provider
	}{
		{"Mock", testutil.NewMockProvider("test-model")},
		{"Gemini", build(provider.ProviderTypeGemini, server.URL)},
		{"GeminiSDK", build(provider.ProviderTypeGeminiSDK, server.URL)},
		{"OpenAI", build(provider.ProviderTypeOpenAI, server.URL+"/v1")},
		{"OpenRouter", build(provider.ProviderTypeOpenRouter, server.URL+"/v1")},
		{"Anthropic", build(provider.ProviderTypeAnthropic, server.URL)},
		{"Ollama", build(provider.ProviderTypeOllama, server.URL)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Run("Generate", func(t *testing.T) {
				testProviderGenerate(t, tt.provider, reply)
			})
			t.Run("ModelName", func(t *testing.T) {
				testProviderModelName(t, tt.provider)
			})
			t.Run("HealthCheck", func(t *testing.T) {
				testProviderHealthCheck(t, tt.provider)
			})
		})
	}
}

func testProviderGenerate(t *testing.T, p model.Provider, want string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req := model.Request{
		Persona: "You are a tutor.",
		Turns:   append(testutil.TestHistory(), model.UserTurn("How are you?")),
	}
	got, err := p.Generate(ctx, req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func testProviderModelName(t *testing.T, p model.Provider) {
	if p.GetModel() != "test-model" {
		t.Errorf("GetModel() = %q, want %q", p.GetModel(), "test-model")
	}
}

func testProviderHealthCheck(t *testing.T, p model.Provider) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestMockProviderImplementsInterface(t *testing.T) {
	var _ model.Provider = (*testutil.MockProvider)(nil)
	var _ model.Provider = (*provider.GeminiProvider)(nil)
	var _ model.Provider = (*provider.GenAIProvider)(nil)
	var _ model.Provider = (*provider.OpenAIProvider)(nil)
	var _ model.Provider = (*provider.OpenRouterProvider)(nil)
	var _ model.Provider = (*provider.AnthropicProvider)(nil)
	var _ model.Provider = (*provider.OllamaProvider)(nil)
}

func TestMockProviderRecordsRequests(t *testing.T) {
	mock := testutil.NewMockProvider("m")
	_, _ = mock.Generate(context.Background(), testutil.SingleUserRequest("p", "one"))
	_, _ = mock.Generate(context.Background(), testutil.SingleUserRequest("p", "two"))

	reqs := mock.Requests()
	if len(reqs) != 2 {
		t.Fatalf("got %d requests, want 2", len(reqs))
	}
	if reqs[1].Turns[0].Text != "two" {
		t.Errorf("second request text = %q", reqs[1].Turns[0].Text)
	}
}
