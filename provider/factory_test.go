package provider

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"englishhero/model"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		expectNil   bool
	}{
		{
			name: "gemini provider with defaults",
			config: Config{
				Type:   ProviderTypeGemini,
				APIKey: "test-key",
			},
		},
		{
			name: "gemini provider without key",
			config: Config{
				Type: ProviderTypeGemini,
			},
			expectError: true,
			expectNil:   true,
		},
		{
			name: "gemini sdk provider",
			config: Config{
				Type:   ProviderTypeGeminiSDK,
				Model:  "gemini-2.5-flash",
				APIKey: "test-key",
			},
		},
		{
			name: "ollama provider with defaults",
			config: Config{
				Type: ProviderTypeOllama,
			},
		},
		{
			name: "ollama provider with custom config",
			config: Config{
				Type:    ProviderTypeOllama,
				BaseURL: "http://localhost:11434",
				Model:   "llama3.1",
			},
		},
		{
			name: "openai provider",
			config: Config{
				Type:    ProviderTypeOpenAI,
				BaseURL: "https://api.openai.com/v1",
				Model:   "gpt-4o-mini",
				APIKey:  "test-key",
			},
		},
		{
			name: "openrouter provider",
			config: Config{
				Type:   ProviderTypeOpenRouter,
				APIKey: "test-key",
			},
		},
		{
			name: "anthropic provider",
			config: Config{
				Type:    ProviderTypeAnthropic,
				BaseURL: "https://api.anthropic.com",
				Model:   "claude-sonnet-4-5-20250929",
				APIKey:  "test-key",
			},
		},
		{
			name: "anthropic provider without key",
			config: Config{
				Type: ProviderTypeAnthropic,
			},
			expectError: true,
			expectNil:   true,
		},
		{
			name: "unknown provider type",
			config: Config{
				Type:    ProviderType("unknown"),
				BaseURL: "http://localhost",
				Model:   "test",
			},
			expectError: true,
			expectNil:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.config)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if tt.expectNil && provider != nil {
				t.Error("expected nil provider, got non-nil")
			}
			if !tt.expectNil && provider == nil {
				t.Error("expected non-nil provider, got nil")
			}

			if !tt.expectError && provider != nil {
				var _ model.Provider = provider
			}
		})
	}
}

// TestFactoryReturnsGeminiProvider verifies that the default type is the REST provider
func TestFactoryReturnsGeminiProvider(t *testing.T) {
	provider, err := NewProvider(Config{Type: MapProviderIDToType(""), APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gp, ok := provider.(*GeminiProvider)
	if !ok {
		t.Fatalf("expected *GeminiProvider, got %T", provider)
	}
	if gp.GetModel() != DefaultGeminiModel {
		t.Errorf("model: got %q, want %q", gp.GetModel(), DefaultGeminiModel)
	}
}

func TestMapProviderIDToType(t *testing.T) {
	tests := []struct {
		id   string
		want ProviderType
	}{
		{"", ProviderTypeGemini},
		{"gemini", ProviderTypeGemini},
		{"gemini-sdk", ProviderTypeGeminiSDK},
		{"genai", ProviderTypeGeminiSDK},
		{"ollama", ProviderTypeOllama},
		{"openrouter", ProviderTypeOpenRouter},
		{"openai", ProviderTypeOpenAI},
		{"anthropic", ProviderTypeAnthropic},
		{"claude", ProviderTypeAnthropic},
		{"bogus", ProviderType("bogus")},
	}

	for _, tt := range tests {
		if got := MapProviderIDToType(tt.id); got != tt.want {
			t.Errorf("MapProviderIDToType(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestRequiresAPIKey(t *testing.T) {
	if RequiresAPIKey(ProviderTypeOllama) {
		t.Error("ollama should not require an API key")
	}
	for _, pt := range []ProviderType{ProviderTypeGemini, ProviderTypeGeminiSDK, ProviderTypeOpenAI, ProviderTypeOpenRouter, ProviderTypeAnthropic} {
		if !RequiresAPIKey(pt) {
			t.Errorf("%s should require an API key", pt)
		}
	}
}

func TestStripProviderPrefix(t *testing.T) {
	if got := stripProviderPrefix("google/gemini-2.5-flash"); got != "gemini-2.5-flash" {
		t.Errorf("got %q", got)
	}
	if got := stripProviderPrefix("plain"); got != "plain" {
		t.Errorf("got %q", got)
	}
}

func TestStatusErrorTrimsToRuneBoundary(t *testing.T) {
	// "ก" is three bytes, so 512 bytes of it ends mid-rune
	body := []byte(strings.Repeat("ก", 200))
	err := statusError(400, body)

	var statusErr *model.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("statusError() = %T, want *model.StatusError", err)
	}
	if !utf8.ValidString(statusErr.Body) {
		t.Errorf("Body is not valid UTF-8: %q", statusErr.Body)
	}
	if want := strings.Repeat("ก", 170); statusErr.Body != want {
		t.Errorf("Body has %d bytes, want %d", len(statusErr.Body), len(want))
	}
}

func TestStatusErrorKeepsShortBody(t *testing.T) {
	err := statusError(404, []byte(`{"error":"ไม่พบโมเดล"}`))
	var statusErr *model.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("statusError() = %T, want *model.StatusError", err)
	}
	if statusErr.Body != `{"error":"ไม่พบโมเดล"}` || statusErr.StatusCode != 404 {
		t.Errorf("statusError() = %+v", statusErr)
	}
}
