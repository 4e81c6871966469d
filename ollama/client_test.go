package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsModel(t *testing.T) {
	models := []ModelInfo{{Name: "llama3.1:latest"}, {Name: "qwen2.5:7b"}}

	tests := []struct {
		name string
		want bool
	}{
		{"llama3.1:latest", true},
		{"llama3.1", true},
		{"qwen2.5", true},
		{"qwen2.5:14b", false},
		{"gemma", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsModel(models, tt.name))
		})
	}
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient("", "", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.GetModel())
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient("://bad", "m", nil)
	assert.Error(t, err)
}

func TestComplete(t *testing.T) {
	var got api.ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.ChatResponse{
			Model:   "llama3.1:latest",
			Message: api.Message{Role: "assistant", Content: "Hello!"},
			Done:    true,
		})
	}))
	defer server.Close()

	c, err := NewClient(server.URL, "", server.Client())
	require.NoError(t, err)

	reply, err := c.Complete(context.Background(), []api.Message{{Role: "user", Content: "Hi"}})
	require.NoError(t, err)

	assert.Equal(t, "Hello!", reply)
	require.NotNil(t, got.Stream)
	assert.False(t, *got.Stream)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "Hi", got.Messages[0].Content)
}

func TestCompleteKeepsStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model \"gemma\" not found, try pulling it first"}`))
	}))
	defer server.Close()

	c, err := NewClient(server.URL, "gemma", server.Client())
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), []api.Message{{Role: "user", Content: "Hi"}})
	require.Error(t, err)

	var statusErr api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.ErrorMessage, "not found")
}

func TestListModelsKeepsStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream gone", http.StatusBadGateway)
	}))
	defer server.Close()

	c, err := NewClient(server.URL, "", server.Client())
	require.NoError(t, err)

	_, err = c.ListModels(context.Background())
	var statusErr api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream gone", statusErr.ErrorMessage)
}
