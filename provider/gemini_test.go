package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"englishhero/model"
	"englishhero/provider/testutil"
	"englishhero/transport"
)

const testKey = "secret-test-key"

func newTestGemini(t *testing.T, serverURL string, client *http.Client) *GeminiProvider {
	t.Helper()
	p, err := NewGeminiProvider(serverURL, testKey, "gemini-test", client)
	require.NoError(t, err)
	return p
}

// fastRetryClient retries like production but without sleeping.
func fastRetryClient(attempts int) *http.Client {
	tr := transport.New(nil, transport.RetryPolicy{MaxAttempts: attempts, InitialDelay: time.Millisecond, BackoffMultiplier: 2})
	tr.Sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	return &http.Client{Transport: tr}
}

func TestGeminiGenerateRequest(t *testing.T) {
	var (
		gotPath  string
		gotKey   string
		gotType  string
		gotBody  map[string]any
		gotQuery string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotQuery = r.URL.RawQuery
		gotType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, testutil.GeminiReply("Hello"))
	}))
	defer server.Close()

	p := newTestGemini(t, server.URL, server.Client())
	text, err := p.Generate(context.Background(), scenarioRequest())
	require.NoError(t, err)

	assert.Equal(t, "Hello", text)
	assert.Equal(t, "/models/gemini-test:generateContent", gotPath)
	assert.Equal(t, testKey, gotKey)
	assert.Equal(t, "key="+testKey, gotQuery)
	assert.Equal(t, "application/json", gotType)

	contents, ok := gotBody["contents"].([]any)
	require.True(t, ok)
	assert.Len(t, contents, 3)
	assert.Contains(t, gotBody, "systemInstruction")
}

func TestGeminiGenerateResponses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		want       string
		wantErr    error
		wantStatus int
		rejection  bool
	}{
		{
			name:   "first candidate text",
			status: http.StatusOK,
			body:   testutil.GeminiReply("Hello"),
			want:   "Hello",
		},
		{
			name:   "parts are joined",
			status: http.StatusOK,
			body:   `{"candidates":[{"content":{"parts":[{"text":"Hel"},{"text":"lo"}]}},{"content":{"parts":[{"text":"ignored"}]}}]}`,
			want:   "Hello",
		},
		{
			name:      "candidates absent",
			status:    http.StatusOK,
			body:      `{}`,
			wantErr:   model.ErrNoContent,
			rejection: true,
		},
		{
			name:      "candidates empty",
			status:    http.StatusOK,
			body:      `{"candidates":[]}`,
			wantErr:   model.ErrNoContent,
			rejection: true,
		},
		{
			name:      "candidate without content",
			status:    http.StatusOK,
			body:      `{"candidates":[{"finishReason":"SAFETY"}]}`,
			wantErr:   model.ErrNoContent,
			rejection: true,
		},
		{
			name:      "empty text",
			status:    http.StatusOK,
			body:      `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`,
			wantErr:   model.ErrNoContent,
			rejection: true,
		},
		{
			name:       "bad request",
			status:     http.StatusBadRequest,
			body:       `{"error":{"code":400,"message":"API key not valid"}}`,
			wantStatus: http.StatusBadRequest,
			rejection:  true,
		},
		{
			name:       "server error is not retried",
			status:     http.StatusInternalServerError,
			body:       `{"error":{"code":500}}`,
			wantStatus: http.StatusInternalServerError,
			rejection:  true,
		},
		{
			name:      "malformed body",
			status:    http.StatusOK,
			body:      `{"candidates":[`,
			rejection: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			p := newTestGemini(t, server.URL, fastRetryClient(6))
			text, err := p.Generate(context.Background(), testutil.SingleUserRequest("p", "Hi"))

			assert.Equal(t, int32(1), hits.Load(), "non-throttled responses must not be retried")

			if tt.want != "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, text)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.rejection, model.IsUpstreamRejection(err))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantStatus != 0 {
				var statusErr *model.StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, tt.wantStatus, statusErr.StatusCode)
			}
		})
	}
}

func TestGeminiRetriesThrottling(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"Hi"`) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if hits.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = io.WriteString(w, testutil.GeminiReply("after backoff"))
	}))
	defer server.Close()

	p := newTestGemini(t, server.URL, fastRetryClient(6))
	text, err := p.Generate(context.Background(), testutil.SingleUserRequest("", "Hi"))

	require.NoError(t, err)
	assert.Equal(t, "after backoff", text)
	assert.Equal(t, int32(3), hits.Load())
}

func TestGeminiThrottlingExhausted(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"code":429,"status":"RESOURCE_EXHAUSTED"}}`)
	}))
	defer server.Close()

	p := newTestGemini(t, server.URL, fastRetryClient(4))
	_, err := p.Generate(context.Background(), testutil.SingleUserRequest("", "Hi"))

	var statusErr *model.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "RESOURCE_EXHAUSTED")
	assert.Equal(t, int32(4), hits.Load())
}

func TestGeminiConnectionErrorRedactsKey(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	p := newTestGemini(t, url, fastRetryClient(2))
	_, err := p.Generate(context.Background(), testutil.SingleUserRequest("", "Hi"))

	require.Error(t, err)
	assert.False(t, model.IsUpstreamRejection(err))
	assert.NotContains(t, err.Error(), testKey)
	assert.Contains(t, err.Error(), "REDACTED")
}

func TestGeminiCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, testutil.GeminiReply("late"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestGemini(t, server.URL, server.Client())
	_, err := p.Generate(ctx, testutil.SingleUserRequest("", "Hi"))

	assert.True(t, errors.Is(err, context.Canceled))
	assert.NotContains(t, err.Error(), testKey)
}

func TestGeminiPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/models/gemini-test" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("key") != testKey {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = io.WriteString(w, `{"name":"models/gemini-test"}`)
	}))
	defer server.Close()

	p := newTestGemini(t, server.URL, server.Client())
	assert.NoError(t, p.Ping(context.Background()))

	bad, err := NewGeminiProvider(server.URL, "wrong", "gemini-test", server.Client())
	require.NoError(t, err)
	err = bad.Ping(context.Background())
	var statusErr *model.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}

func TestNewGeminiProviderDefaults(t *testing.T) {
	p, err := NewGeminiProvider("", "k", "", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultGeminiModel, p.GetModel())
	assert.Equal(t, DefaultGeminiBaseURL, p.baseURL)

	_, err = NewGeminiProvider("", "", "", nil)
	assert.Error(t, err)
}

func TestRedactURL(t *testing.T) {
	got := redactURL("https://example.test/v1beta/models/m:generateContent?key=abc123")
	assert.NotContains(t, got, "abc123")
	assert.Contains(t, got, "key=REDACTED")

	assert.Equal(t, "https://example.test/path", redactURL("https://example.test/path"))
}
