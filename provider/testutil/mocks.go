package testutil

import (
	"context"
	"sync"

	"englishhero/model"
)

// MockProvider implements model.Provider for testing
type MockProvider struct {
	// Configurable responses
	GenerateFunc func(ctx context.Context, req model.Request) (string, error)
	PingFunc     func(ctx context.Context) error

	mu       sync.Mutex
	requests []model.Request

	currentModel string
}

// NewMockProvider creates a mock provider with default implementations
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{
		currentModel: modelName,
	}
	mock.GenerateFunc = mock.defaultGenerate
	mock.PingFunc = mock.defaultPing
	return mock
}

// Replying returns a mock that always answers with text.
func Replying(text string) *MockProvider {
	mock := NewMockProvider("mock-model")
	mock.GenerateFunc = func(context.Context, model.Request) (string, error) {
		return text, nil
	}
	return mock
}

// Failing returns a mock that always fails with err.
func Failing(err error) *MockProvider {
	mock := NewMockProvider("mock-model")
	mock.GenerateFunc = func(context.Context, model.Request) (string, error) {
		return "", err
	}
	mock.PingFunc = func(context.Context) error {
		return err
	}
	return mock
}

func (m *MockProvider) defaultGenerate(ctx context.Context, req model.Request) (string, error) {
	// Default: fixed mock response
	return "Mock response", nil
}

func (m *MockProvider) defaultPing(ctx context.Context) error {
	return nil
}

func (m *MockProvider) Generate(ctx context.Context, req model.Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.GenerateFunc(ctx, req)
}

func (m *MockProvider) GetModel() string {
	return m.currentModel
}

func (m *MockProvider) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

// Requests returns every request received so far, in call order.
func (m *MockProvider) Requests() []model.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// CallCount returns the number of Generate calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
