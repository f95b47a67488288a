package llm

import (
	"context"
	"sync"
	"time"

	"github.com/quartetlab/quartet/internal/ports"
)

// MockCoreLLM is a configurable CoreLLM test double for middleware and
// client tests. It allows control over the response, timing, and error
// behavior while recording every call it receives.
type MockCoreLLM struct {
	mu sync.Mutex

	// Response configuration.
	Response      string
	TokensIn      int
	TokensOut     int
	Err           error
	Model         string
	ResponseDelay time.Duration

	// Call tracking.
	CallCount  int
	LastSystem string
	LastUser   string
	LastOpts   ports.GenerationOptions
}

// NewMockCoreLLM returns a mock that succeeds with a fixed response.
func NewMockCoreLLM() *MockCoreLLM {
	return &MockCoreLLM{
		Response:  "test response",
		TokensIn:  10,
		TokensOut: 20,
		Model:     "test-model",
	}
}

// DoRequest implements CoreLLM with the configured behavior.
func (m *MockCoreLLM) DoRequest(ctx context.Context, system, user string, opts ports.GenerationOptions) (string, int, int, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastSystem = system
	m.LastUser = user
	m.LastOpts = opts
	delay := m.ResponseDelay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", 0, 0, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", 0, 0, m.Err
	}
	return m.Response, m.TokensIn, m.TokensOut, nil
}

// GetModel returns the configured model name.
func (m *MockCoreLLM) GetModel() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Model
}

// SetModel updates the configured model name.
func (m *MockCoreLLM) SetModel(model string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Model = model
}

// GetCallCount returns how many requests the mock has received.
func (m *MockCoreLLM) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}
