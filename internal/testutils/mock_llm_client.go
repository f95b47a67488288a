// Package testutils provides deterministic test doubles for the ports
// interfaces, shared by the application and server test suites.
package testutils

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/quartetlab/quartet/internal/ports"
)

// MockLLMClient implements ports.LLMClient with deterministic
// responses, optional per-pattern overrides, and call recording.
type MockLLMClient struct {
	mu sync.Mutex

	model     string
	responses []MockResponse

	// Err fails every call when set.
	Err error

	// Delay simulates backend latency, honoring context cancellation.
	Delay time.Duration

	calls []RecordedCall
}

// MockResponse is a pre-configured response. Pattern is matched against
// the user prompt by substring; an empty pattern matches everything.
type MockResponse struct {
	Pattern   string
	Response  string
	TokensIn  int
	TokensOut int
}

// RecordedCall captures the arguments of one Generate call.
type RecordedCall struct {
	System string
	User   string
	Opts   ports.GenerationOptions
}

var _ ports.LLMClient = (*MockLLMClient)(nil)

// NewMockLLMClient creates a mock that echoes a stable digest of its
// prompts, so distinct conditions produce distinct texts.
func NewMockLLMClient(model string) *MockLLMClient {
	return &MockLLMClient{model: model}
}

// AddResponse registers a pattern-matched response. Later additions
// take priority.
func (m *MockLLMClient) AddResponse(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append([]MockResponse{r}, m.responses...)
}

// Generate implements ports.LLMClient.
func (m *MockLLMClient) Generate(ctx context.Context, system, user string, opts ports.GenerationOptions) (ports.GenerationOutput, error) {
	m.mu.Lock()
	m.calls = append(m.calls, RecordedCall{System: system, User: user, Opts: opts})
	delay := m.Delay
	err := m.Err
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ports.GenerationOutput{}, ctx.Err()
		}
	}
	if err != nil {
		return ports.GenerationOutput{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.responses {
		if r.Pattern == "" || strings.Contains(user, r.Pattern) {
			return ports.GenerationOutput{
				Text:      r.Response,
				Model:     m.model,
				TokensIn:  r.TokensIn,
				TokensOut: r.TokensOut,
			}, nil
		}
	}

	return ports.GenerationOutput{
		Text:      fmt.Sprintf("response to %q under %q", truncate(user, 60), truncate(system, 40)),
		Model:     m.model,
		TokensIn:  len(system+user) / 4,
		TokensOut: 30,
	}, nil
}

// Model implements ports.LLMClient.
func (m *MockLLMClient) Model() string { return m.model }

// Calls returns a copy of every recorded call in order.
func (m *MockLLMClient) Calls() []RecordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount reports how many Generate calls the mock has served.
func (m *MockLLMClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
