package llm

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/quartetlab/quartet/internal/ports"
)

// MockModel is the model identifier reported by the mock provider, so
// exported rows make clear which responses were not generated live.
const MockModel = "mock"

// Truncation lengths for the echoed prompts.
const (
	mockSystemEchoLen = 120
	mockUserEchoLen   = 160
)

func init() {
	RegisterProviderFactory("mock", newMockProvider)
}

// mockProvider is the credential-less fallback backend. It echoes a
// deterministic truncation of both prompts with zero token usage, which
// keeps the full orchestration path exercisable in development and CI
// without live credentials or billing.
type mockProvider struct {
	BaseProvider
}

func newMockProvider(config ClientConfig) (CoreLLM, error) {
	model := config.Model
	if model == "" {
		model = MockModel
	}
	return &mockProvider{BaseProvider: BaseProvider{model: model}}, nil
}

// DoRequest returns the deterministic echo. It still honors ctx so
// cancellation behaves the same as with a live provider.
func (p *mockProvider) DoRequest(ctx context.Context, system, user string, opts ports.GenerationOptions) (string, int, int, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, 0, (&ErrorClassifier{Provider: "mock"}).ClassifyContextError(err)
	}

	text := fmt.Sprintf("[MOCKED]\nSYSTEM:%s...\nUSER:%s...",
		truncate(system, mockSystemEchoLen), truncate(user, mockUserEchoLen))
	return text, 0, 0, nil
}

// truncate keeps the first n runes so a multibyte character is never
// split at the cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
