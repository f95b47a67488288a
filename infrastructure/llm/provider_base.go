package llm

import (
	"fmt"
	"net/url"
	"sync"
	"time"
)

// Parameter bounds shared across providers.
const (
	// MinTemperature and MaxTemperature bound the sampling temperature.
	// The upper bound is 2.0 to accommodate OpenAI and Gemini.
	MinTemperature = 0.0
	MaxTemperature = 2.0
	// MinTopP and MaxTopP bound nucleus sampling.
	MinTopP = 0.0
	MaxTopP = 1.0
	// MinTimeout and MaxTimeout bound the configurable per-call timeout.
	MinTimeout = 1 * time.Second
	MaxTimeout = 10 * time.Minute
)

// BaseProvider carries the thread-safe model name handling every
// provider needs.
type BaseProvider struct {
	mu    sync.RWMutex
	model string
}

// GetModel returns the configured model name. Safe for concurrent use.
func (b *BaseProvider) GetModel() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.model
}

// SetModel updates the model name. Safe for concurrent use.
func (b *BaseProvider) SetModel(model string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.model = model
}

// TokenCounter estimates token counts when a provider omits usage data.
type TokenCounter struct {
	// CharactersPerToken approximates tokenizer density; 4.0 is a common
	// figure for English text.
	CharactersPerToken float64
}

// NewTokenCounter returns a counter with the default density.
func NewTokenCounter() *TokenCounter {
	return &TokenCounter{CharactersPerToken: 4.0}
}

// EstimateTokens estimates a token count for text.
func (tc *TokenCounter) EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return int(float64(len(text)) / tc.CharactersPerToken)
}

// GetTokenCount prefers the provider-reported count, estimating only
// when it is absent.
func (tc *TokenCounter) GetTokenCount(actualCount int, text string) int {
	if actualCount > 0 {
		return actualCount
	}
	return tc.EstimateTokens(text)
}

// ValidateBaseURL checks a base URL override has an http(s) scheme and a
// host. An empty string is valid and means the provider default.
func ValidateBaseURL(baseURL string) (string, error) {
	if baseURL == "" {
		return "", nil
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("URL scheme must be http or https, got: %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("URL must include a host")
	}
	return parsed.String(), nil
}

// ValidateTimeout clamps a per-call timeout into [MinTimeout,
// MaxTimeout]. Zero and negative values mean "no timeout" and pass
// through as zero.
func ValidateTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return 0
	}
	if timeout < MinTimeout {
		return MinTimeout
	}
	if timeout > MaxTimeout {
		return MaxTimeout
	}
	return timeout
}

// ClampFloat64 restricts val to [min, max].
func ClampFloat64(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
