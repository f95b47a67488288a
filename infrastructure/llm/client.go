// Package llm adapts external text-generation providers behind the
// ports.LLMClient interface. Providers (OpenAI, Anthropic, Google, and a
// deterministic mock for credential-less runs) implement the CoreLLM
// interface and are wrapped by a middleware chain for timeouts, rate
// limiting, metrics, and tracing.
//
// Basic usage:
//
//	client, err := llm.NewClient("openai", llm.ClientConfig{
//	    APIKey:  os.Getenv("OPENAI_API_KEY"),
//	    Model:   "gpt-4o-mini",
//	    Timeout: 25 * time.Second,
//	})
//	out, err := client.Generate(ctx, systemPrompt, userPrompt, opts)
//
// A missing credential configuration should select the "mock" provider
// instead of failing, so downstream flows stay exercised without a live
// backend.
package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/quartetlab/quartet/internal/ports"
)

// CoreLLM is the minimal surface a provider must implement. The system
// prompt and user prompt stay separate so providers that support a
// dedicated system turn keep it cacheable on their side.
type CoreLLM interface {
	// DoRequest sends one system/user pair and returns the generated
	// text with input and output token counts.
	DoRequest(ctx context.Context, system, user string, opts ports.GenerationOptions) (text string, tokensIn, tokensOut int, err error)

	// GetModel returns the currently configured model name.
	GetModel() string

	// SetModel updates the model used for subsequent requests.
	SetModel(model string)
}

// Middleware wraps a CoreLLM to add cross-cutting behavior without
// touching provider logic.
type Middleware func(CoreLLM) CoreLLM

// ClientConfig holds the settings for building a provider client.
type ClientConfig struct {
	// APIKey authenticates requests. The mock provider ignores it.
	APIKey string

	// Model selects the provider model. Empty selects the provider
	// default.
	Model string

	// BaseURL overrides the provider endpoint when non-empty.
	BaseURL string

	// Timeout bounds each individual generation call. When positive, a
	// timeout middleware is installed as the outermost wrapper.
	Timeout time.Duration

	// Middleware is applied in order, first entry outermost (after the
	// timeout wrapper, when configured).
	Middleware []Middleware
}

// ProviderFactory builds a CoreLLM from a ClientConfig.
type ProviderFactory func(ClientConfig) (CoreLLM, error)

var (
	factoriesMu       sync.RWMutex
	providerFactories = map[string]ProviderFactory{}
)

// RegisterProviderFactory registers a provider under a name. Providers
// self-register from init; the function is exported so tests and
// integrations can add their own.
func RegisterProviderFactory(name string, factory ProviderFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	providerFactories[name] = factory
}

// Providers returns the registered provider names, sorted.
func Providers() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(providerFactories))
	for name := range providerFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Client implements ports.LLMClient over a middleware-wrapped CoreLLM.
type Client struct {
	core CoreLLM
}

var _ ports.LLMClient = (*Client)(nil)

// NewClient builds a client for the named provider, assembling the
// middleware chain. Credential validation is the provider factory's
// concern; the mock provider accepts an empty key.
func NewClient(providerType string, config ClientConfig) (*Client, error) {
	factoriesMu.RLock()
	factory, ok := providerFactories[providerType]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", providerType)
	}

	core, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", providerType, err)
	}

	// Apply middleware in reverse so the first entry is outermost.
	for i := len(config.Middleware) - 1; i >= 0; i-- {
		core = config.Middleware[i](core)
	}
	if config.Timeout > 0 {
		core = TimeoutMiddleware(ValidateTimeout(config.Timeout))(core)
	}

	return &Client{core: core}, nil
}

// Generate sends the system/user pair through the middleware chain and
// maps provider failures onto the ports error taxonomy: timeouts become
// ports.ErrGenerationTimeout, everything else a backend error. Both are
// distinguishable from validation errors by type.
func (c *Client) Generate(ctx context.Context, system, user string, opts ports.GenerationOptions) (ports.GenerationOutput, error) {
	text, tokensIn, tokensOut, err := c.core.DoRequest(ctx, system, user, opts)
	if err != nil {
		return ports.GenerationOutput{}, c.classify(err)
	}

	model := opts.Model
	if model == "" {
		model = c.core.GetModel()
	}
	return ports.GenerationOutput{
		Text:      text,
		Model:     model,
		TokensIn:  tokensIn,
		TokensOut: tokensOut,
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.core.GetModel() }

func (c *Client) classify(err error) error {
	var pe *ProviderError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ports.ErrGenerationTimeout, err)
	case errors.As(err, &pe) && pe.Type == ErrorTypeTimeout:
		return fmt.Errorf("%w: %w", ports.ErrGenerationTimeout, err)
	default:
		return fmt.Errorf("%w: %w", ports.ErrGenerationBackend, err)
	}
}
