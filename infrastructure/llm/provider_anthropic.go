package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/quartetlab/quartet/internal/ports"
)

// Anthropic provider constants.
const (
	// AnthropicDefaultModel is used when the configuration omits a model.
	AnthropicDefaultModel = "claude-3-5-sonnet-20241022"
	// anthropicDefaultMaxTokens is the completion cap when the request
	// does not set one; Anthropic requires an explicit value.
	anthropicDefaultMaxTokens = 1024
)

func init() {
	RegisterProviderFactory("anthropic", newAnthropicProvider)
}

// anthropicProvider implements CoreLLM against the Anthropic Messages
// API. The system prompt rides the dedicated system parameter rather
// than a message turn.
type anthropicProvider struct {
	BaseProvider
	client          anthropic.Client
	tokenCounter    *TokenCounter
	errorClassifier *ErrorClassifier
}

func newAnthropicProvider(config ClientConfig) (CoreLLM, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	model := config.Model
	if model == "" {
		model = AnthropicDefaultModel
	}

	opts := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		validatedURL, err := ValidateBaseURL(config.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid BaseURL: %w", err)
		}
		opts = append(opts, option.WithBaseURL(validatedURL))
	}

	return &anthropicProvider{
		BaseProvider:    BaseProvider{model: model},
		client:          anthropic.NewClient(opts...),
		tokenCounter:    NewTokenCounter(),
		errorClassifier: &ErrorClassifier{Provider: "anthropic"},
	}, nil
}

// DoRequest sends the system/user pair to the Messages API. The seed
// option is ignored; Anthropic does not support deterministic sampling.
func (p *anthropicProvider) DoRequest(ctx context.Context, system, user string, opts ports.GenerationOptions) (string, int, int, error) {
	params := p.buildParams(system, user, opts)

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", 0, 0, p.handleError(err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		switch content := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(content.Text)
		}
	}
	response := text.String()
	if response == "" {
		return "", 0, 0, ErrEmptyResponse
	}

	tokensIn := p.tokenCounter.GetTokenCount(int(message.Usage.InputTokens), system+user)
	tokensOut := p.tokenCounter.GetTokenCount(int(message.Usage.OutputTokens), response)
	return response, tokensIn, tokensOut, nil
}

func (p *anthropicProvider) buildParams(system, user string, opts ports.GenerationOptions) anthropic.MessageNewParams {
	model := opts.Model
	if model == "" {
		model = p.GetModel()
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if opts.Temperature != nil {
		// Anthropic accepts temperatures up to 1.0.
		params.Temperature = anthropic.Float(ClampFloat64(*opts.Temperature, 0.0, 1.0))
	}
	if opts.TopP != nil {
		params.TopP = anthropic.Float(ClampFloat64(*opts.TopP, MinTopP, MaxTopP))
	}
	return params
}

func (p *anthropicProvider) handleError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return p.errorClassifier.ClassifyContextError(err)
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return p.errorClassifier.ClassifyHTTPError(apiErr.StatusCode, apiErr.Error(), err)
	}

	return NewProviderError("anthropic", ErrorTypeUnknown, 0, "request failed", err)
}
