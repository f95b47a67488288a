package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	"github.com/quartetlab/quartet/internal/ports"
)

// GoogleDefaultModel is used when the configuration omits a model.
const GoogleDefaultModel = "gemini-2.0-flash-exp"

func init() {
	RegisterProviderFactory("google", newGoogleProvider)
}

// googleProvider implements CoreLLM against the Gemini API. Gemini has
// no dedicated system role, so the system prompt is prepended to the
// user turn in a structured form.
type googleProvider struct {
	BaseProvider
	client          *genai.Client
	tokenCounter    *TokenCounter
	errorClassifier *ErrorClassifier
}

func newGoogleProvider(config ClientConfig) (CoreLLM, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	model := config.Model
	if model == "" {
		model = GoogleDefaultModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Google client: %w", err)
	}

	return &googleProvider{
		BaseProvider:    BaseProvider{model: model},
		client:          client,
		tokenCounter:    NewTokenCounter(),
		errorClassifier: &ErrorClassifier{Provider: "google"},
	}, nil
}

// DoRequest sends the request to the Gemini API and returns the
// generated text with reported or estimated token usage.
func (p *googleProvider) DoRequest(ctx context.Context, system, user string, opts ports.GenerationOptions) (string, int, int, error) {
	model := opts.Model
	if model == "" {
		model = p.GetModel()
	}

	prompt := user
	if system != "" {
		prompt = fmt.Sprintf("System: %s\n\nUser: %s", system, user)
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := p.client.Models.GenerateContent(ctx, model, contents, p.buildConfig(opts))
	if err != nil {
		return "", 0, 0, p.handleError(err)
	}

	content := resp.Text()
	if content == "" {
		return "", 0, 0, ErrEmptyResponse
	}

	tokensIn := p.usageCount(resp.UsageMetadata, true, prompt)
	tokensOut := p.usageCount(resp.UsageMetadata, false, content)
	return content, tokensIn, tokensOut, nil
}

func (p *googleProvider) buildConfig(opts ports.GenerationOptions) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if opts.Temperature != nil {
		config.Temperature = genai.Ptr(float32(ClampFloat64(*opts.Temperature, MinTemperature, MaxTemperature)))
	}
	if opts.TopP != nil {
		config.TopP = genai.Ptr(float32(ClampFloat64(*opts.TopP, MinTopP, MaxTopP)))
	}
	if opts.MaxTokens > 0 {
		if opts.MaxTokens > math.MaxInt32 {
			config.MaxOutputTokens = math.MaxInt32
		} else {
			config.MaxOutputTokens = int32(opts.MaxTokens)
		}
	}
	if opts.Seed != nil {
		config.Seed = genai.Ptr(int32(*opts.Seed))
	}
	return config
}

func (p *googleProvider) usageCount(usage *genai.GenerateContentResponseUsageMetadata, isInput bool, text string) int {
	if usage != nil {
		if isInput && usage.PromptTokenCount > 0 {
			return int(usage.PromptTokenCount)
		}
		if !isInput && usage.CandidatesTokenCount > 0 {
			return int(usage.CandidatesTokenCount)
		}
	}
	return p.tokenCounter.EstimateTokens(text)
}

func (p *googleProvider) handleError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return p.errorClassifier.ClassifyContextError(err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" && len(apiErr.Errors) > 0 {
			message = apiErr.Errors[0].Message
		}
		if isContentPolicyError(apiErr) {
			return NewProviderError("google", ErrorTypeContentPolicy, apiErr.Code,
				"request blocked by safety filters", err)
		}
		return p.errorClassifier.ClassifyHTTPError(apiErr.Code, message, err)
	}

	return NewProviderError("google", ErrorTypeUnknown, 0, "request failed", err)
}

func isContentPolicyError(apiErr *googleapi.Error) bool {
	lower := strings.ToLower(apiErr.Message)
	if strings.Contains(lower, "safety") || strings.Contains(lower, "blocked") {
		return true
	}
	for _, e := range apiErr.Errors {
		if e.Reason == "SAFETY" || e.Reason == "BLOCKED" {
			return true
		}
	}
	return false
}
