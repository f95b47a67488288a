package domain

// GenerationResult is one generated response under one condition.
// Results are immutable once created: a cache hit returns the stored
// result with FromCache flipped, and after TTL expiry a fresh result
// with a new ResponseID supersedes it. The JSON field names are the
// cache serialization format and the export payload shape.
type GenerationResult struct {
	// Condition tags which experimental arm produced this result.
	Condition Condition `json:"condition"`

	// ResponseID is a unique identifier minted when the result is first
	// generated. Ratings reference it.
	ResponseID string `json:"responseId"`

	// Text is the final response text, after PII scrubbing when enabled.
	Text string `json:"text"`

	// Model identifies the backend model that produced the text.
	Model string `json:"model"`

	// TokensIn and TokensOut are the prompt and completion token counts
	// reported (or estimated) by the backend.
	TokensIn  int `json:"tokensIn"`
	TokensOut int `json:"tokensOut"`

	// LatencyMS is the wall-clock generation time in milliseconds.
	// Cache hits keep the latency recorded when the result was first
	// generated.
	LatencyMS int64 `json:"generationTimeMs"`

	// SystemPrompt and UserPrompt are the exact prompts sent to the
	// backend, retained for export.
	SystemPrompt string `json:"systemPrompt"`
	UserPrompt   string `json:"userPrompt"`

	// FromCache reports whether this result was served from the response
	// cache rather than freshly generated.
	FromCache bool `json:"fromCache"`
}
