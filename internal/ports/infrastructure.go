// Package ports defines the interfaces between the generation core and
// its infrastructure collaborators: the text-generation backend, the
// response cache, durable storage, metrics, and the PII scrubber.
// Implementations live under infrastructure/; the core depends only on
// this package.
package ports

import (
	"context"
	"time"
)

// GenerationOptions carries the model parameters for one backend call.
// Nil pointer fields mean "use the provider default".
type GenerationOptions struct {
	// Model overrides the client's configured model when non-empty.
	Model string

	// Temperature controls sampling randomness.
	Temperature *float64

	// TopP is the nucleus-sampling threshold.
	TopP *float64

	// MaxTokens caps the completion length. Zero means provider default.
	MaxTokens int

	// Seed requests deterministic sampling on providers that support it;
	// others ignore it.
	Seed *int
}

// GenerationOutput is the backend's answer to one system/user pair.
type GenerationOutput struct {
	// Text is the raw generated text, unparsed and unscrubbed.
	Text string

	// Model is the model identifier the provider reports for the call.
	Model string

	// TokensIn and TokensOut are prompt and completion token counts,
	// estimated when the provider does not report them.
	TokensIn  int
	TokensOut int
}

// LLMClient is the generation backend adapter. The system prompt stays a
// fixed instruction and the user prompt carries the per-participant
// variation; implementations must keep the two in separate turns on
// providers that distinguish them.
type LLMClient interface {
	// Generate sends one system/user message pair and returns the
	// generated text with usage. The call honors ctx for cancellation;
	// per-call timeouts are the implementation's concern.
	Generate(ctx context.Context, system, user string, opts GenerationOptions) (GenerationOutput, error)

	// Model returns the configured model identifier, for logging and
	// result rows.
	Model() string
}

// CacheStore is the idempotency layer in front of generation, keyed by
// (participant, task, condition). Entries expire passively after their
// TTL: an expired entry reads as a miss and is purged lazily, not
// background-swept. Implementations must support concurrent access to
// distinct keys.
type CacheStore interface {
	// Get retrieves a cached value. The boolean reports presence; an
	// expired entry is absent. A non-nil error means the backing store
	// itself failed, which callers may treat as a forced miss.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value with an expiry. A zero ttl stores without
	// expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes one key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear drops all entries. Administrative reset only.
	Clear(ctx context.Context) error
}

// Scrubber post-processes generated text before it is cached or shown.
// Implementations are best-effort filters; a pass-through scrubber is a
// valid implementation.
type Scrubber interface {
	Scrub(text string) string
}

// MetricsCollector abstracts operational metrics so the core does not
// depend on a concrete observability backend.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter, for events like cache hits and
	// forced misses.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a distribution, such as token
	// counts per generation.
	RecordHistogram(metric string, value float64, labels map[string]string)
}
