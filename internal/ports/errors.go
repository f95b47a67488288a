package ports

import (
	"errors"
	"fmt"

	"github.com/quartetlab/quartet/internal/domain"
)

// Common infrastructure errors surfaced across the ports boundary.
var (
	// ErrCacheUnavailable indicates the cache backing store failed.
	// The orchestrator treats this as a forced miss, never a request
	// failure.
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrGenerationTimeout indicates a generation call exceeded its
	// per-call timeout budget.
	ErrGenerationTimeout = errors.New("generation timed out")

	// ErrGenerationBackend indicates the generation backend failed for a
	// reason other than a timeout.
	ErrGenerationBackend = errors.New("generation backend error")

	// ErrConfigMissing indicates optional configuration (prompt
	// templates, creative persona document) is absent. Recovered locally
	// via fallback defaults, never surfaced to callers.
	ErrConfigMissing = errors.New("configuration not found")
)

// GenerationError wraps a backend failure with the condition and model
// it occurred under. It is distinguishable from validation errors: a
// GenerationError is a server-side failure, a domain.ValidationError is
// a client error.
type GenerationError struct {
	// Condition is the experimental arm whose unit failed.
	Condition domain.Condition

	// Model is the backend model the call targeted.
	Model string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface for GenerationError.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: condition=%s, model=%s, err=%v",
		e.Condition, e.Model, e.Err)
}

// Unwrap returns the underlying error for errors.Is inspection.
func (e *GenerationError) Unwrap() error { return e.Err }

// Timeout reports whether the wrapped failure was a timeout.
func (e *GenerationError) Timeout() bool {
	return errors.Is(e.Err, ErrGenerationTimeout)
}

// CacheError wraps a cache store failure with the operation and key
// involved.
type CacheError struct {
	Operation string
	Key       string
	Err       error
}

// Error implements the error interface for CacheError.
func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s failed: key=%s, err=%v", e.Operation, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *CacheError) Unwrap() error { return e.Err }

// NewCacheError wraps err so that errors.Is(err, ErrCacheUnavailable)
// holds while the operation and key context is retained.
func NewCacheError(operation, key string, err error) *CacheError {
	return &CacheError{
		Operation: operation,
		Key:       key,
		Err:       fmt.Errorf("%w: %w", ErrCacheUnavailable, err),
	}
}
