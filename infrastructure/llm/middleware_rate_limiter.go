package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/quartetlab/quartet/internal/ports"
)

// rateLimitedLLM paces requests to the backend with a token bucket so a
// burst of survey sessions cannot trip the provider's own limits.
type rateLimitedLLM struct {
	next    CoreLLM
	limiter *rate.Limiter
}

// RateLimitMiddleware creates middleware enforcing a sustained
// requests-per-second rate with the given burst allowance. The limiter
// is shared across all calls through the wrapped client.
func RateLimitMiddleware(limit rate.Limit, burst int) Middleware {
	limiter := rate.NewLimiter(limit, burst)
	return func(next CoreLLM) CoreLLM {
		return &rateLimitedLLM{next: next, limiter: limiter}
	}
}

// DoRequest blocks until the limiter grants a token, then forwards the
// request. Context cancellation while waiting aborts the call.
func (r *rateLimitedLLM) DoRequest(ctx context.Context, system, user string, opts ports.GenerationOptions) (string, int, int, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", 0, 0, fmt.Errorf("rate limit: %w", err)
	}
	return r.next.DoRequest(ctx, system, user, opts)
}

// GetModel returns the model name from the wrapped implementation.
func (r *rateLimitedLLM) GetModel() string { return r.next.GetModel() }

// SetModel updates the model name in the wrapped implementation.
func (r *rateLimitedLLM) SetModel(m string) { r.next.SetModel(m) }
