package llm

import (
	"context"
	"time"

	"github.com/quartetlab/quartet/internal/ports"
)

// timeoutLLM enforces a per-call deadline. Each generation call gets the
// full budget independently; the orchestrator fans out four calls, so
// the slowest straggler bounds total request latency, not the sum.
type timeoutLLM struct {
	next    CoreLLM
	timeout time.Duration
}

// TimeoutMiddleware creates middleware that bounds each request with a
// deadline. Exceeding it yields a context deadline error, classified as
// a generation timeout by the client.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next CoreLLM) CoreLLM {
		return &timeoutLLM{next: next, timeout: timeout}
	}
}

// DoRequest executes the request under a timeout context.
func (t *timeoutLLM) DoRequest(ctx context.Context, system, user string, opts ports.GenerationOptions) (string, int, int, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.DoRequest(ctx, system, user, opts)
}

// GetModel returns the model name from the wrapped implementation.
func (t *timeoutLLM) GetModel() string { return t.next.GetModel() }

// SetModel updates the model name in the wrapped implementation.
func (t *timeoutLLM) SetModel(m string) { t.next.SetModel(m) }
