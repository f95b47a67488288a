package llm

import (
	"context"
	"errors"
	"time"

	"github.com/quartetlab/quartet/internal/ports"
)

// metricsLLM records latency, request counts, and token usage for every
// generation call.
type metricsLLM struct {
	next      CoreLLM
	collector ports.MetricsCollector
}

// MetricsMiddleware creates middleware that reports generation metrics
// to the given collector. A nil collector disables collection without
// disturbing the chain.
func MetricsMiddleware(collector ports.MetricsCollector) Middleware {
	return func(next CoreLLM) CoreLLM {
		return &metricsLLM{next: next, collector: collector}
	}
}

// DoRequest executes the request and records its outcome.
func (m *metricsLLM) DoRequest(ctx context.Context, system, user string, opts ports.GenerationOptions) (string, int, int, error) {
	start := time.Now()
	text, tokensIn, tokensOut, err := m.next.DoRequest(ctx, system, user, opts)

	if m.collector != nil {
		labels := map[string]string{
			"model":  m.next.GetModel(),
			"status": statusLabel(ctx, err),
		}
		m.collector.RecordHistogram("generation_latency_seconds", time.Since(start).Seconds(), labels)
		m.collector.RecordCounter("generation_requests_total", 1, labels)
		if err == nil {
			labels["token_type"] = "input"
			m.collector.RecordCounter("generation_tokens_total", float64(tokensIn), labels)
			labels["token_type"] = "output"
			m.collector.RecordCounter("generation_tokens_total", float64(tokensOut), labels)
		}
	}

	return text, tokensIn, tokensOut, err
}

func statusLabel(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.DeadlineExceeded), ctx.Err() == context.DeadlineExceeded:
		return "timeout"
	default:
		return "error"
	}
}

// GetModel returns the model name from the wrapped implementation.
func (m *metricsLLM) GetModel() string { return m.next.GetModel() }

// SetModel updates the model name in the wrapped implementation.
func (m *metricsLLM) SetModel(model string) { m.next.SetModel(model) }
