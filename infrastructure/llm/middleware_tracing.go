package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quartetlab/quartet/internal/ports"
)

// tracedLLM wraps generation calls in OpenTelemetry spans.
type tracedLLM struct {
	next   CoreLLM
	tracer trace.Tracer
}

// TracingMiddleware creates middleware that records each generation call
// as a span named "llm.generate" under the given service name, with the
// model, prompt sizes, and token usage as attributes.
func TracingMiddleware(serviceName string) Middleware {
	tracer := otel.Tracer(serviceName)
	return func(next CoreLLM) CoreLLM {
		return &tracedLLM{next: next, tracer: tracer}
	}
}

// DoRequest executes the request inside a span.
func (t *tracedLLM) DoRequest(ctx context.Context, system, user string, opts ports.GenerationOptions) (string, int, int, error) {
	ctx, span := t.tracer.Start(ctx, "llm.generate",
		trace.WithAttributes(
			attribute.String("llm.model", t.next.GetModel()),
			attribute.Int("llm.system_prompt.length", len(system)),
			attribute.Int("llm.user_prompt.length", len(user)),
		),
	)
	defer span.End()

	text, tokensIn, tokensOut, err := t.next.DoRequest(ctx, system, user, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(
			attribute.Int("llm.tokens.input", tokensIn),
			attribute.Int("llm.tokens.output", tokensOut),
		)
	}

	return text, tokensIn, tokensOut, err
}

// GetModel returns the model name from the wrapped implementation.
func (t *tracedLLM) GetModel() string { return t.next.GetModel() }

// SetModel updates the model name in the wrapped implementation.
func (t *tracedLLM) SetModel(m string) { t.next.SetModel(m) }
