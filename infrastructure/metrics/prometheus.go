// Package metrics provides the Prometheus-backed implementation of the
// MetricsCollector port.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/quartetlab/quartet/internal/ports"
)

// PrometheusMetrics implements ports.MetricsCollector. It exposes
// generation performance, token usage, and cache behavior for the
// study backend.
type PrometheusMetrics struct {
	generationLatency  *prometheus.HistogramVec
	generationRequests *prometheus.CounterVec
	generationTokens   *prometheus.CounterVec
	cacheEvents        *prometheus.CounterVec
	operationLatency   *prometheus.HistogramVec
	operationCounter   *prometheus.CounterVec
}

var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics registers all metrics with reg and returns the
// collector. Pass prometheus.DefaultRegisterer in production; tests use
// a fresh registry to avoid duplicate-registration panics.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		generationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "generation_latency_seconds",
				Help:    "Wall-clock duration of individual LLM generation calls.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"model", "status"},
		),
		generationRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generation_requests_total",
				Help: "Total LLM generation calls by outcome.",
			},
			[]string{"model", "status"},
		),
		generationTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generation_tokens_total",
				Help: "Total tokens consumed by LLM generation calls.",
			},
			[]string{"model", "status", "token_type"},
		),
		cacheEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_events_total",
				Help: "Idempotency cache outcomes: hit, miss, or forced_miss.",
			},
			[]string{"event"},
		),
		operationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "operation_duration_seconds",
				Help:    "Execution time of top-level backend operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "operations_total",
				Help: "Total top-level backend operations by outcome.",
			},
			[]string{"operation", "status"},
		),
	}
}

// RecordLatency records the execution time of an operation.
func (pm *PrometheusMetrics) RecordLatency(operation string, duration time.Duration, labels map[string]string) {
	pm.operationLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter routes named counters onto their metric vectors.
// Unrecognized names fall through to the generic operation counter.
func (pm *PrometheusMetrics) RecordCounter(metric string, value float64, labels map[string]string) {
	switch metric {
	case "generation_requests_total":
		pm.generationRequests.WithLabelValues(
			labels["model"], labels["status"],
		).Add(value)
	case "generation_tokens_total":
		pm.generationTokens.WithLabelValues(
			labels["model"], labels["status"], labels["token_type"],
		).Add(value)
	case "cache_events_total":
		pm.cacheEvents.WithLabelValues(labels["event"]).Add(value)
	default:
		status, ok := labels["status"]
		if !ok {
			status = "unknown"
		}
		pm.operationCounter.WithLabelValues(metric, status).Add(value)
	}
}

// RecordHistogram records a distribution observation.
func (pm *PrometheusMetrics) RecordHistogram(metric string, value float64, labels map[string]string) {
	switch metric {
	case "generation_latency_seconds":
		pm.generationLatency.WithLabelValues(
			labels["model"], labels["status"],
		).Observe(value)
	default:
		operation, ok := labels["operation"]
		if !ok {
			operation = metric
		}
		pm.operationLatency.WithLabelValues(operation).Observe(value)
	}
}
