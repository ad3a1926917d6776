package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the classification metric instruments.
// All counters are cumulative and safe for concurrent use.
type Metrics struct {
	Calls    metric.Int64Counter
	Texts    metric.Int64Counter
	Errors   metric.Int64Counter
	Duration metric.Float64Histogram
}

// NewMetrics creates all instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.Calls, err = meter.Int64Counter("classify.calls",
		metric.WithDescription("Number of batched classifier calls"))
	if err != nil {
		return nil, err
	}

	m.Texts, err = meter.Int64Counter("classify.texts",
		metric.WithDescription("Number of texts sent to the classifier"),
		metric.WithUnit("{text}"))
	if err != nil {
		return nil, err
	}

	m.Errors, err = meter.Int64Counter("classify.errors",
		metric.WithDescription("Number of failed classifier calls"))
	if err != nil {
		return nil, err
	}

	m.Duration, err = meter.Float64Histogram("classify.duration",
		metric.WithDescription("Classifier call latency"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordCall records one classifier call over n texts.
func (m *Metrics) RecordCall(ctx context.Context, model string, n int, seconds float64, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("classify.model", model))
	m.Calls.Add(ctx, 1, attrs)
	m.Texts.Add(ctx, int64(n), attrs)
	m.Duration.Record(ctx, seconds, attrs)
	if err != nil {
		m.Errors.Add(ctx, 1, attrs)
	}
}
