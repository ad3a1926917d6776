package otel

import (
	"context"
	"time"

	"github.com/fwojciec/emoscope"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Compile-time interface verification.
var _ emoscope.Classifier = (*Classifier)(nil)

// Classifier wraps another Classifier with a span and metrics per call.
type Classifier struct {
	inner   emoscope.Classifier
	model   string
	tracer  trace.Tracer
	metrics *Metrics
}

// NewClassifier decorates inner. A nil metrics records nothing.
func NewClassifier(inner emoscope.Classifier, model string, tracer trace.Tracer, metrics *Metrics) *Classifier {
	return &Classifier{inner: inner, model: model, tracer: tracer, metrics: metrics}
}

func (c *Classifier) Classify(ctx context.Context, texts []string) ([]emoscope.ScoreDistribution, error) {
	ctx, span := c.tracer.Start(ctx, "classify "+c.model,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("classify.model", c.model),
			attribute.Int("classify.batch_size", len(texts)),
		),
	)
	defer span.End()

	start := time.Now()
	dists, err := c.inner.Classify(ctx, texts)
	c.metrics.RecordCall(ctx, c.model, len(texts), time.Since(start).Seconds(), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return dists, nil
}

// Loader wraps another Loader so the classifier it returns is instrumented.
type Loader struct {
	inner   emoscope.Loader
	tracer  trace.Tracer
	metrics *Metrics
}

// Compile-time interface verification.
var _ emoscope.Loader = (*Loader)(nil)

// NewLoader decorates inner.
func NewLoader(inner emoscope.Loader, tracer trace.Tracer, metrics *Metrics) *Loader {
	return &Loader{inner: inner, tracer: tracer, metrics: metrics}
}

func (l *Loader) Model() string {
	return l.inner.Model()
}

// Load runs the inner load under a "load {model}" span.
func (l *Loader) Load(ctx context.Context) (emoscope.Classifier, error) {
	ctx, span := l.tracer.Start(ctx, "load "+l.inner.Model())
	defer span.End()

	c, err := l.inner.Load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return NewClassifier(c, l.inner.Model(), l.tracer, l.metrics), nil
}
