package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/emoscope"
	"github.com/fwojciec/emoscope/mock"
	"github.com/fwojciec/emoscope/otel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestParseHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{name: "empty", raw: "", want: map[string]string{}},
		{name: "single", raw: "Authorization=Basic abc", want: map[string]string{"Authorization": "Basic abc"}},
		{name: "multiple with spaces", raw: " a = 1 , b=2", want: map[string]string{"a": "1", "b": "2"}},
		{name: "value with equals", raw: "k=v=w", want: map[string]string{"k": "v=w"}},
		{name: "skips malformed", raw: "novalue,=x,ok=1", want: map[string]string{"ok": "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, otel.ParseHeaders(tt.raw))
		})
	}
}

func TestInit_NoEndpointIsNoop(t *testing.T) {
	t.Parallel()

	tel, err := otel.Init(context.Background(), otel.Config{})

	require.NoError(t, err)
	assert.False(t, tel.Enabled())
	assert.NotNil(t, tel.Tracer)
	assert.NotNil(t, tel.Metrics)
	tel.Shutdown(context.Background())
}

type harness struct {
	spans  *tracetest.SpanRecorder
	reader *sdkmetric.ManualReader
	tp     *sdktrace.TracerProvider
	m      *otel.Metrics
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := otel.NewMetrics(mp.Meter("test"))
	require.NoError(t, err)
	return &harness{spans: spans, reader: reader, tp: tp, m: m}
}

func (h *harness) sum(t *testing.T, name string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, h.reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if md.Name != name {
				continue
			}
			data, ok := md.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			var total int64
			for _, dp := range data.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	t.Run("records span and counters", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		inner := &mock.Classifier{
			ClassifyFn: func(_ context.Context, texts []string) ([]emoscope.ScoreDistribution, error) {
				return make([]emoscope.ScoreDistribution, len(texts)), nil
			},
		}
		c := otel.NewClassifier(inner, "emo", h.tp.Tracer("test"), h.m)

		dists, err := c.Classify(context.Background(), []string{"a", "b", "c"})

		require.NoError(t, err)
		assert.Len(t, dists, 3)
		ended := h.spans.Ended()
		require.Len(t, ended, 1)
		assert.Equal(t, "classify emo", ended[0].Name())
		assert.Equal(t, int64(1), h.sum(t, "classify.calls"))
		assert.Equal(t, int64(3), h.sum(t, "classify.texts"))
		assert.Equal(t, int64(0), h.sum(t, "classify.errors"))
	})

	t.Run("records errors", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		boom := errors.New("boom")
		inner := &mock.Classifier{
			ClassifyFn: func(_ context.Context, _ []string) ([]emoscope.ScoreDistribution, error) {
				return nil, boom
			},
		}
		c := otel.NewClassifier(inner, "emo", h.tp.Tracer("test"), h.m)

		_, err := c.Classify(context.Background(), []string{"a"})

		assert.ErrorIs(t, err, boom)
		ended := h.spans.Ended()
		require.Len(t, ended, 1)
		assert.Equal(t, codes.Error, ended[0].Status().Code)
		assert.Equal(t, int64(1), h.sum(t, "classify.errors"))
	})

	t.Run("nil metrics are ignored", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		inner := &mock.Classifier{
			ClassifyFn: func(_ context.Context, _ []string) ([]emoscope.ScoreDistribution, error) {
				return []emoscope.ScoreDistribution{{}}, nil
			},
		}
		c := otel.NewClassifier(inner, "emo", h.tp.Tracer("test"), nil)

		_, err := c.Classify(context.Background(), []string{"a"})

		assert.NoError(t, err)
	})
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("instruments the loaded classifier", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		inner := &mock.Loader{
			LoadFn: func(_ context.Context) (emoscope.Classifier, error) {
				return &mock.Classifier{
					ClassifyFn: func(_ context.Context, texts []string) ([]emoscope.ScoreDistribution, error) {
						return make([]emoscope.ScoreDistribution, len(texts)), nil
					},
				}, nil
			},
		}
		l := otel.NewLoader(inner, h.tp.Tracer("test"), h.m)

		c, err := l.Load(context.Background())
		require.NoError(t, err)
		_, err = c.Classify(context.Background(), []string{"a"})
		require.NoError(t, err)

		names := make([]string, 0, 2)
		for _, s := range h.spans.Ended() {
			names = append(names, s.Name())
		}
		assert.ElementsMatch(t, []string{"load mock-model", "classify mock-model"}, names)
		assert.Equal(t, "mock-model", l.Model())
	})

	t.Run("propagates load error", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		inner := &mock.Loader{
			LoadFn: func(_ context.Context) (emoscope.Classifier, error) {
				return nil, errors.New("missing")
			},
		}

		_, err := otel.NewLoader(inner, h.tp.Tracer("test"), h.m).Load(context.Background())

		assert.Error(t, err)
	})
}
