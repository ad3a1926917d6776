package gin_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/emoscope"
	emogin "github.com/fwojciec/emoscope/gin"
	"github.com/fwojciec/emoscope/mock"
	ginlib "github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	ginlib.SetMode(ginlib.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
		Timestamp string `json:"timestamp"`
	} `json:"meta"`
}

type analyzeData struct {
	Results []struct {
		Text       string  `json:"input_text"`
		Emotion    string  `json:"dominant_emotion"`
		Confidence float64 `json:"confidence"`
		Badge      struct {
			Emoji string `json:"emoji"`
			GIF   string `json:"gif"`
		} `json:"badge"`
	} `json:"results"`
	Count   int    `json:"count"`
	Warning string `json:"warning"`
}

// scenario scores the two reference sentences.
func scenario(calls *atomic.Int32) *mock.Classifier {
	return &mock.Classifier{
		ClassifyFn: func(_ context.Context, texts []string) ([]emoscope.ScoreDistribution, error) {
			calls.Add(1)
			out := make([]emoscope.ScoreDistribution, len(texts))
			for i, text := range texts {
				if strings.Contains(text, "thrilled") {
					out[i] = emoscope.ScoreDistribution{{Label: "joy", Score: 0.9}, {Label: "neutral", Score: 0.1}}
				} else {
					out[i] = emoscope.ScoreDistribution{{Label: "joy", Score: 0.2}, {Label: "neutral", Score: 0.8}}
				}
			}
			return out, nil
		},
	}
}

func newRouter(t *testing.T, loader emoscope.Loader) (*ginlib.Engine, *emoscope.Provider) {
	t.Helper()

	provider := emoscope.NewProvider(loader)
	analyzer := &emoscope.Analyzer{Provider: provider}
	reg := prometheus.NewRegistry()
	metrics := emogin.NewMetrics(reg)
	h := emogin.NewHandler(analyzer, provider, nil, metrics)
	return emogin.NewRouter(h, zap.NewNop(), metrics, reg), provider
}

func loaderFor(c emoscope.Classifier) *mock.Loader {
	return &mock.Loader{
		LoadFn: func(_ context.Context) (emoscope.Classifier, error) { return c, nil },
	}
}

func post(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHandler_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("returns one result per line", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		router, _ := newRouter(t, loaderFor(scenario(&calls)))

		w := post(router, `{"text":"I am thrilled about the results!\nI feel nothing."}`)

		require.Equal(t, http.StatusOK, w.Code)
		env := decode(t, w)
		assert.True(t, env.Success)
		assert.NotEmpty(t, env.Meta.RequestID)
		var data analyzeData
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.Equal(t, 2, data.Count)
		assert.Equal(t, "JOY", data.Results[0].Emotion)
		assert.Equal(t, 0.9, data.Results[0].Confidence)
		assert.Equal(t, emoscope.BadgeFor("JOY").GIF, data.Results[0].Badge.GIF)
		assert.Equal(t, "NEUTRAL", data.Results[1].Emotion)
		assert.Equal(t, "I feel nothing.", data.Results[1].Text)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("empty input warns without classifying", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		router, provider := newRouter(t, loaderFor(scenario(&calls)))

		w := post(router, `{"text":"   \n  "}`)

		require.Equal(t, http.StatusOK, w.Code)
		var data analyzeData
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
		assert.Equal(t, emogin.EmptyInputWarning, data.Warning)
		assert.Empty(t, data.Results)
		assert.Equal(t, int32(0), calls.Load())
		assert.False(t, provider.Loaded())
	})

	t.Run("malformed JSON is a bad request", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		router, _ := newRouter(t, loaderFor(scenario(&calls)))

		w := post(router, `{"text":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, emogin.CodeInvalidRequest, env.Error.Code)
	})

	t.Run("oversized body is rejected", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		router, _ := newRouter(t, loaderFor(scenario(&calls)))

		w := post(router, `{"text":"`+strings.Repeat("a", emogin.MaxBodyBytes)+`"}`)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, emogin.CodePayloadTooLarge, decode(t, w).Error.Code)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("model load failure is unavailable", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, &mock.Loader{
			LoadFn: func(_ context.Context) (emoscope.Classifier, error) {
				return nil, errors.New("no weights")
			},
		})

		w := post(router, `{"text":"hello"}`)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, emogin.CodeModelUnavailable, decode(t, w).Error.Code)
	})

	t.Run("classification failure is bad gateway", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, loaderFor(&mock.Classifier{
			ClassifyFn: func(_ context.Context, _ []string) ([]emoscope.ScoreDistribution, error) {
				return nil, errors.New("upstream 500")
			},
		}))

		w := post(router, `{"text":"hello"}`)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, emogin.CodeClassificationFailed, decode(t, w).Error.Code)
	})
}

func TestHandler_Badges(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	router, _ := newRouter(t, loaderFor(scenario(&calls)))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/badges", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var badges map[string]emoscope.Badge
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &badges))
	assert.Equal(t, emoscope.BadgeFor("NEUTRAL"), badges["NEUTRAL"])
}

func TestHandler_Ready(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	router, provider := newRouter(t, loaderFor(scenario(&calls)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	_, err := provider.Get(context.Background())
	require.NoError(t, err)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mock-model")
}

type fakeBackend struct{ err error }

func (f fakeBackend) Health(context.Context) error { return f.err }

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		backend    emogin.HealthChecker
		wantStatus int
		wantValue  string
	}{
		{name: "no backend probe", backend: nil, wantStatus: http.StatusOK, wantValue: "not configured"},
		{name: "healthy backend", backend: fakeBackend{}, wantStatus: http.StatusOK, wantValue: "ok"},
		{name: "unhealthy backend", backend: fakeBackend{err: errors.New("down")}, wantStatus: http.StatusServiceUnavailable, wantValue: "error: down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := emoscope.NewProvider(&mock.Loader{})
			h := emogin.NewHandler(&emoscope.Analyzer{Provider: provider}, provider, tt.backend, nil)
			router := emogin.NewRouter(h, zap.NewNop(), nil, prometheus.NewRegistry())
			w := httptest.NewRecorder()

			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var status emogin.HealthStatus
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
			assert.Equal(t, tt.wantValue, status.Components["backend"])
			assert.Equal(t, "not loaded", status.Components["model"])
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	router, _ := newRouter(t, loaderFor(scenario(&calls)))
	post(router, `{"text":"I am thrilled about the results!"}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "emoscope_http_requests_total")
	assert.Contains(t, body, `route="/api/v1/analyze"`)
	assert.Contains(t, body, `emoscope_dominant_emotions_total{emotion="JOY"} 1`)
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "model load", err: &emoscope.ModelLoadError{Model: "m", Err: errors.New("x")}, want: http.StatusServiceUnavailable},
		{name: "classification", err: &emoscope.ClassificationError{Batch: 1, Err: errors.New("x")}, want: http.StatusBadGateway},
		{name: "deadline", err: context.DeadlineExceeded, want: http.StatusGatewayTimeout},
		{name: "canceled", err: context.Canceled, want: emogin.StatusClientClosedRequest},
		{name: "canceled classification", err: &emoscope.ClassificationError{Batch: 1, Err: context.Canceled}, want: emogin.StatusClientClosedRequest},
		{name: "other", err: errors.New("x"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, emogin.MapError(tt.err).StatusCode)
		})
	}
}
