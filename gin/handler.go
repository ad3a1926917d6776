// Package gin serves the emotion analysis HTTP API.
package gin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fwojciec/emoscope"
	ginlib "github.com/gin-gonic/gin"
)

// MaxBodyBytes bounds the size of an analyze request body.
const MaxBodyBytes = 1 << 20

// EmptyInputWarning is returned with an empty result list.
const EmptyInputWarning = "Please enter some text."

// Analyzer turns raw text into result records.
type Analyzer interface {
	Analyze(ctx context.Context, raw string) ([]emoscope.ResultRecord, error)
}

// Readiness reports whether the classifier has been loaded.
type Readiness interface {
	Loaded() bool
	Model() string
}

// HealthChecker probes a backend dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler serves the API endpoints.
type Handler struct {
	analyzer  Analyzer
	readiness Readiness
	backend   HealthChecker
	metrics   *Metrics
}

// NewHandler creates a Handler. backend and metrics may be nil.
func NewHandler(analyzer Analyzer, readiness Readiness, backend HealthChecker, metrics *Metrics) *Handler {
	return &Handler{
		analyzer:  analyzer,
		readiness: readiness,
		backend:   backend,
		metrics:   metrics,
	}
}

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// ResultView is a result record together with its badge.
type ResultView struct {
	emoscope.ResultRecord
	Badge emoscope.Badge `json:"badge"`
}

// AnalyzeData is the data payload of a successful analyze response.
type AnalyzeData struct {
	Results []ResultView `json:"results"`
	Count   int          `json:"count"`
	Warning string       `json:"warning,omitempty"`
}

// Analyze handles POST /api/v1/analyze.
func (h *Handler) Analyze(c *ginlib.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			HandlePayloadTooLarge(c)
			return
		}
		HandleInvalidRequest(c, "request body must be JSON like {\"text\": \"...\"}")
		return
	}

	lines := emoscope.SplitLines(req.Text)
	if len(lines) == 0 {
		respondSuccess(c, http.StatusOK, AnalyzeData{
			Results: []ResultView{},
			Warning: EmptyInputWarning,
		})
		return
	}
	if h.metrics != nil {
		h.metrics.Lines.Observe(float64(len(lines)))
	}

	records, err := h.analyzer.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		_ = c.Error(err)
		HandleError(c, err)
		return
	}

	views := make([]ResultView, len(records))
	for i, r := range records {
		views[i] = ResultView{ResultRecord: r, Badge: emoscope.BadgeFor(r.Emotion)}
		if h.metrics != nil {
			h.metrics.Results.WithLabelValues(r.Emotion).Inc()
		}
	}
	respondSuccess(c, http.StatusOK, AnalyzeData{Results: views, Count: len(views)})
}

// Badges handles GET /api/v1/badges.
func (h *Handler) Badges(c *ginlib.Context) {
	respondSuccess(c, http.StatusOK, emoscope.Badges())
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Health handles GET /health.
func (h *Handler) Health(c *ginlib.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := map[string]string{"backend": "not configured"}
	healthy := true
	if h.backend != nil {
		if err := h.backend.Health(ctx); err != nil {
			components["backend"] = "error: " + err.Error()
			healthy = false
		} else {
			components["backend"] = "ok"
		}
	}

	if h.readiness.Loaded() {
		components["model"] = "loaded"
	} else {
		components["model"] = "not loaded"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}
	c.JSON(httpStatus, HealthStatus{Status: status, Components: components})
}

// Ready handles GET /ready. The service is ready once the model is loaded.
func (h *Handler) Ready(c *ginlib.Context) {
	if !h.readiness.Loaded() {
		c.JSON(http.StatusServiceUnavailable, ginlib.H{"status": "not ready", "reason": "model not loaded"})
		return
	}
	c.JSON(http.StatusOK, ginlib.H{"status": "ready", "model": h.readiness.Model()})
}
