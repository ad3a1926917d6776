package gin

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the HTTP API.
type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
	Lines    prometheus.Histogram
	Results  *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emoscope",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		Latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "emoscope",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Lines: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "emoscope",
			Name:      "analyze_lines",
			Help:      "Number of non-empty lines per analyze request.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
		Results: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emoscope",
			Name:      "dominant_emotions_total",
			Help:      "Dominant emotions returned, by emotion.",
		}, []string{"emotion"}),
	}
}
