package observability

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
)

// Metrics holds the Prometheus metrics of the chart service.
type Metrics struct {
	// Registry owns these metrics; the /metrics endpoint serves it.
	Registry *prometheus.Registry

	charts       *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
}

// NewMetrics registers all metrics in a private registry, so repeated calls
// (as in tests) do not collide.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		charts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ziwei_charts_total",
				Help: "Chart computations by outcome.",
			},
			[]string{"outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ziwei_chart_duration_seconds",
				Help:    "Duration of chart operations.",
				Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
			},
			[]string{"operation"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ziwei_http_requests_total",
				Help: "HTTP requests by method and status.",
			},
			[]string{"method", "status"},
		),
	}
}

// Outcome labels an operation result: "ok", or the lowercased error code.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if cErr, ok := errors.As(err); ok {
		return strings.ToLower(string(cErr.Code))
	}
	return strings.ToLower(string(errors.ErrInternal))
}

// RecordChart counts one chart operation and observes its duration.
func (m *Metrics) RecordChart(operation string, d time.Duration, err error) {
	m.charts.WithLabelValues(Outcome(err)).Inc()
	m.duration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrHTTPRequest counts one served HTTP request.
func (m *Metrics) IncrHTTPRequest(method string, status int) {
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
