package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation results recorded for catalog operations
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics holds the Prometheus collectors of the application. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	CourseOperations *prometheus.CounterVec
	CatalogSize      prometheus.Gauge
}

// New creates the collectors on a private registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		CourseOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_course_operations_total",
				Help: "Catalog operations by outcome",
			},
			[]string{"operation", "result"},
		),
		CatalogSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "catalog_courses",
				Help: "Number of courses seen on the last catalog load",
			},
		),
	}
}

// RecordHTTPRequest records one served request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordCourseOperation counts a catalog operation outcome
func (m *Metrics) RecordCourseOperation(operation, result string) {
	if m == nil {
		return
	}
	m.CourseOperations.WithLabelValues(operation, result).Inc()
}

// SetCatalogSize updates the catalog size gauge
func (m *Metrics) SetCatalogSize(n int) {
	if m == nil {
		return
	}
	m.CatalogSize.Set(float64(n))
}

// Handler serves the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
