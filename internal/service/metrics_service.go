package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/college-events-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation. A nil *MetricsService is a valid no-op.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	published       prometheus.Counter
	decisions       *prometheus.CounterVec
	deleted         prometheus.Counter
	registrations   *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	published := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "events_published_total",
		Help: "Events submitted for approval",
	})

	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "event_decisions_total",
		Help: "Approval decisions by outcome",
	}, []string{"status"})

	deleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "events_deleted_total",
		Help: "Events removed together with their registrations",
	})

	registrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registrations_total",
		Help: "Registration ledger changes by action",
	}, []string{"action"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, published, decisions, deleted, registrations, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		published:       published,
		decisions:       decisions,
		deleted:         deleted,
		registrations:   registrations,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// EventPublished counts a new pending event.
func (m *MetricsService) EventPublished() {
	if m == nil {
		return
	}
	m.published.Inc()
}

// EventDecided counts an approval or rejection.
func (m *MetricsService) EventDecided(status models.EventStatus) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(string(status)).Inc()
}

// EventDeleted counts a confirmed delete.
func (m *MetricsService) EventDeleted() {
	if m == nil {
		return
	}
	m.deleted.Inc()
}

// RegistrationChanged counts register and withdraw actions that changed the ledger.
func (m *MetricsService) RegistrationChanged(action string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(action).Inc()
}
