package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	globalMetrics *Metrics
	globalMu      sync.RWMutex
)

// Metrics holds the Prometheus metrics for the API.
type Metrics struct {
	// Weekly resolver
	ResolverRequestsTotal   *prometheus.CounterVec
	ResolverWeeksReturned   prometheus.Histogram
	ResolverCategoryDropped *prometheus.CounterVec
	ResolverDuration        prometheus.Histogram

	// Generic API
	APIRequestsTotal *prometheus.CounterVec
	APIErrorsTotal   *prometheus.CounterVec

	// Background jobs
	TasksProcessedTotal *prometheus.CounterVec
	MailSentTotal       prometheus.Counter
	MailFailedTotal     prometheus.Counter

	registry *prometheus.Registry
}

// New creates a Metrics instance with all collectors registered on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		ResolverRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brokerkit_resolver_requests_total",
				Help: "Total weekly resolver requests by region and outcome",
			},
			[]string{"region", "outcome"},
		),
		ResolverWeeksReturned: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "brokerkit_resolver_weeks_returned",
				Help:    "Number of week entries per resolver response",
				Buckets: []float64{0, 1, 4, 9, 16, 26, 52},
			},
		),
		ResolverCategoryDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brokerkit_resolver_category_dropped_total",
				Help: "Categories dropped from resolver output by soft failure",
			},
			[]string{"category"},
		),
		ResolverDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "brokerkit_resolver_duration_seconds",
				Help:    "Weekly resolver latency",
				Buckets: prometheus.DefBuckets,
			},
		),
		APIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brokerkit_api_requests_total",
				Help: "API requests by method and status",
			},
			[]string{"method", "status"},
		),
		APIErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brokerkit_api_errors_total",
				Help: "API errors by status code",
			},
			[]string{"status"},
		),
		TasksProcessedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brokerkit_tasks_processed_total",
				Help: "Background tasks processed by type and outcome",
			},
			[]string{"type", "outcome"},
		),
		MailSentTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "brokerkit_mail_sent_total",
				Help: "Template share emails delivered",
			},
		),
		MailFailedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "brokerkit_mail_failed_total",
				Help: "Template share emails that failed delivery",
			},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.ResolverRequestsTotal,
		m.ResolverWeeksReturned,
		m.ResolverCategoryDropped,
		m.ResolverDuration,
		m.APIRequestsTotal,
		m.APIErrorsTotal,
		m.TasksProcessedTotal,
		m.MailSentTotal,
		m.MailFailedTotal,
	)

	return m
}

// Registry returns the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetGlobal installs m as the process-wide metrics instance.
func SetGlobal(m *Metrics) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalMetrics = m
}

// Global returns the process-wide metrics instance, or nil before
// SetGlobal.
func Global() *Metrics {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalMetrics
}
