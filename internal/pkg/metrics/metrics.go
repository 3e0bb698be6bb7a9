package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is safe to use through a nil pointer; every recorder becomes a no-op.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// outcome: created, conflict, rate_limited, rejected, error
	HoldsTotal *prometheus.CounterVec

	// outcome: confirmed, late_confirmed, late_conflict, failed, duplicate, rejected, error
	WebhooksTotal *prometheus.CounterVec

	// operation: acquire/release, status: success/failed/skipped
	AdvisoryLockDuration *prometheus.HistogramVec

	// job: expire_holds, complete_reservations, purge_idempotency
	SweepProcessed *prometheus.CounterVec
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HoldsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_holds_total",
				Help: "Hold attempts by outcome",
			},
			[]string{"outcome"},
		),
		WebhooksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_webhooks_total",
				Help: "Payment gateway deliveries by outcome",
			},
			[]string{"outcome"},
		),
		AdvisoryLockDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "advisory_lock_duration_seconds",
				Help:    "Time spent on advisory lock operations",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation", "status"},
		),
		SweepProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lifecycle_sweep_processed_total",
				Help: "Rows transitioned by background sweeps",
			},
			[]string{"job"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HoldsTotal,
		m.WebhooksTotal,
		m.AdvisoryLockDuration,
		m.SweepProcessed,
	)

	return m
}

func (m *Metrics) Hold(outcome string) {
	if m == nil {
		return
	}
	m.HoldsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Webhook(outcome string) {
	if m == nil {
		return
	}
	m.WebhooksTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Lock(operation, status string, started time.Time) {
	if m == nil {
		return
	}
	m.AdvisoryLockDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

func (m *Metrics) Swept(job string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.SweepProcessed.WithLabelValues(job).Add(float64(n))
}

func (m *Metrics) Request(method, path, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
