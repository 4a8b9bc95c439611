// Package metrics holds the prometheus collectors of the service. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "verdix"

const (
	StatusOK    = "ok"
	StatusError = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	storeCalls         *prometheus.CounterVec
	storeLatency       *prometheus.HistogramVec
	submissions        *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	leaderboardLatency prometheus.Histogram
	leaderboardTeams   prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		storeCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "requests_total",
			Help:      "Store round trips by table, operation and status.",
		}, []string{"table", "op", "status"}),
		storeLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "request_duration_seconds",
			Help:      "Store round trip latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"table", "op"}),
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Accepted submissions by kind.",
		}, []string{"kind"}),
		validationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected submissions by form.",
		}, []string{"form"}),
		leaderboardLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "compute_duration_seconds",
			Help:      "Time to read scores and rank teams.",
			Buckets:   prometheus.DefBuckets,
		}),
		leaderboardTeams: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "teams",
			Help:      "Teams present in the last computed leaderboard.",
		}),
	}
}

func Status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveStoreCall(table, op string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.storeCalls.WithLabelValues(table, op, Status(err)).Inc()
	m.storeLatency.WithLabelValues(table, op).Observe(elapsed.Seconds())
}

func (m *Metrics) CountSubmission(kind string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(kind).Inc()
}

func (m *Metrics) CountValidationFailure(form string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(form).Inc()
}

func (m *Metrics) ObserveLeaderboard(teams int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.leaderboardLatency.Observe(elapsed.Seconds())
	m.leaderboardTeams.Set(float64(teams))
}
