package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CacheMetricsCollector for key-value store operations
type CacheMetricsCollector interface {
	RedisCommand(command string, err error)
}

// NoOpCollector discards all observations
type NoOpCollector struct{}

// RedisCommand implements CacheMetricsCollector
func (NoOpCollector) RedisCommand(string, error) {}

// Metrics holds the Prometheus collectors of the service
type Metrics struct {
	registry *prometheus.Registry

	RequestCount     *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RateLimitResults *prometheus.CounterVec
	AuthFailures     *prometheus.CounterVec
	CacheCommands    *prometheus.CounterVec
}

// NewMetrics creates the collectors under namespace and registers them on a dedicated registry
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RateLimitResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ratelimit",
				Name:      "decisions_total",
				Help:      "Rate limiter decisions by policy and outcome",
			},
			[]string{"policy", "outcome"},
		),
		AuthFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "failures_total",
				Help:      "Rejected requests by failure kind",
			},
			[]string{"kind"},
		),
		CacheCommands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "commands_total",
				Help:      "Key-value store commands by outcome",
			},
			[]string{"command", "status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestCount,
		m.RequestDuration,
		m.RateLimitResults,
		m.AuthFailures,
		m.CacheCommands,
	)
	return m
}

// Handler returns the HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one served request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.RequestCount.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RateLimitDecision records a limiter outcome
func (m *Metrics) RateLimitDecision(policy string, allowed bool) {
	outcome := "allowed"
	if !allowed {
		outcome = "rejected"
	}
	m.RateLimitResults.WithLabelValues(policy, outcome).Inc()
}

// AuthFailure records a rejected authentication or authorization
func (m *Metrics) AuthFailure(kind string) {
	m.AuthFailures.WithLabelValues(kind).Inc()
}

// RedisCommand implements CacheMetricsCollector
func (m *Metrics) RedisCommand(command string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.CacheCommands.WithLabelValues(command, status).Inc()
}
