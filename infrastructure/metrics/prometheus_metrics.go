// Package metrics provides cross-cutting observability for exploration runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dynaverify/ddsv/internal/ports"
)

// PrometheusMetrics implements ports.MetricsCollector using Prometheus. It
// gives real-time visibility into how large an exploration's reachable
// state space is and how long traversal takes, independent of the
// per-run DeadlockReporter output.
type PrometheusMetrics struct {
	statesDiscovered *prometheus.CounterVec
	deadlocksFound   *prometheus.CounterVec
	queueDepth       *prometheus.GaugeVec
	runDuration      *prometheus.HistogramVec
	operationCounter *prometheus.CounterVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// all of its metrics in the global Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		statesDiscovered: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ddsv_states_discovered_total",
				Help: "Total number of distinct composite states inserted into the LTS.",
			},
			[]string{"scenario"},
		),
		deadlocksFound: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ddsv_deadlocks_found_total",
				Help: "Total number of deadlock states discovered during exploration.",
			},
			[]string{"scenario"},
		),
		queueDepth: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ddsv_bfs_queue_depth",
				Help: "Current number of pending states awaiting expansion.",
			},
			[]string{"scenario"},
		),
		runDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ddsv_exploration_duration_seconds",
				Help:    "Wall-clock duration of a complete exploration run.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"scenario"},
		),
		operationCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ddsv_operations_total",
				Help: "Total number of exploration operations by outcome.",
			},
			[]string{"operation", "status"},
		),
	}
}

// RecordCounter implements ports.MetricsCollector.
func (pm *PrometheusMetrics) RecordCounter(metric string, value float64, labels map[string]string) {
	scenario := labels["scenario"]
	switch metric {
	case "states_discovered":
		pm.statesDiscovered.WithLabelValues(scenario).Add(value)
	case "deadlocks_found":
		pm.deadlocksFound.WithLabelValues(scenario).Add(value)
	default:
		pm.operationCounter.WithLabelValues(metric, "success").Add(value)
	}
}

// RecordGauge implements ports.MetricsCollector.
func (pm *PrometheusMetrics) RecordGauge(metric string, value float64, labels map[string]string) {
	switch metric {
	case "queue_depth":
		pm.queueDepth.WithLabelValues(labels["scenario"]).Set(value)
	}
}

// RecordHistogram implements ports.MetricsCollector.
func (pm *PrometheusMetrics) RecordHistogram(metric string, value float64, labels map[string]string) {
	switch metric {
	case "exploration_duration_seconds":
		pm.runDuration.WithLabelValues(labels["scenario"]).Observe(value)
	}
}

var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
