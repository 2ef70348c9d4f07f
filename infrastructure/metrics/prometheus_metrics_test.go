package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/dynaverify/ddsv/internal/ports"
)

// testMetrics is shared across tests in this package to avoid duplicate
// Prometheus metric registration panics.
var testMetrics *PrometheusMetrics

func init() { testMetrics = NewPrometheusMetrics() }

func TestNewPrometheusMetrics(t *testing.T) {
	pm := testMetrics
	assert.NotNil(t, pm.statesDiscovered)
	assert.NotNil(t, pm.deadlocksFound)
	assert.NotNil(t, pm.queueDepth)
	assert.NotNil(t, pm.runDuration)

	var _ ports.MetricsCollector = pm
}

func TestPrometheusMetrics_RecordCounter(t *testing.T) {
	pm := testMetrics
	labels := map[string]string{"scenario": "s1"}

	pm.RecordCounter("states_discovered", 3, labels)
	pm.RecordCounter("states_discovered", 2, labels)
	assert.Equal(t, float64(5), testutil.ToFloat64(pm.statesDiscovered.WithLabelValues("s1")))

	pm.RecordCounter("deadlocks_found", 1, labels)
	assert.Equal(t, float64(1), testutil.ToFloat64(pm.deadlocksFound.WithLabelValues("s1")))
}

func TestPrometheusMetrics_RecordGauge(t *testing.T) {
	pm := testMetrics
	labels := map[string]string{"scenario": "s2"}

	pm.RecordGauge("queue_depth", 7, labels)
	assert.Equal(t, float64(7), testutil.ToFloat64(pm.queueDepth.WithLabelValues("s2")))
}

func TestPrometheusMetrics_RecordHistogram(t *testing.T) {
	pm := testMetrics
	labels := map[string]string{"scenario": "s3"}

	// Observing should not panic; the histogram has no simple single-value
	// read-back, so this checks it accepts the call under the expected key.
	pm.RecordHistogram("exploration_duration_seconds", 0.42, labels)
}
