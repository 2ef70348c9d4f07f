// Package tracing provides OpenTelemetry instrumentation for exploration runs.
package tracing

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dynaverify/ddsv/internal/domain"
	"github.com/dynaverify/ddsv/internal/ports"
)

// OTelExplorationObserver implements ports.ExplorationObserver using
// OpenTelemetry tracing. It opens one span per run, records the size of
// the resulting LTS and the number of deadlocks found, and marks the span
// as errored when the explorer itself fails (as opposed to successfully
// finding deadlocks, which is a normal verification outcome, not an error).
type OTelExplorationObserver struct {
	metrics ports.MetricsCollector

	mu    sync.Mutex
	spans map[string]trace.Span
}

// NewOTelExplorationObserver creates an observer that reports spans under
// the "ddsv-explorer" tracer name and, if metrics is non-nil, also mirrors
// run statistics to it.
func NewOTelExplorationObserver(metrics ports.MetricsCollector) *OTelExplorationObserver {
	return &OTelExplorationObserver{
		metrics: metrics,
		spans:   make(map[string]trace.Span),
	}
}

// PreRun implements ports.ExplorationObserver.
func (o *OTelExplorationObserver) PreRun(ctx context.Context, runID string) {
	tracer := otel.Tracer("ddsv-explorer")
	_, span := tracer.Start(ctx, "ConcurrentComposition.Explore")
	span.SetAttributes(attribute.String("ddsv.run_id", runID))

	o.mu.Lock()
	o.spans[runID] = span
	o.mu.Unlock()
}

// PostRun implements ports.ExplorationObserver.
func (o *OTelExplorationObserver) PostRun(
	ctx context.Context,
	runID string,
	lts *domain.LTS,
	elapsed time.Duration,
	err error,
) {
	o.mu.Lock()
	span, ok := o.spans[runID]
	delete(o.spans, runID)
	o.mu.Unlock()
	if !ok {
		return
	}
	defer span.End()

	span.SetAttributes(attribute.Float64("ddsv.elapsed_seconds", elapsed.Seconds()))

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if o.metrics != nil {
			o.metrics.RecordCounter("run_errors", 1, map[string]string{"scenario": runID})
		}
		return
	}

	span.SetAttributes(
		attribute.Int("ddsv.states_discovered", lts.NodeCount()),
		attribute.Int("ddsv.deadlocks_found", len(lts.Deadlocks)),
	)
	span.AddEvent("exploration.completed", trace.WithAttributes(
		attribute.Int("deadlocks_found", len(lts.Deadlocks)),
	))
	span.SetStatus(codes.Ok, "exploration completed")

	if o.metrics == nil {
		return
	}
	labels := map[string]string{"scenario": runID}
	o.metrics.RecordCounter("states_discovered", float64(lts.NodeCount()), labels)
	o.metrics.RecordCounter("deadlocks_found", float64(len(lts.Deadlocks)), labels)
	o.metrics.RecordHistogram("exploration_duration_seconds", elapsed.Seconds(), labels)
}

var _ ports.ExplorationObserver = (*OTelExplorationObserver)(nil)
