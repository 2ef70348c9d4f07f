// Package ports declares the interfaces implemented by infrastructure and
// consumed by the application layer, separating concrete orchestration
// (internal/application) from swappable concerns (infrastructure/*).
package ports

import (
	"io"

	"github.com/dynaverify/ddsv/internal/domain"
)

// NextFunc computes every transition enabled from a composite state: one
// (label, successor) pair per firing, in process-index then declaration
// order. An empty, nil-error result means the state is a
// deadlock. NextFunc returns domain.UnknownLocationError if a component's
// current location has no entry in its owning process.
type NextFunc func(domain.CompositeState) ([]domain.Edge, error)

// Explorer performs the deduplicated traversal that turns an initial state
// and a NextFunc into a complete LTS (internal/application.BFS is the
// reference implementation, fixed to breadth-first).
type Explorer interface {
	Explore(initial domain.CompositeState, next NextFunc, label0 domain.Label) (*domain.LTS, error)
}

// DeadlockReporter renders an LTS's deadlock paths to a writer, one line
// per path step; the first step of each path carries the sentinel label.
type DeadlockReporter interface {
	PrintDeadlocks(w io.Writer, lts *domain.LTS) error
}

// Visualizer emits external graph descriptions for a single process's
// control-flow graph and for a complete LTS (an "external
// visualization interface" — an explicit out-of-core collaborator).
type Visualizer interface {
	VizProcess(w io.Writer, p domain.Process) error
	VizLTS(w io.Writer, lts *domain.LTS) error
}

// MetricsCollector defines the interface for collecting operational
// metrics about exploration runs. Implementations integrate with
// observability platforms such as Prometheus.
type MetricsCollector interface {
	// RecordCounter increments a counter metric, e.g. states discovered.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric, e.g. queue depth.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram, e.g. run duration.
	RecordHistogram(metric string, value float64, labels map[string]string)
}
