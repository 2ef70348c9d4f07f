package ports

import (
	"context"
	"time"

	"github.com/dynaverify/ddsv/internal/domain"
)

// ExplorationObserver instruments one ConcurrentComposition run with a
// PreRun/PostRun pair, the same shape as other pre/post instrumentation
// hooks in this codebase, but around a verification run instead of a
// budget check.
type ExplorationObserver interface {
	// PreRun is called once, before exploration begins, with a caller-
	// supplied identifier for the run (e.g. the scenario name).
	PreRun(ctx context.Context, runID string)

	// PostRun is called once exploration finishes (successfully or not),
	// with the resulting LTS (nil on error), the elapsed wall time, and
	// any error returned by the explorer.
	PostRun(ctx context.Context, runID string, lts *domain.LTS, elapsed time.Duration, err error)
}
