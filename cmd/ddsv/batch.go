package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dynaverify/ddsv/internal/application"
	"github.com/dynaverify/ddsv/internal/domain"
	"github.com/dynaverify/ddsv/internal/ports"
)

// runResult is one scenario file's verification outcome.
type runResult struct {
	path    string
	name    string
	lts     *domain.LTS
	elapsed time.Duration
	err     error
}

// runBatch loads and verifies every scenario file in paths concurrently —
// the core explorer stays single-threaded per run, but independent runs
// have no shared state and can proceed in parallel at this outer layer.
func runBatch(
	ctx context.Context,
	paths []string,
	loader *application.ScenarioLoader,
	observer ports.ExplorationObserver,
	level logLevel,
) ([]runResult, error) {
	results := make([]runResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = runOne(gctx, path, loader, observer, level)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runOne loads, compiles, and verifies a single scenario file. Errors are
// captured on the result rather than propagated, so one bad scenario in a
// batch doesn't prevent reporting on the others.
func runOne(
	ctx context.Context,
	path string,
	loader *application.ScenarioLoader,
	observer ports.ExplorationObserver,
	level logLevel,
) runResult {
	name := filepath.Base(path)

	if level >= logInfo {
		log.Printf("loading scenario %s", path)
	}

	compiled, err := loader.LoadFromFile(path)
	if err != nil {
		return runResult{path: path, name: name, err: fmt.Errorf("load: %w", err)}
	}

	runID := compiled.Name
	if observer != nil {
		observer.PreRun(ctx, runID)
	}

	start := time.Now()
	var lts *domain.LTS
	if compiled.MaxStates > 0 {
		lts, err = application.ConcurrentComposition(compiled.R0, compiled.Processes, application.WithMaxStates(compiled.MaxStates))
	} else {
		lts, err = application.ConcurrentComposition(compiled.R0, compiled.Processes)
	}
	elapsed := time.Since(start)

	if observer != nil {
		observer.PostRun(ctx, runID, lts, elapsed, err)
	}

	if err != nil {
		return runResult{path: path, name: name, elapsed: elapsed, err: fmt.Errorf("explore: %w", err)}
	}

	if level >= logDebug {
		log.Printf("scenario %s: %d states, %d deadlocks, %s", name, lts.NodeCount(), len(lts.Deadlocks), elapsed)
	}

	return runResult{path: path, name: name, lts: lts, elapsed: elapsed}
}

// reportResults writes a short summary plus deadlock paths for every run,
// exiting with a nonzero status if any scenario errored or found deadlocks.
func reportResults(results []runResult, reporter ports.DeadlockReporter) int {
	exit := 0
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.name, r.err)
			exit = 1
			continue
		}

		fmt.Printf("%s: %d states discovered, %d deadlocks, %s\n",
			r.name, r.lts.NodeCount(), len(r.lts.Deadlocks), r.elapsed)

		if len(r.lts.Deadlocks) > 0 {
			exit = 1
			if err := reporter.PrintDeadlocks(os.Stdout, r.lts); err != nil {
				fmt.Fprintf(os.Stderr, "%s: failed to print deadlocks: %v\n", r.name, err)
			}
		}
	}
	return exit
}
