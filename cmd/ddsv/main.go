// Command ddsv explores the interleaved state space of one or more
// scenario files and reports any deadlocks found.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dynaverify/ddsv/internal/application"
	"github.com/dynaverify/ddsv/internal/ports"

	"github.com/dynaverify/ddsv/infrastructure/metrics"
	"github.com/dynaverify/ddsv/infrastructure/reporter"
	"github.com/dynaverify/ddsv/infrastructure/tracing"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ddsv", flag.ExitOnError)
	withMetrics := fs.Bool("metrics", false, "record Prometheus metrics for each run")
	withTracing := fs.Bool("tracing", false, "record an OpenTelemetry span for each run")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	paths, err := expandPaths(fs.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: ddsv [-metrics] [-tracing] <scenario.yaml|dir>...")
		return 2
	}

	level := levelFromEnv()
	log.SetFlags(0)

	var metricsCollector ports.MetricsCollector
	if *withMetrics {
		metricsCollector = metrics.NewPrometheusMetrics()
	}

	// The observer also mirrors run statistics to the metrics collector;
	// with -metrics alone the spans it opens go to the default no-op
	// tracer provider and cost nothing.
	var observer ports.ExplorationObserver
	if *withTracing || metricsCollector != nil {
		observer = tracing.NewOTelExplorationObserver(metricsCollector)
	}

	loader := application.NewScenarioLoader(application.NewRegistry())

	results, err := runBatch(context.Background(), paths, loader, observer, level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return reportResults(results, reporter.NewTextDeadlockReporter())
}

// expandPaths turns a mix of file and directory arguments into a flat
// list of *.yaml/*.yml scenario files, expanding directories
// non-recursively.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if ext == ".yaml" || ext == ".yml" {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	return paths, nil
}
