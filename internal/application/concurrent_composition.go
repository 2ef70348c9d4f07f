package application

import "github.com/dynaverify/ddsv/internal/domain"

// ConcurrentComposition is the top-level entry point: given an
// initial shared valuation and the set of component processes, it builds
// the initial composite state, derives the enabled-transitions function,
// and runs BFS to completion, returning the full LTS.
func ConcurrentComposition(r0 domain.Valuation, processes []domain.Process, opts ...explorerOption) (*domain.LTS, error) {
	s0, err := MakeInitialState(r0, processes)
	if err != nil {
		return nil, err
	}

	next := MakeNextFunction(processes)
	return BFS(s0, next, domain.InitialPathLabel, opts...)
}
