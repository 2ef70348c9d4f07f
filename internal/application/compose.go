// Package application holds the orchestration logic for the verifier: the
// asynchronous-composition semantics (this file), the deduplicated
// exploration engine (explorer.go), the top-level entry point
// (concurrent_composition.go), and the YAML scenario layer
// (scenario.go, scenario_loader.go, registry.go) that turns declarative
// configuration into the Go types consumed by the above.
package application

import (
	"github.com/dynaverify/ddsv/internal/domain"
	"github.com/dynaverify/ddsv/internal/ports"
)

// MakeInitialState builds the initial composite state for a set of
// processes: r0 paired with each process's initial location, in process
// order. It returns domain.EmptyProcessError if any process has no
// entries — NewProcess already guarantees this can't happen for processes
// it built, so this only fires for processes assembled unsafely.
func MakeInitialState(r0 domain.Valuation, processes []domain.Process) (domain.CompositeState, error) {
	locs := make([]domain.Location, len(processes))
	for i, p := range processes {
		if len(p.Locations()) == 0 {
			return domain.CompositeState{}, domain.NewEmptyProcessError(p.Name())
		}
		locs[i] = p.InitialLocation()
	}
	return domain.NewCompositeState(r0, locs), nil
}

// MakeNextFunction returns the enabled-transitions function for a fixed
// set of processes. The returned function is pure with
// respect to its CompositeState argument: every guard and action call
// within one invocation sees the same pre-state valuation, so concurrent
// firings from one global state never observe each other's effects — this
// is the asynchronous-interleaving semantics this composition requires.
func MakeNextFunction(processes []domain.Process) ports.NextFunc {
	return func(s domain.CompositeState) ([]domain.Edge, error) {
		return collectTrans(s, processes)
	}
}

// collectTrans walks each process in order, gathering every transition
// enabled at that process's current location in this state.
func collectTrans(s domain.CompositeState, processes []domain.Process) ([]domain.Edge, error) {
	var out []domain.Edge
	for i, p := range processes {
		loc := s.Locations[i]
		trans, ok := p.Associate(loc)
		if !ok {
			return nil, domain.NewUnknownLocationError(i, loc)
		}
		out = append(out, calcTransitions(s, i, trans)...)
	}
	return out, nil
}

// calcTransitions evaluates every transition declared at component i's
// current location against the pre-state s, in declaration order,
// producing one Edge per transition whose guard holds.
func calcTransitions(s domain.CompositeState, componentIndex int, trans []domain.Trans) []domain.Edge {
	out := make([]domain.Edge, 0, len(trans))
	for _, t := range trans {
		if !t.Guard(s.R) {
			continue
		}

		newLocs := make([]domain.Location, len(s.Locations))
		copy(newLocs, s.Locations)
		newLocs[componentIndex] = t.Target

		newR := t.Action(s.R)
		successor := domain.NewCompositeState(newR, newLocs)

		out = append(out, domain.Edge{Label: t.Label, Target: successor})
	}
	return out
}
