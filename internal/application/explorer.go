package application

import (
	"github.com/dynaverify/ddsv/internal/domain"
	"github.com/dynaverify/ddsv/internal/ports"
)

// workItem is one pending expansion: the state to expand, the ID already
// assigned to it in the LTS, and the first-discovery path that reached it.
type workItem struct {
	state domain.CompositeState
	id    int
	path  domain.Path
}

// explorerOption configures a BFS run.
type explorerOption func(*explorerConfig)

type explorerConfig struct {
	maxStates int // 0 means unbounded
}

// WithMaxStates caps the number of distinct states BFS will insert into
// the LTS before returning domain.StateSpaceExceededError. Zero (the
// default) means unbounded — the core exploration contract imposes no bound.
func WithMaxStates(max int) explorerOption {
	return func(c *explorerConfig) { c.maxStates = max }
}

// BFS is the reference Explorer: a breadth-first, deduplicated traversal
// seeded at initial, expanding each newly discovered state with next, and
// collecting the first-discovery path to every state with no outgoing
// edges. It uses a plain slice-backed FIFO (dequeue from the front,
// enqueue at the back) to order newly discovered composite states.
//
// Ids are assigned at first insertion into the LTS and never reassigned,
// so edges recorded in an outgoing list always reference a valid,
// stable node even though that node's own outgoing list may still be
// pending expansion.
func BFS(initial domain.CompositeState, next ports.NextFunc, label0 domain.Label, opts ...explorerOption) (*domain.LTS, error) {
	cfg := explorerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	lts := domain.NewLTS()
	n0 := lts.Insert(initial, nil)

	queue := []workItem{{
		state: initial,
		id:    n0.ID,
		path:  domain.Path{{Label: label0, State: initial}},
	}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		outgoing, err := next(item.state)
		if err != nil {
			return nil, err
		}

		if len(outgoing) == 0 {
			lts.Deadlocks = append(lts.Deadlocks, item.path)
		}

		node, _ := lts.Lookup(item.state)
		lts.SetOutgoing(node, outgoing)

		for _, edge := range outgoing {
			if _, ok := lts.Lookup(edge.Target); ok {
				continue
			}

			if cfg.maxStates > 0 && lts.NodeCount() >= cfg.maxStates {
				return nil, domain.NewStateSpaceExceededError(cfg.maxStates)
			}

			successor := lts.Insert(edge.Target, nil)

			childPath := make(domain.Path, len(item.path), len(item.path)+1)
			copy(childPath, item.path)
			childPath = append(childPath, domain.Step{Label: edge.Label, State: edge.Target})

			queue = append(queue, workItem{state: edge.Target, id: successor.ID, path: childPath})
		}
	}

	return lts, nil
}

// explorerFunc adapts BFS to ports.Explorer so infrastructure can depend on
// the interface rather than the concrete function.
type explorerFunc struct{ opts []explorerOption }

// NewExplorer returns a ports.Explorer backed by BFS with the given options
// applied to every run.
func NewExplorer(opts ...explorerOption) ports.Explorer { return explorerFunc{opts: opts} }

func (e explorerFunc) Explore(initial domain.CompositeState, next ports.NextFunc, label0 domain.Label) (*domain.LTS, error) {
	return BFS(initial, next, label0, e.opts...)
}
