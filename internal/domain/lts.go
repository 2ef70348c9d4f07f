package domain

// Edge is one outgoing transition recorded for a node: firing Label from
// the owning state reaches Target.
type Edge struct {
	Label  Label
	Target CompositeState
}

// Node is one entry of the LTS: the composite state's discovery-order ID
// and the exact output of the enabled-transitions function evaluated at
// that state.
type Node struct {
	ID       int
	State    CompositeState
	Outgoing []Edge
}

// IsDeadlock reports whether this node has no enabled transitions: a
// reachable state with no enabled moves.
func (n Node) IsDeadlock() bool { return len(n.Outgoing) == 0 }

// Step is one entry of a Path: the label that was fired to reach State.
// The first step of every path carries InitialPathLabel.
type Step struct {
	Label Label
	State CompositeState
}

// Path is the ordered sequence of steps recording how a state was first
// reached from the initial state.
type Path []Step

// LTS is the full labeled transition system discovered by one exploration
// run: every reachable composite state plus the first-discovery path to
// every deadlock.
type LTS struct {
	// buckets groups nodes whose states share a bucketKey, resolving hash
	// collisions with a linear Equal scan (mirrors how a hash map resolves
	// collisions internally; Valuation is not guaranteed comparable, so Go's
	// builtin map can't be keyed on CompositeState directly).
	buckets map[string][]*Node
	// order holds nodes in discovery (ID) order for deterministic iteration.
	order []*Node
	// Deadlocks holds one path per distinct deadlock state, in the order it
	// was first discovered.
	Deadlocks []Path
}

// NewLTS returns an empty LTS ready for population by the explorer.
func NewLTS() *LTS {
	return &LTS{buckets: make(map[string][]*Node)}
}

// Lookup returns the existing node for state, if any.
func (l *LTS) Lookup(state CompositeState) (*Node, bool) {
	for _, n := range l.buckets[state.bucketKey()] {
		if n.State.Equal(state) {
			return n, true
		}
	}
	return nil, false
}

// Insert adds a brand-new node for state with the given outgoing edges,
// assigning it the next sequential ID. It does not check for an existing
// entry; callers must Lookup first.
func (l *LTS) Insert(state CompositeState, outgoing []Edge) *Node {
	n := &Node{ID: len(l.order), State: state, Outgoing: outgoing}
	key := state.bucketKey()
	l.buckets[key] = append(l.buckets[key], n)
	l.order = append(l.order, n)
	return n
}

// SetOutgoing overwrites an already-inserted node's outgoing edges. The
// explorer uses this to fill in a node discovered as a successor (with
// provisional empty outgoing) once it is itself expanded.
func (l *LTS) SetOutgoing(n *Node, outgoing []Edge) { n.Outgoing = outgoing }

// NodeCount returns the number of distinct reachable states recorded.
func (l *LTS) NodeCount() int { return len(l.order) }

// Nodes returns every node in discovery-ID order. The returned slice must
// not be mutated by callers.
func (l *LTS) Nodes() []*Node { return l.order }
