package domain

// Location is a symbolic control point within one process (e.g. "P0").
// Locations are unique within a process but need not be unique across
// processes; disambiguation is always by process index.
type Location string

// Label is a short symbolic event name carried by a transition. Labels are
// free-form and carry no semantics beyond display and test matching.
type Label string

// InitialPathLabel is the sentinel label marking the synthetic entry edge
// to the initial state at the head of every recorded path.
const InitialPathLabel Label = "---"

// GuardFunc is a pure predicate over a Valuation. It must be deterministic,
// side-effect free, and safely callable many times.
type GuardFunc func(Valuation) bool

// ActionFunc is a pure function producing a post-transition Valuation. It
// must be deterministic and side-effect free; it receives the pre-state and
// must not mutate it.
type ActionFunc func(Valuation) Valuation

// Trans is a single guarded, effectful edge out of a location: firing it
// moves the owning process to Target and replaces the shared valuation with
// Action's result, provided Guard holds on the pre-state.
type Trans struct {
	Label  Label
	Target Location
	Guard  GuardFunc
	Action ActionFunc
}

// NewTrans constructs a Trans from its four parts. Guard and action are
// carried as opaque callables; the core never inspects them beyond
// invocation.
func NewTrans(label Label, target Location, guard GuardFunc, action ActionFunc) Trans {
	return Trans{Label: label, Target: target, Guard: guard, Action: action}
}

// AlwaysTrue is a GuardFunc that is enabled unconditionally.
func AlwaysTrue(Valuation) bool { return true }

// Identity is an ActionFunc that leaves the valuation unchanged.
func Identity(r Valuation) Valuation { return r }
