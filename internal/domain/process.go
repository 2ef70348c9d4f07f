package domain

// locationEntry pairs a location with the transitions available at it. A
// location with no transitions is terminal for its owning process.
type locationEntry struct {
	location    Location
	transitions []Trans
}

// Process is an ordered sequence of (location, transitions) pairs. The
// first entry is the process's initial location. Lookup of transitions by
// location is a linear scan — the lists a single process carries are
// small, and preserving declaration order is part of the enabled-
// transitions contract: transitions fire in declared order.
type Process struct {
	name    string
	entries []locationEntry
}

// LocationSpec is one (location, transitions) pair used to build a Process.
type LocationSpec struct {
	Location    Location
	Transitions []Trans
}

// NewProcess constructs a Process from an ordered list of location specs.
// It returns EmptyProcessError if entries is empty, since a process with no
// locations has no initial location.
func NewProcess(name string, entries []LocationSpec) (Process, error) {
	if len(entries) == 0 {
		return Process{}, NewEmptyProcessError(name)
	}

	built := make([]locationEntry, len(entries))
	for i, e := range entries {
		built[i] = locationEntry{location: e.Location, transitions: e.Transitions}
	}
	return Process{name: name, entries: built}, nil
}

// Name returns the process's display name, used in error messages and
// visualization; it need not be unique.
func (p Process) Name() string { return p.name }

// InitialLocation returns the location of the process's first entry. The
// caller must only call this on a Process built by NewProcess, which
// guarantees at least one entry.
func (p Process) InitialLocation() Location { return p.entries[0].location }

// Associate looks up the transitions declared at loc within this process.
// The boolean result is false if loc is not a location of this process.
func (p Process) Associate(loc Location) ([]Trans, bool) {
	for _, e := range p.entries {
		if e.location == loc {
			return e.transitions, true
		}
	}
	return nil, false
}

// Locations returns every location this process declares, in declaration
// order, for use by visualization.
func (p Process) Locations() []Location {
	out := make([]Location, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.location
	}
	return out
}
