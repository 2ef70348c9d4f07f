package domain

import "fmt"

// EmptyProcessError indicates that a process was constructed with no
// (location, transitions) entries, so it has no initial location.
type EmptyProcessError struct {
	// ProcessName identifies which process failed construction.
	ProcessName string
}

// Error implements the error interface for EmptyProcessError.
func (e *EmptyProcessError) Error() string {
	return fmt.Sprintf("domain: process %q has no locations", e.ProcessName)
}

// NewEmptyProcessError creates an EmptyProcessError for the named process.
func NewEmptyProcessError(processName string) *EmptyProcessError {
	return &EmptyProcessError{ProcessName: processName}
}

// UnknownLocationError indicates that a transition's target location has
// no entry in its owning process, and that location was reached as the
// current location of some component during exploration. A dangling
// target surfaces as an error rather than a silent dead end, so a typo in
// a process definition never masquerades as a spurious deadlock.
type UnknownLocationError struct {
	// ProcessIndex is the 0-based index of the component that reached the
	// unknown location.
	ProcessIndex int
	// Location is the location that no entry in the process declares.
	Location Location
}

// Error implements the error interface for UnknownLocationError.
func (e *UnknownLocationError) Error() string {
	return fmt.Sprintf("domain: process %d has no entry for location %q", e.ProcessIndex, e.Location)
}

// NewUnknownLocationError creates an UnknownLocationError for the given
// component index and location.
func NewUnknownLocationError(processIndex int, location Location) *UnknownLocationError {
	return &UnknownLocationError{ProcessIndex: processIndex, Location: location}
}

// StateSpaceExceededError indicates that exploration reached a configured
// maximum-states cap before exhausting the reachable state space. It is
// optional: an explorer with no cap configured never returns it.
type StateSpaceExceededError struct {
	// Limit is the configured maximum number of states.
	Limit int
}

// Error implements the error interface for StateSpaceExceededError.
func (e *StateSpaceExceededError) Error() string {
	return fmt.Sprintf("domain: state space exceeded configured limit of %d states", e.Limit)
}

// NewStateSpaceExceededError creates a StateSpaceExceededError for the
// given limit.
func NewStateSpaceExceededError(limit int) *StateSpaceExceededError {
	return &StateSpaceExceededError{Limit: limit}
}
