package application

import "gopkg.in/yaml.v3"

// ScenarioConfig is the declarative YAML form of a concurrent-composition
// run: a shared initial valuation plus a set of component processes, each
// a list of locations and their outgoing transitions. A ScenarioLoader
// turns this into the domain.Process/domain.Valuation values the explorer
// consumes.
type ScenarioConfig struct {
	// Version pins the schema this file was written against.
	Version string `yaml:"version" validate:"required,oneof=1"`
	// Name identifies the scenario for logging and reporting.
	Name string `yaml:"name" validate:"required,min=1,max=255"`
	// Variables seeds the shared valuation; every name referenced by a
	// guard or action parameter must appear here.
	Variables map[string]int64 `yaml:"variables" validate:"required"`
	// MaxStates optionally caps the number of states BFS may discover
	// before the run is aborted with a state-space-exceeded error. Zero
	// means unbounded.
	MaxStates int `yaml:"max_states" validate:"omitempty,min=1"`
	// Processes lists the components run under asynchronous interleaving.
	Processes []ProcessConfig `yaml:"processes" validate:"required,min=1,dive"`
}

// ProcessConfig describes one component process.
type ProcessConfig struct {
	// Name identifies the process in reports and diagnostics.
	Name string `yaml:"name" validate:"required,min=1,max=100"`
	// Locations lists this process's control locations in declaration
	// order; the first entry is the process's initial location.
	Locations []LocationConfig `yaml:"locations" validate:"required,min=1,dive"`
}

// LocationConfig is one control location and its outgoing transitions.
type LocationConfig struct {
	// Name is the location's identifier, referenced by transition targets
	// within the same process.
	Name string `yaml:"name" validate:"required,min=1,max=100"`
	// Transitions lists the outgoing edges from this location, evaluated
	// in declaration order when multiple are enabled in the same state.
	Transitions []TransitionConfig `yaml:"transitions" validate:"dive"`
}

// TransitionConfig is one guarded transition.
type TransitionConfig struct {
	// Label names the transition for path and deadlock reporting.
	Label string `yaml:"label" validate:"required,min=1,max=100"`
	// Target is the location this transition moves the process to.
	Target string `yaml:"target" validate:"required,min=1,max=100"`
	// Guard references a registered guard kind and its parameters. When
	// omitted the transition is always enabled.
	Guard *PrimitiveConfig `yaml:"guard"`
	// Action references a registered action kind and its parameters.
	// When omitted the transition leaves the shared valuation unchanged.
	Action *PrimitiveConfig `yaml:"action"`
}

// PrimitiveConfig names a registered guard or action kind and carries its
// parameters as flexible YAML, resolved through a ports.PrimitiveRegistry.
type PrimitiveConfig struct {
	Kind   string    `yaml:"kind" validate:"required"`
	Params yaml.Node `yaml:"params"`
}
