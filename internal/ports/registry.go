package ports

import "github.com/dynaverify/ddsv/internal/domain"

// GuardFactory builds a domain.GuardFunc from scenario parameters. It is
// the YAML-facing counterpart to writing a guard closure directly in Go.
type GuardFactory func(params map[string]any) (domain.GuardFunc, error)

// ActionFactory builds a domain.ActionFunc from scenario parameters.
type ActionFactory func(params map[string]any) (domain.ActionFunc, error)

// PrimitiveRegistry resolves the named guard/action kinds a YAML scenario
// can reference into opaque callables, using the same named-factory
// pattern as other pluggable component registries in this codebase, but
// for transition primitives instead of evaluation units.
type PrimitiveRegistry interface {
	// RegisterGuard adds a named guard factory. It panics if the name is
	// already registered, since a duplicate registration indicates a
	// programming error that should fail fast during initialization.
	RegisterGuard(name string, factory GuardFactory)

	// RegisterAction adds a named action factory, with the same
	// duplicate-registration policy as RegisterGuard.
	RegisterAction(name string, factory ActionFactory)

	// BuildGuard resolves a registered guard by name. It returns an error
	// if name is unknown or params fail the factory's own validation.
	BuildGuard(name string, params map[string]any) (domain.GuardFunc, error)

	// BuildAction resolves a registered action by name, with the same
	// contract as BuildGuard.
	BuildAction(name string, params map[string]any) (domain.ActionFunc, error)
}
