package application

import (
	"fmt"
	"sync"

	"github.com/dynaverify/ddsv/internal/domain"
	"github.com/dynaverify/ddsv/internal/ports"
)

// Registry is the built-in ports.PrimitiveRegistry: it resolves the guard
// and action kinds a scenario file may reference by name into concrete
// domain.GuardFunc/domain.ActionFunc closures over domain.IntEnv. The zero
// value is not usable; use NewRegistry, which pre-registers the builtins
// below.
type Registry struct {
	mu      sync.RWMutex
	guards  map[string]ports.GuardFactory
	actions map[string]ports.ActionFactory
}

// NewRegistry returns a Registry with every builtin guard and action kind
// already registered.
func NewRegistry() *Registry {
	r := &Registry{
		guards:  make(map[string]ports.GuardFactory),
		actions: make(map[string]ports.ActionFactory),
	}
	r.registerBuiltinGuards()
	r.registerBuiltinActions()
	return r
}

// RegisterGuard adds a factory for a guard kind. Panics if the kind is
// already registered — a duplicate registration is a programming error,
// not a runtime condition callers should need to handle.
func (r *Registry) RegisterGuard(name string, factory ports.GuardFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.guards[name]; exists {
		panic(fmt.Sprintf("guard kind %q already registered", name))
	}
	r.guards[name] = factory
}

// RegisterAction adds a factory for an action kind. Panics on duplicate
// registration, for the same reason as RegisterGuard.
func (r *Registry) RegisterAction(name string, factory ports.ActionFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.actions[name]; exists {
		panic(fmt.Sprintf("action kind %q already registered", name))
	}
	r.actions[name] = factory
}

// BuildGuard resolves a named guard kind against params.
func (r *Registry) BuildGuard(name string, params map[string]any) (domain.GuardFunc, error) {
	r.mu.RLock()
	factory, ok := r.guards[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown guard kind: %s", name)
	}
	return factory(params)
}

// BuildAction resolves a named action kind against params.
func (r *Registry) BuildAction(name string, params map[string]any) (domain.ActionFunc, error) {
	r.mu.RLock()
	factory, ok := r.actions[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown action kind: %s", name)
	}
	return factory(params)
}

// stringParam and intParam pull a named parameter out of the loosely typed
// params map decoded from YAML, reporting a descriptive error on a missing
// or wrongly typed entry.
func stringParam(params map[string]any, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string, got %T", key, v)
	}
	return s, nil
}

func intParam(params map[string]any, key string) (int64, error) {
	v, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("missing required parameter %q", key)
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("parameter %q must be numeric, got %T", key, v)
	}
}

func asIntEnv(r domain.Valuation) domain.IntEnv {
	return r.(domain.IntEnv)
}

// registerBuiltinGuards wires the constant "true" kind and the integer
// comparison kinds a scenario file can reference under a transition's
// "guard" key. There are no boolean-combinator kinds.
func (r *Registry) registerBuiltinGuards() {
	r.guards["true"] = func(map[string]any) (domain.GuardFunc, error) {
		return domain.AlwaysTrue, nil
	}

	cmp := func(op func(a, b int64) bool) ports.GuardFactory {
		return func(params map[string]any) (domain.GuardFunc, error) {
			name, err := stringParam(params, "var")
			if err != nil {
				return nil, err
			}
			value, err := intParam(params, "value")
			if err != nil {
				return nil, err
			}
			return func(r domain.Valuation) bool {
				return op(asIntEnv(r).Get(name), value)
			}, nil
		}
	}
	r.guards["eq"] = cmp(func(a, b int64) bool { return a == b })
	r.guards["neq"] = cmp(func(a, b int64) bool { return a != b })
	r.guards["lt"] = cmp(func(a, b int64) bool { return a < b })
	r.guards["lte"] = cmp(func(a, b int64) bool { return a <= b })
	r.guards["gt"] = cmp(func(a, b int64) bool { return a > b })
	r.guards["gte"] = cmp(func(a, b int64) bool { return a >= b })
}

// registerBuiltinActions wires the state-update kinds a scenario file can
// reference under a transition's "action" key.
func (r *Registry) registerBuiltinActions() {
	r.actions["noop"] = func(map[string]any) (domain.ActionFunc, error) {
		return domain.Identity, nil
	}

	r.actions["set"] = func(params map[string]any) (domain.ActionFunc, error) {
		name, err := stringParam(params, "var")
		if err != nil {
			return nil, err
		}
		value, err := intParam(params, "value")
		if err != nil {
			return nil, err
		}
		return func(r domain.Valuation) domain.Valuation {
			return asIntEnv(r).With(name, value)
		}, nil
	}

	delta := func(sign int64) ports.ActionFactory {
		return func(params map[string]any) (domain.ActionFunc, error) {
			name, err := stringParam(params, "var")
			if err != nil {
				return nil, err
			}
			step := int64(1)
			if _, ok := params["by"]; ok {
				step, err = intParam(params, "by")
				if err != nil {
					return nil, err
				}
			}
			return func(r domain.Valuation) domain.Valuation {
				e := asIntEnv(r)
				return e.With(name, e.Get(name)+sign*step)
			}, nil
		}
	}
	r.actions["inc"] = delta(1)
	r.actions["dec"] = delta(-1)

	r.actions["copy"] = func(params map[string]any) (domain.ActionFunc, error) {
		from, err := stringParam(params, "from")
		if err != nil {
			return nil, err
		}
		to, err := stringParam(params, "to")
		if err != nil {
			return nil, err
		}
		return func(r domain.Valuation) domain.Valuation {
			e := asIntEnv(r)
			return e.With(to, e.Get(from))
		}, nil
	}
}

var _ ports.PrimitiveRegistry = (*Registry)(nil)
