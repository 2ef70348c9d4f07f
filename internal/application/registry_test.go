package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynaverify/ddsv/internal/domain"
)

func TestRegistry_BuiltinGuards(t *testing.T) {
	r := NewRegistry()
	env := domain.NewIntEnv(map[string]int64{"x": 3})

	g, err := r.BuildGuard("eq", map[string]any{"var": "x", "value": 3})
	require.NoError(t, err)
	assert.True(t, g(env))

	g, err = r.BuildGuard("lt", map[string]any{"var": "x", "value": 3})
	require.NoError(t, err)
	assert.False(t, g(env))

	g, err = r.BuildGuard("gte", map[string]any{"var": "x", "value": 3})
	require.NoError(t, err)
	assert.True(t, g(env))

	_, err = r.BuildGuard("nope", nil)
	assert.Error(t, err)

	_, err = r.BuildGuard("eq", map[string]any{"var": "x"})
	assert.Error(t, err)
}

func TestRegistry_BuiltinActions(t *testing.T) {
	r := NewRegistry()
	env := domain.NewIntEnv(map[string]int64{"x": 3, "y": 0})

	a, err := r.BuildAction("inc", map[string]any{"var": "x"})
	require.NoError(t, err)
	got := a(env).(domain.IntEnv)
	assert.Equal(t, int64(4), got.Get("x"))

	a, err = r.BuildAction("dec", map[string]any{"var": "x", "by": 2})
	require.NoError(t, err)
	got = a(env).(domain.IntEnv)
	assert.Equal(t, int64(1), got.Get("x"))

	a, err = r.BuildAction("copy", map[string]any{"from": "x", "to": "y"})
	require.NoError(t, err)
	got = a(env).(domain.IntEnv)
	assert.Equal(t, int64(3), got.Get("y"))

	a, err = r.BuildAction("set", map[string]any{"var": "x", "value": 9})
	require.NoError(t, err)
	got = a(env).(domain.IntEnv)
	assert.Equal(t, int64(9), got.Get("x"))

	_, err = r.BuildAction("nope", nil)
	assert.Error(t, err)
}

func TestRegistry_DuplicateRegistrationPanics(t *testing.T) {
	r := NewRegistry()
	assert.Panics(t, func() {
		r.RegisterGuard("true", func(map[string]any) (domain.GuardFunc, error) { return domain.AlwaysTrue, nil })
	})
	assert.Panics(t, func() {
		r.RegisterAction("noop", func(map[string]any) (domain.ActionFunc, error) { return domain.Identity, nil })
	})
}
