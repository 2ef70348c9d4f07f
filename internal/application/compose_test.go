package application

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynaverify/ddsv/internal/domain"
)

// incProcess builds the read/inc/write race process used in scenario S1,
// reading x into tVar, incrementing tVar, then writing tVar back to x.
func incProcess(t *testing.T, name string, readLoc, incLoc, writeLoc, doneLoc domain.Location, tVar string) domain.Process {
	t.Helper()
	p, err := domain.NewProcess(name, []domain.LocationSpec{
		{Location: readLoc, Transitions: []domain.Trans{domain.NewTrans("read", incLoc, domain.AlwaysTrue, func(r domain.Valuation) domain.Valuation {
			e := r.(domain.IntEnv)
			return e.With(tVar, e.Get("x"))
		})}},
		{Location: incLoc, Transitions: []domain.Trans{domain.NewTrans("inc", writeLoc, domain.AlwaysTrue, func(r domain.Valuation) domain.Valuation {
			e := r.(domain.IntEnv)
			return e.With(tVar, e.Get(tVar)+1)
		})}},
		{Location: writeLoc, Transitions: []domain.Trans{domain.NewTrans("write", doneLoc, domain.AlwaysTrue, func(r domain.Valuation) domain.Valuation {
			e := r.(domain.IntEnv)
			return e.With("x", e.Get(tVar))
		})}},
		{Location: doneLoc, Transitions: nil},
	})
	require.NoError(t, err)
	return p
}

func TestMakeInitialState(t *testing.T) {
	p := incProcess(t, "P", "P0", "P1", "P2", "P3", "t1")
	q := incProcess(t, "Q", "Q0", "Q1", "Q2", "Q3", "t2")
	r0 := domain.NewIntEnv(map[string]int64{"x": 0, "t1": 0, "t2": 0})

	s0, err := MakeInitialState(r0, []domain.Process{p, q})
	require.NoError(t, err)

	assert.Equal(t, []domain.Location{"P0", "Q0"}, s0.Locations)
	assert.True(t, s0.R.Equal(r0))
}

func TestMakeNextFunction_S1_Ordering(t *testing.T) {
	p := incProcess(t, "P", "P0", "P1", "P2", "P3", "t1")
	q := incProcess(t, "Q", "Q0", "Q1", "Q2", "Q3", "t2")
	r0 := domain.NewIntEnv(map[string]int64{"x": 0, "t1": 0, "t2": 0})

	s0, err := MakeInitialState(r0, []domain.Process{p, q})
	require.NoError(t, err)

	next := MakeNextFunction([]domain.Process{p, q})
	edges, err := next(s0)
	require.NoError(t, err)

	require.Len(t, edges, 2)
	assert.Equal(t, domain.Label("read"), edges[0].Label)
	assert.Equal(t, []domain.Location{"P1", "Q0"}, edges[0].Target.Locations)
	assert.Equal(t, domain.Label("read"), edges[1].Label)
	assert.Equal(t, []domain.Location{"P0", "Q1"}, edges[1].Target.Locations)
}

func TestMakeNextFunction_PreStateIsolation(t *testing.T) {
	// Both processes read x in the same batch; neither should see the
	// other's write because both calls use the same pre-state.
	p := incProcess(t, "P", "P0", "P1", "P2", "P3", "t1")
	q := incProcess(t, "Q", "Q0", "Q1", "Q2", "Q3", "t2")
	r0 := domain.NewIntEnv(map[string]int64{"x": 5, "t1": 0, "t2": 0})

	s0, _ := MakeInitialState(r0, []domain.Process{p, q})
	next := MakeNextFunction([]domain.Process{p, q})
	edges, err := next(s0)
	require.NoError(t, err)

	require.Len(t, edges, 2)
	pEnv := edges[0].Target.R.(domain.IntEnv)
	qEnv := edges[1].Target.R.(domain.IntEnv)
	assert.Equal(t, int64(5), pEnv.Get("t1"))
	assert.Equal(t, int64(5), qEnv.Get("t2"))
	assert.Equal(t, int64(0), pEnv.Get("t2"))
	assert.Equal(t, int64(0), qEnv.Get("t1"))
}

func TestMakeNextFunction_GuardFalseSkipsTransition(t *testing.T) {
	p, err := domain.NewProcess("P", []domain.LocationSpec{
		{Location: "P0", Transitions: []domain.Trans{
			domain.NewTrans("go", "P1", func(r domain.Valuation) bool {
				return r.(domain.IntEnv).Get("flag") != 0
			}, domain.Identity),
		}},
		{Location: "P1"},
	})
	require.NoError(t, err)

	r0 := domain.NewIntEnv(map[string]int64{"flag": 0})
	s0, _ := MakeInitialState(r0, []domain.Process{p})

	next := MakeNextFunction([]domain.Process{p})
	edges, err := next(s0)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestMakeNextFunction_UnknownLocation(t *testing.T) {
	// The transition targets a location its process never declares, so the
	// dangling reference surfaces once exploration visits it.
	broken, err := domain.NewProcess("P", []domain.LocationSpec{
		{Location: "P0", Transitions: []domain.Trans{domain.NewTrans("go", "PNOWHERE", domain.AlwaysTrue, domain.Identity)}},
	})
	require.NoError(t, err)

	r0 := domain.NewIntEnv(nil)
	s := domain.NewCompositeState(r0, []domain.Location{"PNOWHERE"})

	next := MakeNextFunction([]domain.Process{broken})
	_, err = next(s)
	require.Error(t, err)

	var unkErr *domain.UnknownLocationError
	require.True(t, errors.As(err, &unkErr))
	assert.Equal(t, domain.Location("PNOWHERE"), unkErr.Location)
}
