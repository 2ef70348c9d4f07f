package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynaverify/ddsv/internal/domain"
)

// lockProcess builds one side of the classic two-lock deadlock (S3):
// acquire the first lock, acquire the second, then stop at a terminal
// location without releasing either. Guards block acquisition while the
// lock is held (value 1).
func lockProcess(t *testing.T, name string, firstLoc, secondLoc, doneLoc domain.Location, first, second string) domain.Process {
	t.Helper()
	acquire := func(lockName string, target domain.Location) domain.Trans {
		return domain.NewTrans(domain.Label("acquire_"+lockName), target,
			func(r domain.Valuation) bool { return r.(domain.IntEnv).Get(lockName) == 0 },
			func(r domain.Valuation) domain.Valuation { return r.(domain.IntEnv).With(lockName, 1) },
		)
	}
	p, err := domain.NewProcess(name, []domain.LocationSpec{
		{Location: firstLoc, Transitions: []domain.Trans{acquire(first, secondLoc)}},
		{Location: secondLoc, Transitions: []domain.Trans{acquire(second, doneLoc)}},
		{Location: doneLoc, Transitions: nil},
	})
	require.NoError(t, err)
	return p
}

func TestBFS_S3_TwoLockDeadlock(t *testing.T) {
	p := lockProcess(t, "P", "P0", "P1", "P2", "lockA", "lockB")
	q := lockProcess(t, "Q", "Q0", "Q1", "Q2", "lockB", "lockA")
	r0 := domain.NewIntEnv(map[string]int64{"lockA": 0, "lockB": 0})

	lts, err := ConcurrentComposition(r0, []domain.Process{p, q})
	require.NoError(t, err)

	require.NotEmpty(t, lts.Deadlocks)

	// Every reported deadlock path must end in a state with no outgoing
	// edges. Besides the lock-inversion state (P1, Q1), where each process
	// holds one lock and waits for the other, the states where one process
	// finished first ((P2, Q0) and (P0, Q2)) also have no moves, since
	// neither process releases its locks.
	for _, path := range lts.Deadlocks {
		last := path[len(path)-1].State
		node, ok := lts.Lookup(last)
		require.True(t, ok)
		assert.True(t, node.IsDeadlock())
	}
}

func TestBFS_S5_LoopTerminatesAndDedups(t *testing.T) {
	// Single process bouncing between two locations with no state change:
	// BFS must detect the revisit and not loop forever.
	p, err := domain.NewProcess("P", []domain.LocationSpec{
		{Location: "A", Transitions: []domain.Trans{domain.NewTrans("toB", "B", domain.AlwaysTrue, domain.Identity)}},
		{Location: "B", Transitions: []domain.Trans{domain.NewTrans("toA", "A", domain.AlwaysTrue, domain.Identity)}},
	})
	require.NoError(t, err)

	r0 := domain.NewIntEnv(nil)
	lts, err := ConcurrentComposition(r0, []domain.Process{p})
	require.NoError(t, err)

	assert.Equal(t, 2, lts.NodeCount())
	assert.Empty(t, lts.Deadlocks)
}

func TestBFS_NodeIDsAreStableAndSequential(t *testing.T) {
	p, err := domain.NewProcess("P", []domain.LocationSpec{
		{Location: "A", Transitions: []domain.Trans{domain.NewTrans("toB", "B", domain.AlwaysTrue, domain.Identity)}},
		{Location: "B", Transitions: nil},
	})
	require.NoError(t, err)

	r0 := domain.NewIntEnv(nil)
	lts, err := ConcurrentComposition(r0, []domain.Process{p})
	require.NoError(t, err)

	nodes := lts.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, 0, nodes[0].ID)
	assert.Equal(t, 1, nodes[1].ID)
}

func TestBFS_MaxStatesExceeded(t *testing.T) {
	p, err := domain.NewProcess("P", []domain.LocationSpec{
		{Location: "A", Transitions: []domain.Trans{domain.NewTrans("inc", "A", domain.AlwaysTrue, func(r domain.Valuation) domain.Valuation {
			e := r.(domain.IntEnv)
			return e.With("x", e.Get("x")+1)
		})}},
	})
	require.NoError(t, err)

	r0 := domain.NewIntEnv(map[string]int64{"x": 0})
	_, err = ConcurrentComposition(r0, []domain.Process{p}, WithMaxStates(3))
	require.Error(t, err)

	var exceeded *domain.StateSpaceExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, 3, exceeded.Limit)
}

func TestBFS_NoProcessesIsImmediateDeadlock(t *testing.T) {
	r0 := domain.NewIntEnv(nil)
	lts, err := ConcurrentComposition(r0, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, lts.NodeCount())
	require.Len(t, lts.Deadlocks, 1)
	assert.Equal(t, domain.InitialPathLabel, lts.Deadlocks[0][0].Label)
}
