package ordermap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// trueHeight computes the true height of the subtree rooted at n by walking
// the links directly, independent of the cached height field, so tests can
// catch a cache that has drifted from reality.
func trueHeight[K any, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	l, r := trueHeight(n.left), trueHeight(n.right)
	if l > r {
		return l + 1
	}
	return r + 1
}

// checkInvariants walks the whole tree verifying BST order, AVL balance,
// and parent back-reference consistency.
func checkInvariants(t *testing.T, tr *Tree[int, string]) {
	t.Helper()
	var count int
	var walk func(n *node[int, string], lo, hi *int)
	walk = func(n *node[int, string], lo, hi *int) {
		if n == nil {
			return
		}
		count++
		if lo != nil {
			require.False(t, n.key < *lo, "BST order violated: %d < lower bound %d", n.key, *lo)
		}
		if hi != nil {
			require.False(t, n.key >= *hi, "BST order violated: %d >= upper bound %d", n.key, *hi)
		}
		bf := trueHeight(n.left) - trueHeight(n.right)
		require.LessOrEqual(t, bf, 1, "AVL balance violated at key %d", n.key)
		require.GreaterOrEqual(t, bf, -1, "AVL balance violated at key %d", n.key)
		require.Equal(t, trueHeight(n), n.height, "cached height drifted at key %d", n.key)
		if n.left != nil {
			require.Same(t, n, n.left.parent, "parent back-reference broken at left child of %d", n.key)
			walk(n.left, lo, &n.key)
		}
		if n.right != nil {
			require.Same(t, n, n.right.parent, "parent back-reference broken at right child of %d", n.key)
			walk(n.right, &n.key, hi)
		}
	}
	walk(tr.root, nil, nil)
	require.Equal(t, tr.size, count, "cached size drifted from node count")
	if tr.root != nil {
		require.Nil(t, tr.root.parent, "root must have nil parent")
	}
}

func keysInOrder(tr *Tree[int, string]) []int {
	var keys []int
	for k := range tr.All() {
		keys = append(keys, k)
	}
	return keys
}

func TestInsertOrderIndependence(t *testing.T) {
	// Scenario 1 from spec §8.
	tr := New[int, int]()
	keys := []int{10, 5, 15, 3, 7, 12, 20}
	for _, k := range keys {
		require.True(t, tr.Insert(k, k*10))
	}

	require.Equal(t, 7, tr.Size())
	require.LessOrEqual(t, tr.Height(), 3)

	var got []int
	for k := range tr.All() {
		got = append(got, k)
	}
	require.Equal(t, []int{3, 5, 7, 10, 12, 15, 20}, got)
}

func TestEraseRebalance(t *testing.T) {
	// Scenario 2 from spec §8.
	tr := New[int, int]()
	for _, k := range []int{10, 5, 15, 3, 7, 12, 20} {
		tr.Insert(k, k*10)
	}

	newSize := tr.Erase(10)
	require.Equal(t, 6, newSize)
	require.LessOrEqual(t, tr.Height(), 3)

	_, ok := tr.At(10)
	require.False(t, ok)
}

func TestDuplicateInsertRejected(t *testing.T) {
	tr := New[int, string]()
	require.True(t, tr.Insert(1, "a"))
	require.False(t, tr.Insert(1, "b"))
	require.Equal(t, 1, tr.Size())

	v, ok := tr.At(1)
	require.True(t, ok)
	require.Equal(t, "a", *v)
}

func TestEraseAbsentKeyIsNoOp(t *testing.T) {
	tr := New[int, string]()
	tr.Insert(1, "a")
	size := tr.Erase(999)
	require.Equal(t, 1, size)
}

func TestAtMutatesThroughPointer(t *testing.T) {
	tr := New[int, int]()
	tr.Insert(1, 100)
	v, ok := tr.At(1)
	require.True(t, ok)
	*v = 200
	v2, _ := tr.At(1)
	require.Equal(t, 200, *v2)
}

func TestReverseIteration(t *testing.T) {
	tr := New[int, string]()
	for _, k := range []int{5, 2, 8, 1, 9} {
		tr.Insert(k, "")
	}
	var got []int
	for k := range tr.Reverse() {
		got = append(got, k)
	}
	require.Equal(t, []int{9, 8, 5, 2, 1}, got)
}

func TestInvariantsHoldAcrossRandomizedMutations(t *testing.T) {
	tr := New[int, string]()
	ref := map[int]bool{}

	// Deterministic pseudo-random sequence (no math/rand seed dependency
	// needed): a fixed permutation-ish pattern of inserts and erases.
	ops := []int{50, -10, 30, 70, 20, 40, 60, 80, -50, 10, -70, 90, 5, 45, -20, 100, 15, -30, 25, 99}
	for _, op := range ops {
		if op > 0 {
			inserted := tr.Insert(op, "v")
			require.Equal(t, !ref[op], inserted)
			ref[op] = true
		} else {
			k := -op
			tr.Erase(k)
			delete(ref, k)
		}
		checkInvariants(t, tr)
	}

	require.Equal(t, len(ref), tr.Size())
	for k := range ref {
		_, ok := tr.At(k)
		require.True(t, ok, "expected key %d present", k)
	}

	got := keysInOrder(tr)
	for i := 1; i < len(got); i++ {
		require.Less(t, got[i-1], got[i], "iteration order not strictly ascending")
	}
}

func TestNewFuncCustomComparator(t *testing.T) {
	// Descending order via a custom less function.
	tr := NewFunc[int, string](func(a, b int) bool { return a > b })
	for _, k := range []int{3, 1, 4, 1, 5, 9, 2, 6} {
		tr.Insert(k, "")
	}
	got := keysInOrder(tr)
	require.Equal(t, []int{9, 6, 5, 4, 3, 2, 1}, got)
}
