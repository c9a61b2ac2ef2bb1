package quadtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPointInsertAndFind(t *testing.T) {
	// Scenario 3 from spec §8.
	tr := New[string](0, 0, 100, 100, "")
	tr.Insert(10, 10, "a")
	tr.Insert(-10, 10, "b")
	tr.Insert(-10, -10, "c")
	tr.Insert(10, -10, "d")

	require.Equal(t, 4, tr.Size())
	require.Equal(t, "a", tr.At(10, 10))
	require.Equal(t, "b", tr.At(-10, 10))
	require.Equal(t, "c", tr.At(-10, -10))
	require.Equal(t, "d", tr.At(10, -10))
	require.Equal(t, "", tr.At(40, 40))

	x, y, ok := tr.Find("c")
	require.True(t, ok)
	require.Equal(t, -10.0, x)
	require.Equal(t, -10.0, y)

	_, _, ok = tr.Find("missing")
	require.False(t, ok)
}

func TestPointInsertOutOfBoundsIsNoOp(t *testing.T) {
	tr := New[int](0, 0, 10, 10, -1)
	size := tr.Insert(100, 100, 5)
	require.Equal(t, 0, size)
	require.Equal(t, -1, tr.At(100, 100))
}

func TestPointInsertSubdividesOnCollision(t *testing.T) {
	tr := New[int](0, 0, 100, 100, 0)
	tr.Insert(1, 1, 10)
	require.Equal(t, 1, tr.Size())
	require.Equal(t, 0, tr.Depth())

	// A second point within the same quadrant forces a subdivision.
	tr.Insert(2, 2, 20)
	require.Equal(t, 2, tr.Size())
	require.Greater(t, tr.Depth(), 0)
	require.Equal(t, 10, tr.At(1, 1))
	require.Equal(t, 20, tr.At(2, 2))
}

func TestPointReplaceDefault(t *testing.T) {
	tr := New[string](0, 0, 10, 10, "")
	tr.Insert(1, 1, "first")
	tr.Insert(1, 1, "second")
	require.Equal(t, 1, tr.Size())
	require.Equal(t, "second", tr.At(1, 1))
}

func TestPointNoReplaceFlag(t *testing.T) {
	// Scenario 4 from spec §8.
	tr := New[string](0, 0, 10, 10, "", WithBehavior[string](NoReplace))
	tr.Insert(1, 1, "first")
	tr.Insert(1, 1, "second")
	require.Equal(t, 1, tr.Size())
	require.Equal(t, "first", tr.At(1, 1))
}

func TestPointRemoveMergesAllEmpty(t *testing.T) {
	tr := New[int](0, 0, 100, 100, -1)
	tr.Insert(1, 1, 1)
	tr.Insert(-1, 1, 2)
	require.Equal(t, 2, tr.Size())
	require.Greater(t, tr.Depth(), 0)

	require.True(t, tr.Remove(1, 1))
	require.True(t, tr.Remove(-1, 1))
	require.Equal(t, 0, tr.Size())
	require.Equal(t, 0, tr.Depth())
	require.True(t, tr.root.isLeaf)
	require.False(t, tr.root.hasPosition)
}

func TestPointRemoveMergesThreeEmptyPromotesSurvivor(t *testing.T) {
	// Two occupied siblings (NE, NW): removing NE leaves three empty
	// siblings, so the surviving NW point is promoted into the root leaf.
	tr := New[int](0, 0, 100, 100, -1)
	tr.Insert(1, 1, 100)  // NE
	tr.Insert(-1, 1, 200) // NW
	require.Equal(t, 2, tr.Size())

	require.True(t, tr.Remove(1, 1))
	require.Equal(t, 1, tr.Size())
	require.True(t, tr.root.isLeaf)
	require.True(t, tr.root.hasPosition)
	require.Equal(t, 200, tr.root.value)
	require.Equal(t, -1.0, tr.root.posX)
	require.Equal(t, 1.0, tr.root.posY)
}

func TestPointRemoveAbsentIsNoOp(t *testing.T) {
	tr := New[int](0, 0, 10, 10, -1)
	tr.Insert(1, 1, 5)
	require.False(t, tr.Remove(9, 9))
	require.Equal(t, 1, tr.Size())
}

func TestPointRemoveAllFunc(t *testing.T) {
	tr := New[int](0, 0, 100, 100, -1)
	tr.Insert(1, 1, 7)
	tr.Insert(-1, 1, 7)
	tr.Insert(-1, -1, 3)

	n := tr.RemoveAll(7)
	require.Equal(t, 2, n)
	require.Equal(t, 1, tr.Size())
	require.Equal(t, 3, tr.At(-1, -1))
}

func TestPointClone(t *testing.T) {
	tr := New[int](0, 0, 100, 100, -1)
	tr.Insert(1, 1, 1)
	tr.Insert(-1, 1, 2)

	clone := tr.Clone()
	require.Equal(t, tr.Size(), clone.Size())
	require.Equal(t, tr.At(1, 1), clone.At(1, 1))

	clone.Insert(5, 5, 99)
	require.NotEqual(t, tr.Size(), clone.Size())
}

func TestPointFindWithCustomEqual(t *testing.T) {
	type point struct{ label string }
	eq := func(a, b point) bool { return a.label == b.label }
	tr := New[point](0, 0, 10, 10, point{}, WithEqual[point](eq))
	tr.Insert(2, 2, point{label: "x"})

	x, y, ok := tr.Find(point{label: "x"})
	require.True(t, ok)
	require.Equal(t, 2.0, x)
	require.Equal(t, 2.0, y)
}
