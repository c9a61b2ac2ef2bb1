package quadtree

import (
	"errors"
	"reflect"

	"github.com/scigolib/corelib/internal/xerrors"
)

var errNoMatchingChild = errors.New("quadtree: position not contained in any child bounds")

// Behavior is a bitmask of flags configuring a Tree's insert behavior,
// mirroring the source's "behaviour flag set" (spec §3.2/§4.2).
type Behavior uint32

const (
	// NoReplace, when set, makes Insert keep the existing value at an
	// already-occupied position instead of overwriting it.
	NoReplace Behavior = 1 << iota
)

// quadrant is either a leaf holding an optional (position, value) pair, or
// an internal node with exactly four children whose bounds partition the
// parent's bounds.
type quadrant[V any] struct {
	bounds Bounds
	parent *quadrant[V]

	isLeaf      bool
	hasPosition bool
	posX, posY  float64
	value       V

	ne, nw, sw, se *quadrant[V]
}

func (q *quadrant[V]) children() [4]*quadrant[V] {
	return [4]*quadrant[V]{q.ne, q.nw, q.sw, q.se}
}

// Option configures a Tree at construction.
type Option[V any] func(*Tree[V])

// WithBehavior sets the tree's behavior flags (e.g. NoReplace).
func WithBehavior[V any](b Behavior) Option[V] {
	return func(t *Tree[V]) { t.behavior = b }
}

// WithEqual sets the equality predicate used by Find/FindFunc and
// RemoveAll when no explicit predicate is given. The default compares
// with reflect.DeepEqual, since V has no comparable constraint.
func WithEqual[V any](eq func(a, b V) bool) Option[V] {
	return func(t *Tree[V]) { t.equal = eq }
}

// Tree is a point quadtree: a square spatial index mapping distinct (x,y)
// positions to values of type V, with lazy subdivision on collision and
// merge-on-empty compaction on removal.
type Tree[V any] struct {
	bounds       Bounds
	root         *quadrant[V]
	size         int
	depth        int
	defaultValue V
	behavior     Behavior
	equal        func(a, b V) bool
}

// New creates a point quadtree over the square region centered at
// (centerX, centerY) with the given width and height, whose At returns
// defaultValue for any position with no stored value.
func New[V any](centerX, centerY, width, height float64, defaultValue V, opts ...Option[V]) *Tree[V] {
	t := &Tree[V]{
		bounds:       NewBounds(centerX, centerY, width, height),
		defaultValue: defaultValue,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.equal == nil {
		t.equal = func(a, b V) bool { return reflect.DeepEqual(a, b) }
	}
	return t
}

// Size returns the number of points currently stored.
func (t *Tree[V]) Size() int { return t.size }

// Depth returns the maximum leaf depth (0 when the tree is empty or holds
// only the root).
func (t *Tree[V]) Depth() int { return t.depth }

// DefaultValue returns the value At returns for an absent position.
func (t *Tree[V]) DefaultValue() V { return t.defaultValue }

// SetBehaviorFlag replaces the tree's behavior flag set.
func (t *Tree[V]) SetBehaviorFlag(b Behavior) { t.behavior = b }

func (t *Tree[V]) hasFlag(b Behavior) bool { return t.behavior&b != 0 }

// Insert stores value at (x,y), returning the tree's size after the
// operation. A position outside the tree's bounds is a no-op that returns
// the unchanged size. Re-inserting at an already-occupied position either
// replaces the value (default) or keeps the existing one, depending on
// the NoReplace behavior flag.
func (t *Tree[V]) Insert(x, y float64, value V) int {
	if !t.bounds.Contains(x, y) {
		return t.size
	}
	if t.root == nil {
		t.root = &quadrant[V]{bounds: t.bounds, isLeaf: true}
	}
	if t.insertInto(t.root, x, y, value) {
		t.size++
	}
	return t.size
}

// insertInto descends into the quadrant tree rooted at q, subdividing on
// collision as needed, and reports whether a new point was added (false
// if an existing point at the same position was updated or kept).
func (t *Tree[V]) insertInto(q *quadrant[V], x, y float64, value V) bool {
	if !q.isLeaf {
		child := t.childFor(q, x, y)
		return t.insertInto(child, x, y, value)
	}

	if !q.hasPosition {
		q.hasPosition = true
		q.posX, q.posY = x, y
		q.value = value
		return true
	}

	if q.posX == x && q.posY == y {
		if !t.hasFlag(NoReplace) {
			q.value = value
		}
		return false
	}

	// Occupied by a different point: subdivide and push the existing
	// point down before placing the new one.
	t.subdivide(q)
	existingChild := t.childFor(q, q.posX, q.posY)
	existingChild.hasPosition = true
	existingChild.posX, existingChild.posY = q.posX, q.posY
	existingChild.value = q.value

	var zero V
	q.hasPosition = false
	q.value = zero

	newChild := t.childFor(q, x, y)
	return t.insertInto(newChild, x, y, value)
}

func (t *Tree[V]) subdivide(q *quadrant[V]) {
	neB, nwB, swB, seB := q.bounds.Subdivide()
	q.ne = &quadrant[V]{bounds: neB, parent: q, isLeaf: true}
	q.nw = &quadrant[V]{bounds: nwB, parent: q, isLeaf: true}
	q.sw = &quadrant[V]{bounds: swB, parent: q, isLeaf: true}
	q.se = &quadrant[V]{bounds: seB, parent: q, isLeaf: true}
	q.isLeaf = false

	if d := depthOf(q) + 1; d > t.depth {
		t.depth = d
	}
}

// childFor returns the child of q whose bounds contain (x,y). q is
// assumed non-leaf and (x,y) is assumed to lie within q.bounds; the four
// children's bounds exactly partition q.bounds, so exactly one matches.
// Reaching no match indicates a library invariant violation.
func (t *Tree[V]) childFor(q *quadrant[V], x, y float64) *quadrant[V] {
	switch {
	case q.ne.bounds.Contains(x, y):
		return q.ne
	case q.nw.bounds.Contains(x, y):
		return q.nw
	case q.sw.bounds.Contains(x, y):
		return q.sw
	case q.se.bounds.Contains(x, y):
		return q.se
	default:
		panic(xerrors.NewImplementationError("quadtree child lookup", errNoMatchingChild))
	}
}

func depthOf[V any](q *quadrant[V]) int {
	d := 0
	for p := q.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// At returns the value stored at (x,y), or the tree's default value if no
// point is stored there.
func (t *Tree[V]) At(x, y float64) V {
	if t.root == nil || !t.bounds.Contains(x, y) {
		return t.defaultValue
	}
	q := t.root
	for !q.isLeaf {
		q = t.childFor(q, x, y)
	}
	if q.hasPosition && q.posX == x && q.posY == y {
		return q.value
	}
	return t.defaultValue
}

// Find returns the coordinates of the first leaf whose value equals value
// under the tree's configured equality predicate (WithEqual, defaulting
// to reflect.DeepEqual), searching in NE, NW, SW, SE order. Returns
// ok=false if no such point exists.
func (t *Tree[V]) Find(value V) (x, y float64, ok bool) {
	return t.FindFunc(value, t.equal)
}

// FindFunc is Find with an explicit equality predicate.
func (t *Tree[V]) FindFunc(value V, predicate func(a, b V) bool) (x, y float64, ok bool) {
	if t.root == nil {
		return 0, 0, false
	}
	return searchQuadrant(t.root, value, predicate)
}

func searchQuadrant[V any](q *quadrant[V], value V, eq func(a, b V) bool) (float64, float64, bool) {
	if q.isLeaf {
		if q.hasPosition && eq(q.value, value) {
			return q.posX, q.posY, true
		}
		return 0, 0, false
	}
	for _, child := range q.children() {
		if x, y, ok := searchQuadrant(child, value, eq); ok {
			return x, y, true
		}
	}
	return 0, 0, false
}

// Remove clears the point at (x,y), if any, compacting internal nodes
// per the merge rule (all four siblings empty collapses the parent to
// empty; exactly three empty promotes the survivor). Returns true if a
// point was removed.
func (t *Tree[V]) Remove(x, y float64) bool {
	if t.root == nil || !t.bounds.Contains(x, y) {
		return false
	}
	q := t.root
	for !q.isLeaf {
		q = t.childFor(q, x, y)
	}
	if !q.hasPosition || q.posX != x || q.posY != y {
		return false
	}

	var zero V
	q.hasPosition = false
	q.value = zero
	t.size--

	for p := q.parent; p != nil; p = p.parent {
		if !t.collapseIfPossible(p) {
			break
		}
	}
	t.recomputeDepth()
	return true
}

// collapseIfPossible applies the merge rule at q, returning true if q's
// state changed (so the caller should keep walking up: a collapse may
// make q itself collapsible at its own parent).
func (t *Tree[V]) collapseIfPossible(q *quadrant[V]) bool {
	if q.isLeaf {
		return false
	}
	children := q.children()
	for _, c := range children {
		if !c.isLeaf {
			return false
		}
	}

	emptyCount := 0
	var survivor *quadrant[V]
	for _, c := range children {
		if c.hasPosition {
			survivor = c
		} else {
			emptyCount++
		}
	}

	switch emptyCount {
	case 4:
		q.ne, q.nw, q.sw, q.se = nil, nil, nil, nil
		q.isLeaf = true
		q.hasPosition = false
		return true
	case 3:
		q.hasPosition = true
		q.posX, q.posY, q.value = survivor.posX, survivor.posY, survivor.value
		q.ne, q.nw, q.sw, q.se = nil, nil, nil, nil
		q.isLeaf = true
		return true
	default:
		return false
	}
}

// RemoveAll removes every point whose value equals value under the
// tree's configured equality predicate, returning the count removed.
func (t *Tree[V]) RemoveAll(value V) int {
	return t.RemoveAllFunc(value, t.equal)
}

// RemoveAllFunc is RemoveAll with an explicit equality predicate.
func (t *Tree[V]) RemoveAllFunc(value V, predicate func(a, b V) bool) int {
	count := 0
	for t.root != nil {
		x, y, ok := searchQuadrant(t.root, value, predicate)
		if !ok {
			break
		}
		if !t.Remove(x, y) {
			break
		}
		count++
	}
	return count
}

func (t *Tree[V]) recomputeDepth() {
	if t.root == nil {
		t.depth = 0
		return
	}
	t.depth = maxLeafDepth(t.root, 0)
}

func maxLeafDepth[V any](q *quadrant[V], d int) int {
	if q.isLeaf {
		return d
	}
	m := d
	for _, c := range q.children() {
		if cd := maxLeafDepth(c, d+1); cd > m {
			m = cd
		}
	}
	return m
}

// Clone returns a deep copy of t: an independent quadrant tree with the
// same bounds, points, and values, and freshly re-stitched parent
// back-references.
func (t *Tree[V]) Clone() *Tree[V] {
	clone := &Tree[V]{
		bounds:       t.bounds,
		size:         t.size,
		depth:        t.depth,
		defaultValue: t.defaultValue,
		behavior:     t.behavior,
		equal:        t.equal,
	}
	clone.root = cloneQuadrant(t.root, nil)
	return clone
}

func cloneQuadrant[V any](q *quadrant[V], parent *quadrant[V]) *quadrant[V] {
	if q == nil {
		return nil
	}
	c := &quadrant[V]{
		bounds:      q.bounds,
		parent:      parent,
		isLeaf:      q.isLeaf,
		hasPosition: q.hasPosition,
		posX:        q.posX,
		posY:        q.posY,
		value:       q.value,
	}
	c.ne = cloneQuadrant(q.ne, c)
	c.nw = cloneQuadrant(q.nw, c)
	c.sw = cloneQuadrant(q.sw, c)
	c.se = cloneQuadrant(q.se, c)
	return c
}
