package quadtree

import "github.com/scigolib/corelib/internal/numeric"

// regionQuadrant is a boolean-valued node: either a leaf carrying a
// single value for its whole area, or an internal node with exactly four
// children that partition its bounds. Unlike the point quadtree, a
// region quadrant never mixes leaf and non-leaf state with stored data;
// subdivision always happens on insert-with-conflicting-value and
// collapses back whenever all four children agree.
type regionQuadrant struct {
	bounds Bounds
	parent *regionQuadrant

	isLeaf bool
	value  bool

	ne, nw, sw, se *regionQuadrant
}

func (q *regionQuadrant) children() [4]*regionQuadrant {
	return [4]*regionQuadrant{q.ne, q.nw, q.sw, q.se}
}

// RegionTree is a region quadtree over a square area: every point in the
// area has a boolean value, defaulting to false, and adjacent points with
// equal values are merged into a single leaf quadrant rather than stored
// individually. Subdivision halts once a quadrant's cell is 1x1 or
// smaller, since no more resolution can be represented below that size.
type RegionTree struct {
	bounds    Bounds
	root      *regionQuadrant
	trueCount int
	depth     int
}

// NewRegion creates a region quadtree over the square area centered at
// (centerX, centerY) with the given width and height, initially all
// false.
func NewRegion(centerX, centerY, width, height float64) *RegionTree {
	b := NewBounds(centerX, centerY, width, height)
	return &RegionTree{
		bounds: b,
		root:   &regionQuadrant{bounds: b, isLeaf: true},
	}
}

// Size returns the number of unit cells currently valued true. Unlike
// the point quadtree's Size, this reflects the full area even though the
// tree is internally compacted: it is a running count that each Insert
// raises or lowers by one when it changes the value at its position.
func (r *RegionTree) Size() int { return r.trueCount }

// Depth returns the maximum quadrant depth currently in the tree.
func (r *RegionTree) Depth() int { return r.depth }

// Bounds returns the tree's overall area.
func (r *RegionTree) Bounds() Bounds { return r.bounds }

func cellAtUnit(b Bounds) bool {
	return b.Width() <= 1 && b.Height() <= 1
}

// At reports the boolean value at (x,y); a position outside the tree's
// bounds reports false.
func (r *RegionTree) At(x, y float64) bool {
	if !r.bounds.Contains(x, y) {
		return false
	}
	q := r.root
	for !q.isLeaf {
		q = regionChildFor(q, x, y)
	}
	return q.value
}

func regionChildFor(q *regionQuadrant, x, y float64) *regionQuadrant {
	switch {
	case q.ne.bounds.Contains(x, y):
		return q.ne
	case q.nw.bounds.Contains(x, y):
		return q.nw
	case q.sw.bounds.Contains(x, y):
		return q.sw
	default:
		return q.se
	}
}

// Insert sets the value at (x,y), subdividing quadrants as needed and
// merging back up wherever a subdivision's four children end up equal.
// A position outside the tree's bounds is a no-op. Insert returns the
// tree's size (count of true unit cells) after the operation.
func (r *RegionTree) Insert(x, y float64, value bool) int {
	if !r.bounds.Contains(x, y) {
		return r.trueCount
	}
	before := r.At(x, y)
	r.insertInto(r.root, x, y, value)
	if before != value {
		if value {
			r.trueCount++
		} else {
			r.trueCount--
		}
	}
	r.recomputeDepth()
	return r.trueCount
}

func (r *RegionTree) insertInto(q *regionQuadrant, x, y float64, value bool) {
	if !q.isLeaf {
		child := regionChildFor(q, x, y)
		r.insertInto(child, x, y, value)
		tryMerge(q)
		return
	}

	if q.value == value {
		return
	}

	if cellAtUnit(q.bounds) {
		q.value = value
		return
	}

	r.subdivideRegion(q)
	child := regionChildFor(q, x, y)
	r.insertInto(child, x, y, value)
	tryMerge(q)
}

// subdivideRegion splits leaf q into four leaf children, each inheriting
// q's current value so the area's meaning is preserved until one of them
// is changed.
func (r *RegionTree) subdivideRegion(q *regionQuadrant) {
	neB, nwB, swB, seB := q.bounds.Subdivide()
	prior := q.value
	q.ne = &regionQuadrant{bounds: neB, parent: q, isLeaf: true, value: prior}
	q.nw = &regionQuadrant{bounds: nwB, parent: q, isLeaf: true, value: prior}
	q.sw = &regionQuadrant{bounds: swB, parent: q, isLeaf: true, value: prior}
	q.se = &regionQuadrant{bounds: seB, parent: q, isLeaf: true, value: prior}
	q.isLeaf = false

	if d := regionDepthOf(q) + 1; d > r.depth {
		r.depth = d
	}
}

func regionDepthOf(q *regionQuadrant) int {
	d := 0
	for p := q.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// tryMerge collapses q back into a single leaf if all four of its
// children are leaves sharing the same value, preserving the invariant
// that no internal node has four equal-valued leaf children.
func tryMerge(q *regionQuadrant) bool {
	if q.isLeaf {
		return false
	}
	children := q.children()
	for _, c := range children {
		if !c.isLeaf {
			return false
		}
	}
	first := children[0].value
	for _, c := range children[1:] {
		if c.value != first {
			return false
		}
	}
	q.ne, q.nw, q.sw, q.se = nil, nil, nil, nil
	q.isLeaf = true
	q.value = first
	return true
}

func (r *RegionTree) recomputeDepth() {
	r.depth = regionMaxLeafDepth(r.root, 0)
}

func regionMaxLeafDepth(q *regionQuadrant, d int) int {
	if q.isLeaf {
		return d
	}
	m := d
	for _, c := range q.children() {
		if cd := regionMaxLeafDepth(c, d+1); cd > m {
			m = cd
		}
	}
	return m
}

// Set is a convenience for Insert(x, y, true).
func (r *RegionTree) Set(x, y float64) int { return r.Insert(x, y, true) }

// Unset is a convenience for Insert(x, y, false).
func (r *RegionTree) Unset(x, y float64) int { return r.Insert(x, y, false) }

// InsertRegion sets value over every unit cell whose center lies inside
// the polygon described by vertices, using an even-odd ray-casting test
// (spec §9's open question on polygon fill). The polygon is implicitly
// closed (the last vertex connects back to the first). Cells are visited
// row by row over the polygon's bounding box, clipped to the tree's own
// bounds, each treated as a point test at its center; InsertRegion
// returns the tree's size after the fill.
func (r *RegionTree) InsertRegion(vertices []Point, value bool) int {
	if len(vertices) < 3 {
		return r.trueCount
	}

	minX, maxX := vertices[0].X, vertices[0].X
	minY, maxY := vertices[0].Y, vertices[0].Y
	for _, v := range vertices[1:] {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}
	if minX < r.bounds.Left {
		minX = r.bounds.Left
	}
	if maxX > r.bounds.Right {
		maxX = r.bounds.Right
	}
	if minY < r.bounds.Bottom {
		minY = r.bounds.Bottom
	}
	if maxY > r.bounds.Top {
		maxY = r.bounds.Top
	}

	startX, startY := floorTo(minX), floorTo(minY)
	for cy := startY; cy < maxY; cy++ {
		for cx := startX; cx < maxX; cx++ {
			cellCenterX, cellCenterY := cx+0.5, cy+0.5
			if !r.bounds.Contains(cellCenterX, cellCenterY) {
				continue
			}
			if pointInPolygon(cellCenterX, cellCenterY, vertices) {
				r.Insert(cellCenterX, cellCenterY, value)
			}
		}
	}
	return r.trueCount
}

// floorTo rounds v down to the nearest integer, via the bounds-arithmetic
// modulo helper rather than a hand-rolled sign check.
func floorTo(v float64) float64 {
	rem, err := numeric.Mod(v, 1)
	if err != nil {
		return v
	}
	return v - rem
}

// pointInPolygon reports whether (x,y) lies inside the polygon described
// by vertices, via the standard even-odd ray-casting rule: a horizontal
// ray cast from (x,y) toward +X crosses the boundary an odd number of
// times iff the point is interior.
func pointInPolygon(x, y float64, vertices []Point) bool {
	inside := false
	n := len(vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := vertices[i], vertices[j]
		crosses := (vi.Y > y) != (vj.Y > y)
		if !crosses {
			continue
		}
		xIntersect := vj.X + (y-vj.Y)/(vi.Y-vj.Y)*(vi.X-vj.X)
		if x < xIntersect {
			inside = !inside
		}
	}
	return inside
}

// SetRegion is a convenience for InsertRegion(vertices, true).
func (r *RegionTree) SetRegion(vertices []Point) int { return r.InsertRegion(vertices, true) }

// UnsetRegion is a convenience for InsertRegion(vertices, false).
func (r *RegionTree) UnsetRegion(vertices []Point) int { return r.InsertRegion(vertices, false) }
