package quadtree

import "github.com/scigolib/corelib/internal/numeric"

// Bounds is an axis-aligned rectangle [Left, Right) x [Bottom, Top),
// half-open on the right and top so that a point on a splitting line
// belongs unambiguously to the north/east side.
type Bounds struct {
	Left, Right, Bottom, Top float64
}

// NewBounds builds the Bounds of a rectangle centered at (centerX,
// centerY) with the given width and height.
func NewBounds(centerX, centerY, width, height float64) Bounds {
	halfW, halfH := width/2, height/2
	return Bounds{
		Left:   centerX - halfW,
		Right:  centerX + halfW,
		Bottom: centerY - halfH,
		Top:    centerY + halfH,
	}
}

// Contains reports whether (x,y) lies inside b.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.Left && x < b.Right && y >= b.Bottom && y < b.Top
}

// CenterX returns the x-coordinate of b's center.
func (b Bounds) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the y-coordinate of b's center.
func (b Bounds) CenterY() float64 { return (b.Bottom + b.Top) / 2 }

// Width returns b's extent along x, always non-negative even if b was
// built with Right < Left.
func (b Bounds) Width() float64 { return numeric.Abs(b.Right - b.Left) }

// Height returns b's extent along y, always non-negative even if b was
// built with Top < Bottom.
func (b Bounds) Height() float64 { return numeric.Abs(b.Top - b.Bottom) }

// Subdivide splits b into its four quadrants at its center, in NE, NW, SW,
// SE order. The four returned rectangles are disjoint and their union is
// exactly b.
func (b Bounds) Subdivide() (ne, nw, sw, se Bounds) {
	cx, cy := b.CenterX(), b.CenterY()
	ne = Bounds{Left: cx, Right: b.Right, Bottom: cy, Top: b.Top}
	nw = Bounds{Left: b.Left, Right: cx, Bottom: cy, Top: b.Top}
	sw = Bounds{Left: b.Left, Right: cx, Bottom: b.Bottom, Top: cy}
	se = Bounds{Left: cx, Right: b.Right, Bottom: b.Bottom, Top: cy}
	return ne, nw, sw, se
}

// Point is a plain 2-D coordinate, used both for stored point-quadtree
// positions and for region-quadtree polygon vertices.
type Point struct {
	X, Y float64
}
