package quadtree

import (
	"fmt"
	"strings"
)

// Dump renders a point quadtree's quadrant structure as indented text,
// one line per quadrant, useful for debugging small trees by eye.
func (t *Tree[V]) Dump() string {
	var sb strings.Builder
	if t.root == nil {
		sb.WriteString("(empty)\n")
		return sb.String()
	}
	dumpQuadrant(&sb, t.root, 0)
	return sb.String()
}

func dumpQuadrant[V any](sb *strings.Builder, q *quadrant[V], indent int) {
	pad := strings.Repeat("  ", indent)
	if q.isLeaf {
		if q.hasPosition {
			fmt.Fprintf(sb, "%sleaf [%.3g,%.3g)x[%.3g,%.3g) point=(%g,%g) value=%v\n",
				pad, q.bounds.Left, q.bounds.Right, q.bounds.Bottom, q.bounds.Top, q.posX, q.posY, q.value)
		} else {
			fmt.Fprintf(sb, "%sleaf [%.3g,%.3g)x[%.3g,%.3g) empty\n",
				pad, q.bounds.Left, q.bounds.Right, q.bounds.Bottom, q.bounds.Top)
		}
		return
	}
	fmt.Fprintf(sb, "%snode [%.3g,%.3g)x[%.3g,%.3g)\n",
		pad, q.bounds.Left, q.bounds.Right, q.bounds.Bottom, q.bounds.Top)
	for label, c := range map[string]*quadrant[V]{"NE": q.ne, "NW": q.nw, "SW": q.sw, "SE": q.se} {
		fmt.Fprintf(sb, "%s %s:\n", pad, label)
		dumpQuadrant(sb, c, indent+1)
	}
}

// Dump renders a region quadtree's quadrant structure as indented text.
func (r *RegionTree) Dump() string {
	var sb strings.Builder
	dumpRegionQuadrant(&sb, r.root, 0)
	return sb.String()
}

func dumpRegionQuadrant(sb *strings.Builder, q *regionQuadrant, indent int) {
	pad := strings.Repeat("  ", indent)
	if q.isLeaf {
		fmt.Fprintf(sb, "%sleaf [%.3g,%.3g)x[%.3g,%.3g) value=%v\n",
			pad, q.bounds.Left, q.bounds.Right, q.bounds.Bottom, q.bounds.Top, q.value)
		return
	}
	fmt.Fprintf(sb, "%snode [%.3g,%.3g)x[%.3g,%.3g)\n",
		pad, q.bounds.Left, q.bounds.Right, q.bounds.Bottom, q.bounds.Top)
	dumpRegionQuadrant(sb, q.ne, indent+1)
	dumpRegionQuadrant(sb, q.nw, indent+1)
	dumpRegionQuadrant(sb, q.sw, indent+1)
	dumpRegionQuadrant(sb, q.se, indent+1)
}

// Grid renders r as a row-major grid of '1'/'0' characters, one row per
// integer y from top to bottom and one column per integer x from left to
// right, sampling the cell center of each unit square. It is intended for
// small, integer-bounded region trees used in tests and demos.
func (r *RegionTree) Grid() string {
	var sb strings.Builder
	top := int(r.bounds.Top)
	bottom := int(r.bounds.Bottom)
	left := int(r.bounds.Left)
	right := int(r.bounds.Right)

	for y := top - 1; y >= bottom; y-- {
		for x := left; x < right; x++ {
			if r.At(float64(x)+0.5, float64(y)+0.5) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
