// Package numeric provides the small arithmetic helpers that the spec
// treats as out-of-scope collaborators ("the thin utility wrappers around
// arithmetic helpers: absolute value, max, modulus") and consumes only at
// the quadtree bounds-arithmetic boundary.
package numeric

import (
	"errors"
	"math"

	"github.com/scigolib/corelib/internal/xerrors"
)

// Real is the constraint satisfied by the coordinate types the quadtree
// bounds arithmetic is instantiated over.
type Real interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Abs returns the absolute value of v.
func Abs[T Real](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Max returns the largest of the given values. At least one value is
// required: the first is a separate parameter, so a call with no
// arguments does not compile.
func Max[T Real](first T, rest ...T) T {
	m := first
	for _, v := range rest {
		if v > m {
			m = v
		}
	}
	return m
}

// Mod returns the non-negative remainder of dividing a by b, wrapping
// negative values the way bounds-wrapping arithmetic expects (unlike Go's
// native %, which preserves the sign of the dividend, and unlike Go's
// native / on floats, which is exact rather than floored). Holds for both
// the integer and floating-point instantiations of T — e.g. Mod(7.5, 2)
// returns 1.5, not 0. Returns a *xerrors.ValueError if b is zero or
// negative, mirroring the source's "reversed bounds in bounded modulo"
// value-error case.
func Mod[T Real](a, b T) (T, error) {
	if b <= 0 {
		return 0, xerrors.NewValueError("modulo", errors.New("modulus must be positive"))
	}
	r := a - (floorDiv(a, b) * b)
	return r, nil
}

// floorDiv computes floor(a/b) for b > 0, used by Mod to get a
// non-negative remainder regardless of the sign of a. T's native / is
// exact for floating-point instantiations (not truncating), so a plain
// a/b is not itself a floor for fractional quotients; routing through
// float64 and math.Floor gives the correct result for every
// instantiation of Real, integer or floating-point, at the cost of
// float64 precision for very large integer magnitudes.
func floorDiv[T Real](a, b T) T {
	return T(math.Floor(float64(a) / float64(b)))
}
