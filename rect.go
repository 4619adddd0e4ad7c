// Copyright 2021 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// numDims is the fixed dimensionality of every rectangle stored in the
// tree. This rtree hard-codes two dimensions; a build targeting more
// dimensions only needs to widen this constant and the Rect arrays
// below, the algorithms themselves are dimension-agnostic.
const numDims = 2

// number is the set of coordinate types a Rect may be built over.
type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Rect is an axis-aligned bounding rectangle. A point is encoded with
// Min == Max. The zero value is the degenerate rectangle at the origin.
type Rect[N number] struct {
	Min, Max [numDims]N
}

// Area returns the product of the rectangle's per-axis extents.
func (r Rect[N]) Area() N {
	return (r.Max[0] - r.Min[0]) * (r.Max[1] - r.Min[1])
}

// Union returns the minimum bounding rectangle covering both r and b.
func (r Rect[N]) Union(b Rect[N]) Rect[N] {
	u := r
	u.expand(&b)
	return u
}

// expand grows r in place so that it covers b.
func (r *Rect[N]) expand(b *Rect[N]) {
	if b.Min[0] < r.Min[0] {
		r.Min[0] = b.Min[0]
	}
	if b.Max[0] > r.Max[0] {
		r.Max[0] = b.Max[0]
	}
	if b.Min[1] < r.Min[1] {
		r.Min[1] = b.Min[1]
	}
	if b.Max[1] > r.Max[1] {
		r.Max[1] = b.Max[1]
	}
}

// UnionedArea returns Area(Union(r, b)) without materializing the union.
func (r Rect[N]) UnionedArea(b Rect[N]) N {
	return (fmax(r.Max[0], b.Max[0]) - fmin(r.Min[0], b.Min[0])) *
		(fmax(r.Max[1], b.Max[1]) - fmin(r.Min[1], b.Min[1]))
}

// Enlargement returns the increase in area required for r to cover b.
// It is never negative.
func (r Rect[N]) Enlargement(b Rect[N]) N {
	return r.UnionedArea(b) - r.Area()
}

// Intersects reports whether r and b share at least one point.
func (r Rect[N]) Intersects(b Rect[N]) bool {
	if b.Min[0] > r.Max[0] || b.Max[0] < r.Min[0] {
		return false
	}
	if b.Min[1] > r.Max[1] || b.Max[1] < r.Min[1] {
		return false
	}
	return true
}

// Contains reports whether b lies entirely within r.
func (r Rect[N]) Contains(b Rect[N]) bool {
	if b.Min[0] < r.Min[0] || b.Max[0] > r.Max[0] {
		return false
	}
	if b.Min[1] < r.Min[1] || b.Max[1] > r.Max[1] {
		return false
	}
	return true
}

// Equal reports whether r and b have identical bounds.
func (r Rect[N]) Equal(b Rect[N]) bool {
	return r.Min[0] == b.Min[0] && r.Min[1] == b.Min[1] &&
		r.Max[0] == b.Max[0] && r.Max[1] == b.Max[1]
}

// onEdge reports whether r touches the outer edge of b, i.e. shrinking r
// out of b could possibly shrink b's own bounds.
func (r *Rect[N]) onEdge(b *Rect[N]) bool {
	return !(r.Min[0] > b.Min[0] && r.Min[1] > b.Min[1] &&
		r.Max[0] < b.Max[0] && r.Max[1] < b.Max[1])
}

// largestAxis returns the index of the axis with the greatest extent.
func (r Rect[N]) largestAxis() int {
	if r.Max[1]-r.Min[1] > r.Max[0]-r.Min[0] {
		return 1
	}
	return 0
}

func fmin[N number](a, b N) N {
	if a < b {
		return a
	}
	return b
}

func fmax[N number](a, b N) N {
	if a > b {
		return a
	}
	return b
}
