// Copyright 2021 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// splitLargestAxisEdgeSnap partitions left's entries between left and a
// caller-supplied, already-allocated, empty right node: it picks the
// axis of greatest spread in r (left's current MBR), then assigns each
// entry to whichever side its min/max are closer to, snapping entries
// to the edge they're nearest. If that leaves either side under
// minEntries, entries are moved across from the fullest extremes of the
// other side until both meet the minimum fill invariant (I1).
//
// The caller must supply right pre-allocated so that a split can never
// fail partway through for lack of memory; see insert.go for the
// preflight allocation this relies on.
func (tr *Tree[N, T]) splitLargestAxisEdgeSnap(r Rect[N], left, right *node[N, T]) {
	axis := r.largestAxis()
	for i := 0; i < int(left.count); i++ {
		minDist := left.rects[i].Min[axis] - r.Min[axis]
		maxDist := r.Max[axis] - left.rects[i].Max[axis]
		if minDist < maxDist {
			// stays on the left
			continue
		}
		tr.moveEntry(left, i, right)
		i--
	}
	if left.count < minEntries {
		right.sortByAxis(axis, false)
		for left.count < minEntries {
			tr.moveEntry(right, int(right.count)-1, left)
		}
	} else if right.count < minEntries {
		left.sortByAxis(axis, true)
		for right.count < minEntries {
			tr.moveEntry(left, int(left.count)-1, right)
		}
	}
}

// moveEntry relocates the entry at index from from into into, using a
// swap-with-last removal so no shifting of the remaining entries in
// from is required.
func (tr *Tree[N, T]) moveEntry(from *node[N, T], index int, into *node[N, T]) {
	into.rects[into.count] = from.rects[index]
	last := int(from.count) - 1
	from.rects[index] = from.rects[last]
	if from.isLeaf() {
		fromItems, intoItems := from.items(), into.items()
		intoItems[into.count] = fromItems[index]
		fromItems[index] = fromItems[last]
		var empty T
		fromItems[last] = empty
	} else {
		fromChildren, intoChildren := from.children(), into.children()
		intoChildren[into.count] = fromChildren[index]
		fromChildren[index] = fromChildren[last]
		fromChildren[last] = nil
	}
	from.count--
	into.count++
}
