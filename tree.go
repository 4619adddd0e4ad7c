// Copyright 2021 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "errors"

// ErrOOM is returned by a mutating operation when the configured
// Allocator refuses an allocation or a configured CloneItemFunc
// reports failure partway through a copy-on-write detach. The tree is
// left observably unchanged: spec §7's all-or-nothing guarantee.
var ErrOOM = errors.New("rtree: allocation failed")

// Tree is a height-balanced R-tree over rectangles with coordinate type
// N and payload type T. The zero value is not usable; construct one
// with New or NewWithAllocator. A *Tree must only be driven by a single
// goroutine at a time, though distinct Tree handles sharing a node
// graph through Clone may each be driven concurrently by a different
// goroutine (spec §5).
type Tree[N number, T any] struct {
	alloc     Allocator[N, T]
	cloneItem CloneItemFunc[T]
	freeItem  FreeItemFunc[T]
	udata     any

	root     *node[N, T]
	rootRect Rect[N]
	height   int
	count    int

	fanoutHint int
	metrics    metrics
}

// New returns a fresh, empty tree configured by opts.
func New[N number, T any](opts ...Option[N, T]) *Tree[N, T] {
	tr := &Tree[N, T]{
		alloc:      defaultAllocator[N, T]{},
		fanoutHint: maxEntries,
	}
	for _, opt := range opts {
		opt(tr)
	}
	return tr
}

// NewWithAllocator returns a fresh, empty tree that allocates and frees
// every node through alloc. It is equivalent to New(WithAllocator(alloc))
// and is provided under this name for parity with spec §6's
// new_with_allocator operation.
func NewWithAllocator[N number, T any](alloc Allocator[N, T]) *Tree[N, T] {
	return New[N, T](WithAllocator[N, T](alloc))
}

// SetUserData stores udata for later delivery to this tree's item
// callbacks. It does not affect already-stored payloads.
func (tr *Tree[N, T]) SetUserData(udata any) {
	tr.udata = udata
}

// UserData returns the value last passed to SetUserData, or to
// WithUserData at construction time.
func (tr *Tree[N, T]) UserData() any {
	return tr.udata
}

// SetItemCallbacks installs the item-callback pair used to keep
// reference-counted payloads consistent across copy-on-write detaches
// and node releases. Passing nil for either disables that half of the
// protocol: payloads are then treated as opaque, bit-identical handles.
func (tr *Tree[N, T]) SetItemCallbacks(clone CloneItemFunc[T], free FreeItemFunc[T]) {
	tr.cloneItem = clone
	tr.freeItem = free
}

// Count returns the number of payload entries reachable from the tree,
// in O(1).
func (tr *Tree[N, T]) Count() int {
	return tr.count
}

// Bounds returns the minimum bounding rectangle of every entry in the
// tree. For an empty tree it returns the zero rectangle.
func (tr *Tree[N, T]) Bounds() (min, max [numDims]N) {
	return tr.rootRect.Min, tr.rootRect.Max
}

// Height returns the tree's current height: 0 for an empty tree, 1 when
// the root is itself a leaf.
func (tr *Tree[N, T]) Height() int {
	return tr.height
}
