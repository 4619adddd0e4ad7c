// Copyright 2021 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// Option configures a Tree at construction time.
type Option[N number, T any] func(*Tree[N, T])

// WithAllocator replaces the tree's default allocator. See Allocator
// for the contract an implementation must satisfy.
func WithAllocator[N number, T any](alloc Allocator[N, T]) Option[N, T] {
	return func(tr *Tree[N, T]) {
		tr.alloc = alloc
	}
}

// WithItemCallbacks installs the item-callback pair at construction
// time; equivalent to calling Tree.SetItemCallbacks immediately after
// New.
func WithItemCallbacks[N number, T any](clone CloneItemFunc[T], free FreeItemFunc[T]) Option[N, T] {
	return func(tr *Tree[N, T]) {
		tr.cloneItem = clone
		tr.freeItem = free
	}
}

// WithUserData sets the opaque user-data value delivered to item
// callbacks.
func WithUserData[N number, T any](udata any) Option[N, T] {
	return func(tr *Tree[N, T]) {
		tr.udata = udata
	}
}

// WithFanoutHint records a caller's preferred node fanout for
// diagnostic purposes. Go's node layout is a fixed-size array
// (maxEntries), so the hint is clamped to that compiled-in capacity
// rather than changing it: fanout is a tuning constant, not part of
// the tree's observable contract (spec §8).
func WithFanoutHint[N number, T any](hint int) Option[N, T] {
	return func(tr *Tree[N, T]) {
		if hint < 1 {
			hint = 1
		}
		if hint > maxEntries {
			hint = maxEntries
		}
		tr.fanoutHint = hint
	}
}
