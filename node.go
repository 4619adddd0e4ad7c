// Copyright 2021 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"sync/atomic"
	"unsafe"
)

// maxEntries is the fixed fanout (M) of every node. It is a tuning
// constant, not part of the tree's observable contract.
const maxEntries = 64

// minEntries is the minimum fill (m) a non-root node must retain,
// ceil(0.4 * maxEntries).
const minEntries = (maxEntries*4 + 9) / 10

type kind int8

const (
	none kind = iota
	leaf
	branch
)

// node is the common header shared by leafNode and branchNode. Exactly
// one allocation backs every node: the header plus its tail array. The
// tail is only valid to access through items() or children(), which
// reinterpret the header pointer based on kind, recovering the tail
// array allocated alongside it.
//
// refcount is the number of parent-side pointers (including pointers
// held by cloned trees) that currently reference this node. It is
// atomic so that distinct Tree handles produced by Clone may be driven
// from different goroutines concurrently; see the Clone docs in cow.go.
type node[N number, T any] struct {
	refcount atomic.Int32
	kind     kind
	count    int16
	rects    [maxEntries]Rect[N]
}

type leafNode[N number, T any] struct {
	node[N, T]
	items [maxEntries]T
}

type branchNode[N number, T any] struct {
	node[N, T]
	children [maxEntries]*node[N, T]
}

func (n *node[N, T]) isLeaf() bool {
	return n.kind == leaf
}

func (n *node[N, T]) items() []T {
	if n.kind != leaf {
		return nil
	}
	return leafNodeFrom(n).items[:]
}

func (n *node[N, T]) children() []*node[N, T] {
	if n.kind != branch {
		return nil
	}
	return branchNodeFrom(n).children[:]
}

// leafNodeFrom reinterprets a node header known to be a leaf as its
// full leafNode, recovering the tail array allocated alongside it.
func leafNodeFrom[N number, T any](n *node[N, T]) *leafNode[N, T] {
	return (*leafNode[N, T])(unsafe.Pointer(n))
}

// branchNodeFrom is the branch-kind counterpart of leafNodeFrom.
func branchNodeFrom[N number, T any](n *node[N, T]) *branchNode[N, T] {
	return (*branchNode[N, T])(unsafe.Pointer(n))
}

// rect recomputes the minimum bounding rectangle of n's occupied slots.
func (n *node[N, T]) rect() Rect[N] {
	r := n.rects[0]
	for i := 1; i < int(n.count); i++ {
		r.expand(&n.rects[i])
	}
	return r
}

func (n *node[N, T]) swap(i, j int) {
	n.rects[i], n.rects[j] = n.rects[j], n.rects[i]
	if n.isLeaf() {
		items := n.items()
		items[i], items[j] = items[j], items[i]
	} else {
		children := n.children()
		children[i], children[j] = children[j], children[i]
	}
}

// sortByAxis insertion-sorts the occupied slots of n by the min (or max,
// when byMax is set) coordinate along axis. maxEntries is small enough
// that an O(k^2) sort is cheaper in practice than the bookkeeping of a
// recursive partition, and it keeps the split path allocation-free.
func (n *node[N, T]) sortByAxis(axis int, byMax bool) {
	count := int(n.count)
	key := func(i int) N {
		if byMax {
			return n.rects[i].Max[axis]
		}
		return n.rects[i].Min[axis]
	}
	for i := 1; i < count; i++ {
		for j := i; j > 0 && key(j) < key(j-1); j-- {
			n.swap(j, j-1)
		}
	}
}
