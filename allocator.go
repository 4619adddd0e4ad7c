// Copyright 2021 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "sync"

// Allocator is the injection point named by spec §6's
// new_with_allocator(alloc, free). Go has no direct analogue of a raw
// alloc(size)/free(ptr) pair for a struct graph the garbage collector
// must keep scanning, so the contract is expressed as a small factory
// interface instead: NewNode produces a node of the requested kind (or
// reports failure, simulating allocator exhaustion), and Free returns a
// node's storage to the allocator once its refcount has dropped to zero.
//
// Implementations must be safe for concurrent use by distinct Tree
// handles produced via Clone, since those handles may run on different
// goroutines (spec §5).
type Allocator[N number, T any] interface {
	NewNode(isLeaf bool) (n *node[N, T], ok bool)
	Free(n *node[N, T])
}

// defaultAllocator allocates directly through the Go runtime and never
// reports failure; it is the allocator New uses when none is supplied.
type defaultAllocator[N number, T any] struct{}

func (defaultAllocator[N, T]) NewNode(isLeaf bool) (*node[N, T], bool) {
	if isLeaf {
		n := &leafNode[N, T]{}
		n.kind = leaf
		n.refcount.Store(1)
		return &n.node, true
	}
	n := &branchNode[N, T]{}
	n.kind = branch
	n.refcount.Store(1)
	return &n.node, true
}

func (defaultAllocator[N, T]) Free(*node[N, T]) {
	// Left to the garbage collector: nothing reachable from n remains
	// once the caller drops its last pointer to it.
}

// PooledAllocator recycles node storage through a pair of sync.Pools,
// one per node kind (leaf and branch nodes have different tail arrays
// and so different underlying struct sizes). It is the Go-native
// analogue of the C allocator injection point: a caller under memory
// pressure can hand the tree a PooledAllocator instead of the default
// one to reuse node slabs across inserts and deletes instead of
// round-tripping through the runtime allocator on every split.
type PooledAllocator[N number, T any] struct {
	leaves   sync.Pool
	branches sync.Pool
}

// NewPooledAllocator returns a ready-to-use pooled allocator.
func NewPooledAllocator[N number, T any]() *PooledAllocator[N, T] {
	a := &PooledAllocator[N, T]{}
	a.leaves.New = func() any { return &leafNode[N, T]{} }
	a.branches.New = func() any { return &branchNode[N, T]{} }
	return a
}

func (a *PooledAllocator[N, T]) NewNode(isLeaf bool) (*node[N, T], bool) {
	if isLeaf {
		n := a.leaves.Get().(*leafNode[N, T])
		n.kind = leaf
		n.count = 0
		n.refcount.Store(1)
		return &n.node, true
	}
	n := a.branches.Get().(*branchNode[N, T])
	n.kind = branch
	n.count = 0
	n.refcount.Store(1)
	return &n.node, true
}

func (a *PooledAllocator[N, T]) Free(n *node[N, T]) {
	if n.isLeaf() {
		ln := leafNodeFrom(n)
		var empty T
		for i := range ln.items {
			ln.items[i] = empty
		}
		a.leaves.Put(ln)
		return
	}
	bn := branchNodeFrom(n)
	for i := range bn.children {
		bn.children[i] = nil
	}
	a.branches.Put(bn)
}
