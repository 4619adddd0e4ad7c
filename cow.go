// Copyright 2021 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// detach returns a node safe to mutate in place: n itself when n is the
// sole owner (refcount == 1), or a freshly allocated duplicate when n is
// shared. Duplicating a branch retains (bumps the refcount of) every
// child it points to, since the duplicate is a second, distinct parent
// edge to each of them. Duplicating a leaf invokes the tree's
// CloneItemFunc, if one is configured, once per payload, since the
// duplicate leaf now holds its own logical reference to each payload.
//
// On failure, anything detach allocated is released before it returns;
// n and everything reachable from it are left completely untouched.
func (tr *Tree[N, T]) detach(n *node[N, T]) (*node[N, T], error) {
	if n.refcount.Load() == 1 {
		return n, nil
	}
	cp, ok := tr.alloc.NewNode(n.isLeaf())
	if !ok {
		return nil, ErrOOM
	}
	tr.metrics.detaches.Add(1)
	cp.count = n.count
	cp.rects = n.rects
	if n.isLeaf() {
		srcItems := n.items()
		dstItems := cp.items()
		if tr.cloneItem != nil {
			for i := 0; i < int(n.count); i++ {
				dup, ok := tr.cloneItem(srcItems[i], tr.udata)
				if !ok {
					for j := 0; j < i && tr.freeItem != nil; j++ {
						tr.freeItem(dstItems[j], tr.udata)
					}
					tr.alloc.Free(cp)
					return nil, ErrOOM
				}
				dstItems[i] = dup
			}
		} else {
			copy(dstItems[:n.count], srcItems[:n.count])
		}
	} else {
		srcChildren := n.children()
		dstChildren := cp.children()
		for i := 0; i < int(n.count); i++ {
			srcChildren[i].refcount.Add(1)
			dstChildren[i] = srcChildren[i]
		}
	}
	return cp, nil
}

// abandonBranchCopy discards a branch node detach produced but will
// never be linked into the tree: it releases the extra child refcounts
// detach retained and frees the node's own storage. It is a no-op when
// cp is n itself, since then detach never allocated anything.
func (tr *Tree[N, T]) abandonBranchCopy(cp, n *node[N, T]) {
	if cp == n {
		return
	}
	children := cp.children()
	for i := 0; i < int(cp.count); i++ {
		tr.releaseNode(children[i])
	}
	tr.alloc.Free(cp)
}

// retainNode records one more parent-side pointer to n.
func (tr *Tree[N, T]) retainNode(n *node[N, T]) {
	n.refcount.Add(1)
}

// releaseNode drops one parent-side pointer to n. When the last one is
// dropped, it recursively releases n's children (for a branch) or runs
// FreeItemFunc over n's payloads (for a leaf, if configured), then
// returns n's storage to the allocator.
func (tr *Tree[N, T]) releaseNode(n *node[N, T]) {
	if n == nil {
		return
	}
	if n.refcount.Add(-1) > 0 {
		return
	}
	if n.isLeaf() {
		if tr.freeItem != nil {
			items := n.items()
			for i := 0; i < int(n.count); i++ {
				tr.freeItem(items[i], tr.udata)
			}
		}
	} else {
		children := n.children()
		for i := 0; i < int(n.count); i++ {
			tr.releaseNode(children[i])
		}
	}
	tr.alloc.Free(n)
}

// Clone returns a new, independent Tree sharing the same node graph as
// tr. The operation is O(1): it bumps the shared root's refcount and
// copies tr's scalar fields and configuration. Subsequent mutations of
// either handle detach nodes along their own write path lazily, so
// unrelated subtrees stay shared indefinitely. An empty tree clones
// trivially.
//
// tr and the returned tree may safely be driven from different
// goroutines concurrently, since node refcounts are atomic; neither may
// itself be mutated from more than one goroutine at a time.
func (tr *Tree[N, T]) Clone() *Tree[N, T] {
	tr2 := &Tree[N, T]{
		alloc:      tr.alloc,
		cloneItem:  tr.cloneItem,
		freeItem:   tr.freeItem,
		udata:      tr.udata,
		root:       tr.root,
		rootRect:   tr.rootRect,
		height:     tr.height,
		count:      tr.count,
		fanoutHint: tr.fanoutHint,
	}
	if tr.root != nil {
		tr.retainNode(tr.root)
	}
	return tr2
}

// Close releases every reference tr holds on the shared node graph,
// invoking FreeItemFunc (if configured) on any payload whose last
// reference this was. After Close, tr must not be used again. Close on
// an already-empty tree is a no-op.
func (tr *Tree[N, T]) Close() {
	if tr.root != nil {
		tr.releaseNode(tr.root)
		tr.root = nil
	}
	tr.height = 0
	tr.count = 0
	tr.rootRect = Rect[N]{}
}
