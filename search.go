// Copyright 2021 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// Search visits every entry whose rectangle intersects [min, max], in
// pre-order, stopping early the first time iter returns false. Search
// never mutates the tree and is safe to call from any goroutine also
// only reading it (or any goroutine reading a different Tree handle
// produced by Clone).
func (tr *Tree[N, T]) Search(min, max [numDims]N, iter IterFunc[N, T]) {
	if tr.root == nil {
		return
	}
	ir := Rect[N]{Min: min, Max: max}
	if !tr.rootRect.Intersects(ir) {
		return
	}
	searchNode(tr.root, ir, iter)
}

func searchNode[N number, T any](n *node[N, T], ir Rect[N], iter IterFunc[N, T]) bool {
	if n.isLeaf() {
		items := n.items()
		for i := 0; i < int(n.count); i++ {
			if n.rects[i].Intersects(ir) {
				if !iter(n.rects[i].Min, n.rects[i].Max, items[i]) {
					return false
				}
			}
		}
		return true
	}
	children := n.children()
	for i := 0; i < int(n.count); i++ {
		if n.rects[i].Intersects(ir) {
			if !searchNode(children[i], ir, iter) {
				return false
			}
		}
	}
	return true
}

// Scan visits every entry in the tree, in pre-order, stopping early the
// first time iter returns false.
func (tr *Tree[N, T]) Scan(iter IterFunc[N, T]) {
	if tr.root == nil {
		return
	}
	scanNode(tr.root, iter)
}

func scanNode[N number, T any](n *node[N, T], iter IterFunc[N, T]) bool {
	if n.isLeaf() {
		items := n.items()
		for i := 0; i < int(n.count); i++ {
			if !iter(n.rects[i].Min, n.rects[i].Max, items[i]) {
				return false
			}
		}
		return true
	}
	children := n.children()
	for i := 0; i < int(n.count); i++ {
		if !scanNode(children[i], iter) {
			return false
		}
	}
	return true
}
