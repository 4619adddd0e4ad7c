// Copyright 2021 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// Insert adds (min, max, item) to the tree. It returns ErrOOM if the
// configured Allocator or CloneItemFunc refuses an allocation anywhere
// along the write path; the tree is left exactly as it was before the
// call.
func (tr *Tree[N, T]) Insert(min, max [numDims]N, item T) error {
	ir := Rect[N]{Min: min, Max: max}
	if tr.root == nil {
		root, ok := tr.alloc.NewNode(true)
		if !ok {
			return ErrOOM
		}
		root.rects[0] = ir
		root.items()[0] = item
		root.count = 1
		tr.root = root
		tr.rootRect = ir
		tr.height = 1
		tr.count++
		return nil
	}

	// Preflight: if the root could reach capacity from this single
	// insert, secure both the sibling it would split into and the new
	// root branch up front, so a later allocation failure can never
	// leave a half-finished split committed.
	var sibling, newRoot *node[N, T]
	if tr.root.count == maxEntries-1 {
		var ok bool
		sibling, ok = tr.alloc.NewNode(tr.root.isLeaf())
		if !ok {
			return ErrOOM
		}
		newRoot, ok = tr.alloc.NewNode(false)
		if !ok {
			tr.alloc.Free(sibling)
			return ErrOOM
		}
	}

	newRootSubtree, grown, err := tr.nodeInsert(tr.root, tr.rootRect, ir, item)
	if err != nil {
		if sibling != nil {
			tr.alloc.Free(sibling)
		}
		if newRoot != nil {
			tr.alloc.Free(newRoot)
		}
		return err
	}
	if newRootSubtree != tr.root {
		tr.releaseNode(tr.root)
	}
	tr.root = newRootSubtree
	if grown {
		tr.rootRect.expand(&ir)
	}
	if tr.root.count == maxEntries {
		right := sibling
		tr.metrics.splits.Add(1)
		tr.splitLargestAxisEdgeSnap(tr.rootRect, tr.root, right)
		left := tr.root
		newRoot.rects[0] = left.rect()
		newRoot.rects[1] = right.rect()
		newRoot.children()[0] = left
		newRoot.children()[1] = right
		newRoot.count = 2
		tr.root = newRoot
		tr.height++
	} else if sibling != nil {
		tr.alloc.Free(sibling)
		tr.alloc.Free(newRoot)
	}
	tr.count++
	return nil
}

// nodeInsert inserts (ir, item) into the subtree rooted at n, whose
// bounding rectangle is currently believed (by n's parent) to be
// nodeRect. It returns the node that now represents that subtree (n
// itself if n was mutated in place, or a freshly detached/ split
// replacement), whether nodeRect would need to grow to cover ir, and
// any error. On error the returned node is always n, completely
// unmodified, and nothing it owns has changed.
func (tr *Tree[N, T]) nodeInsert(n *node[N, T], nodeRect, ir Rect[N], item T) (result *node[N, T], grown bool, err error) {
	cp, err := tr.detach(n)
	if err != nil {
		return n, false, err
	}
	if cp.isLeaf() {
		idx := int(cp.count)
		cp.rects[idx] = ir
		cp.items()[idx] = item
		cp.count++
		return cp, !nodeRect.Contains(ir), nil
	}

	index := tr.chooseSubtree(cp, ir)
	children := cp.children()
	child := children[index]

	// Preflight the child's split resources before recursing, for the
	// same reason as the root-level preflight in Insert.
	var sibling *node[N, T]
	if child.count == maxEntries-1 {
		var ok bool
		sibling, ok = tr.alloc.NewNode(child.isLeaf())
		if !ok {
			tr.abandonBranchCopy(cp, n)
			return n, false, ErrOOM
		}
	}

	newChild, childGrown, err := tr.nodeInsert(child, cp.rects[index], ir, item)
	if err != nil {
		if sibling != nil {
			tr.alloc.Free(sibling)
		}
		tr.abandonBranchCopy(cp, n)
		return n, false, err
	}
	if newChild != child {
		tr.releaseNode(child)
	}
	children[index] = newChild
	if childGrown {
		cp.rects[index].expand(&ir)
	}
	if newChild.count == maxEntries {
		right := sibling
		tr.metrics.splits.Add(1)
		tr.splitLargestAxisEdgeSnap(cp.rects[index], newChild, right)
		cp.rects[index] = newChild.rect()
		copy(cp.rects[index+2:int(cp.count)+1], cp.rects[index+1:cp.count])
		copy(children[index+2:int(cp.count)+1], children[index+1:cp.count])
		cp.rects[index+1] = right.rect()
		children[index+1] = right
		cp.count++
	} else if sibling != nil {
		tr.alloc.Free(sibling)
	}
	return cp, !nodeRect.Contains(ir), nil
}

func (tr *Tree[N, T]) chooseSubtree(n *node[N, T], ir Rect[N]) int {
	rects := n.rects[:n.count]
	best := -1
	var bestArea N
	for i := range rects {
		if rects[i].Contains(ir) {
			area := rects[i].Area()
			if best == -1 || area < bestArea {
				best, bestArea = i, area
			}
		}
	}
	if best != -1 {
		return best
	}
	return tr.chooseLeastEnlargement(n, ir)
}

// chooseLeastEnlargement picks the child entry that needs the smallest
// area increase to cover ir, breaking ties by smaller resulting area
// and then by lower index.
func (tr *Tree[N, T]) chooseLeastEnlargement(n *node[N, T], ir Rect[N]) int {
	rects := n.rects[:n.count]
	best := -1
	var bestEnl, bestArea N
	for i := range rects {
		area := rects[i].Area()
		enl := rects[i].UnionedArea(ir) - area
		if best == -1 || enl < bestEnl || (!(enl > bestEnl) && area < bestArea) {
			best, bestEnl, bestArea = i, enl, area
		}
	}
	return best
}

// Set inserts (min, max, item), first removing any existing entry with
// the same rectangle and an equal payload (compared as in Delete). An
// entry with the same rectangle and a different payload is kept. It
// reports whether a
// prior entry was replaced. This is the caller-side "set" policy spec
// §9 leaves open: always insert, report prior removal via the boolean.
func (tr *Tree[N, T]) Set(min, max [numDims]N, item T) (replaced bool, err error) {
	removed, err := tr.delete(min, max, item, nil)
	if err != nil {
		return false, err
	}
	if err := tr.Insert(min, max, item); err != nil {
		return false, err
	}
	return removed, nil
}
