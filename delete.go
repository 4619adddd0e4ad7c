// Copyright 2021 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "reflect"

// reinsertEntry is one item gathered out of a subtree that condense-tree
// dropped from its parent for falling under minEntries. It is
// reinserted from the root once the delete that triggered it finishes.
type reinsertEntry[N number, T any] struct {
	rect Rect[N]
	item T
}

// Delete removes a single entry matching (min, max, item), compared by
// reflect.DeepEqual on the payload. It reports whether an entry was
// found and removed. ErrOOM is possible even on a pure removal, since a
// shared subtree along the search path must still be detached before it
// can be mutated.
func (tr *Tree[N, T]) Delete(min, max [numDims]N, item T) (removed bool, err error) {
	return tr.delete(min, max, item, nil)
}

// DeleteWithComparator removes a single entry matching (min, max) whose
// payload cmp reports equal (zero) to item, instead of using
// reflect.DeepEqual.
func (tr *Tree[N, T]) DeleteWithComparator(min, max [numDims]N, item T, cmp CompareFunc[T]) (removed bool, err error) {
	return tr.delete(min, max, item, cmp)
}

func (tr *Tree[N, T]) delete(min, max [numDims]N, item T, cmp CompareFunc[T]) (removed bool, err error) {
	if tr.root == nil {
		return false, nil
	}
	ir := Rect[N]{Min: min, Max: max}
	var reinsert []reinsertEntry[N, T]
	newRoot, removed, err := tr.nodeDelete(tr.root, ir, item, cmp, &reinsert)
	if err != nil {
		return false, err
	}
	if !removed {
		return false, nil
	}
	if newRoot != tr.root {
		tr.releaseNode(tr.root)
	}
	tr.root = newRoot
	// The matched entry plus every item condense-tree harvested into
	// reinsert are all structurally gone from the tree right now; each
	// reinsert below runs back through Insert and re-adds its own count.
	tr.count -= 1 + len(reinsert)

	for tr.root != nil && !tr.root.isLeaf() && tr.root.count == 1 {
		child := tr.root.children()[0]
		tr.retainNode(child)
		tr.releaseNode(tr.root)
		tr.root = child
		tr.height--
	}
	if tr.count == 0 {
		if tr.root != nil {
			tr.releaseNode(tr.root)
			tr.root = nil
		}
		tr.height = 0
		tr.rootRect = Rect[N]{}
	} else {
		tr.rootRect = tr.root.rect()
	}

	// Reinsert items orphaned by condense-tree from the root down, as
	// flat leaf items rather than whole subtrees reinserted at their
	// original height: simpler, at the cost of some tree balance after
	// heavy delete workloads. A reinsert failing with ErrOOM here is the
	// one place the all-or-nothing guarantee doesn't fully extend: the
	// removal itself has already committed, so the orphaned item is
	// dropped rather than left to corrupt tree state, and its reference
	// is released through FreeItemFunc when one is configured.
	for _, re := range reinsert {
		if err := tr.Insert(re.rect.Min, re.rect.Max, re.item); err != nil && tr.freeItem != nil {
			tr.freeItem(re.item, tr.udata)
		}
	}
	return true, nil
}

// nodeDelete searches the subtree rooted at n for a single entry
// matching (ir, item), removing it if found. It returns the node that
// now represents the subtree, whether an entry was removed, and any
// error. On "not found" or error it always returns n itself, untouched.
// When removing an entry leaves a child under minEntries, that child is
// unlinked entirely and every item beneath it is appended to *reinsert.
func (tr *Tree[N, T]) nodeDelete(n *node[N, T], ir Rect[N], item T, cmp CompareFunc[T], reinsert *[]reinsertEntry[N, T]) (result *node[N, T], removed bool, err error) {
	if n.isLeaf() {
		items := n.items()
		idx := -1
		for i := 0; i < int(n.count); i++ {
			if !n.rects[i].Equal(ir) {
				continue
			}
			if cmp != nil {
				if cmp(items[i], item, tr.udata) != 0 {
					continue
				}
			} else if !reflect.DeepEqual(items[i], item) {
				continue
			}
			idx = i
			break
		}
		if idx == -1 {
			return n, false, nil
		}
		cp, err := tr.detach(n)
		if err != nil {
			return n, false, err
		}
		cpItems := cp.items()
		if tr.freeItem != nil {
			tr.freeItem(cpItems[idx], tr.udata)
		}
		last := int(cp.count) - 1
		cp.rects[idx] = cp.rects[last]
		cpItems[idx] = cpItems[last]
		var empty T
		cpItems[last] = empty
		cp.count--
		return cp, true, nil
	}

	// Detach before descending: a copy of a shared n retains every child,
	// so a child reachable only through n is then detached in turn
	// rather than changed in place under the other owner.
	cp, err := tr.detach(n)
	if err != nil {
		return n, false, err
	}
	children := cp.children()
	for i := 0; i < int(cp.count); i++ {
		if !cp.rects[i].Intersects(ir) {
			continue
		}
		child := children[i]
		newChild, removed, err := tr.nodeDelete(child, ir, item, cmp, reinsert)
		if err != nil {
			tr.abandonBranchCopy(cp, n)
			return n, false, err
		}
		if !removed {
			continue
		}
		if newChild != child {
			tr.releaseNode(child)
		}

		if int(newChild.count) < minEntries {
			tr.metrics.condenses.Add(1)
			tr.dismantleForReinsert(newChild, false, reinsert)
			last := int(cp.count) - 1
			children[i] = children[last]
			cp.rects[i] = cp.rects[last]
			children[last] = nil
			cp.count--
		} else {
			children[i] = newChild
			cp.rects[i] = newChild.rect()
		}
		return cp, true, nil
	}
	tr.abandonBranchCopy(cp, n)
	return n, false, nil
}

// dismantleForReinsert tears down a subtree that condense-tree has
// unlinked from its parent, appending every item it holds to *out so
// the caller can reinsert them. A node still referenced elsewhere
// (refcount > 1) is only released, not destroyed — but its items are
// still harvested, cloned via CloneItemFunc when configured, since this
// tree's logical claim on them is moving to a new leaf slot regardless
// of whether the old node survives for some other owner. Nothing below
// such a shared node is released (underShared): its descendants stay
// linked from it, and their items are harvested as clones as well.
func (tr *Tree[N, T]) dismantleForReinsert(n *node[N, T], underShared bool, out *[]reinsertEntry[N, T]) {
	shared := underShared || n.refcount.Load() > 1
	if n.isLeaf() {
		items := n.items()
		for i := 0; i < int(n.count); i++ {
			item := items[i]
			if shared && tr.cloneItem != nil {
				dup, ok := tr.cloneItem(item, tr.udata)
				if !ok {
					// Can't mint an independent reference for an item
					// another tree still holds: drop it rather than
					// alias the same payload into two live entries.
					continue
				}
				item = dup
			}
			*out = append(*out, reinsertEntry[N, T]{rect: n.rects[i], item: item})
		}
		if !underShared && n.refcount.Add(-1) == 0 {
			tr.alloc.Free(n)
		}
		return
	}
	children := n.children()
	for i := 0; i < int(n.count); i++ {
		tr.dismantleForReinsert(children[i], shared, out)
	}
	if !underShared && n.refcount.Add(-1) == 0 {
		tr.alloc.Free(n)
	}
}
