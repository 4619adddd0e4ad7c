// Copyright 2021 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// CloneItemFunc produces a duplicate, or a new shared reference, of src
// for storage alongside it in a freshly detached node. Returning false
// aborts the enclosing Tree operation with OOM semantics (ErrOOM);
// udata is whatever value was last passed to Tree.SetUserData.
type CloneItemFunc[T any] func(src T, udata any) (dup T, ok bool)

// FreeItemFunc releases one logical reference to item. It must not
// fail: a tree with item callbacks configured calls it exactly once for
// every CloneItemFunc call that ever produced a reference to item, plus
// once for item's original insertion, over the lifetime of the node
// graph (spec §8 P7).
type FreeItemFunc[T any] func(item T, udata any)

// CompareFunc replaces payload-identity comparison in
// Tree.DeleteWithComparator. It must be pure and deterministic: it is
// only ever used to locate an existing entry, never to order entries
// within a node.
type CompareFunc[T any] func(a, b T, udata any) int

// IterFunc is the callback driven by Search and Scan. Returning false
// ends traversal early; the callback must not mutate the tree it was
// handed.
type IterFunc[N number, T any] func(min, max [numDims]N, data T) bool
