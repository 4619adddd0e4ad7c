// Copyright 2021 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "sync/atomic"

// Stats is a snapshot of a Tree's lifetime operation counters. It costs
// nothing when unread: every field is an atomic counter bumped on the
// already-taken write path, not a separate accounting pass.
type Stats struct {
	// Detaches counts every copy-on-write node duplication performed by
	// detach, i.e. every time a write touched a node it didn't solely
	// own.
	Detaches int64
	// Splits counts every node split performed by Insert.
	Splits int64
	// Condenses counts every child unlinked by condense-tree for
	// falling under minEntries during a Delete.
	Condenses int64
}

// metrics holds the atomic counters backing Stats; embedded by value in
// Tree so Clone's shallow copy gives each handle its own counters.
type metrics struct {
	detaches  atomic.Int64
	splits    atomic.Int64
	condenses atomic.Int64
}

// Stats returns a snapshot of tr's lifetime operation counters.
func (tr *Tree[N, T]) Stats() Stats {
	return Stats{
		Detaches:  tr.metrics.detaches.Load(),
		Splits:    tr.metrics.splits.Load(),
		Condenses: tr.metrics.condenses.Load(),
	}
}
