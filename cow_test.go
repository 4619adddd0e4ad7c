// Copyright 2021 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"math/rand"
	"sync"
	"testing"
)

func TestCloneIsIndependent(t *testing.T) {
	tr := New[int, string]()
	tr.Insert([2]int{0, 0}, [2]int{1, 1}, "a")
	tr2 := tr.Clone()

	if err := tr2.Insert([2]int{5, 5}, [2]int{6, 6}, "b"); err != nil {
		t.Fatalf("Insert on clone: %v", err)
	}
	if tr.Count() != 1 {
		t.Fatalf("original tree Count() = %d, want 1 (clone mutation leaked)", tr.Count())
	}
	if tr2.Count() != 2 {
		t.Fatalf("clone Count() = %d, want 2", tr2.Count())
	}

	removed, err := tr2.Delete([2]int{0, 0}, [2]int{1, 1}, "a")
	if err != nil || !removed {
		t.Fatalf("Delete on clone: removed=%v err=%v", removed, err)
	}
	if tr.Count() != 1 {
		t.Fatalf("original tree Count() = %d, want 1 (clone delete leaked)", tr.Count())
	}
}

func TestCloneSharesStorageUntilWrite(t *testing.T) {
	tr := New[float64, int]()
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 2000; i++ {
		min, max := fillRandRect(r)
		tr.Insert(min, max, i)
	}
	tr2 := tr.Clone()
	if tr.root != tr2.root {
		t.Fatal("Clone() did not share the root node before any write")
	}
	if got := tr.root.refcount.Load(); got != 2 {
		t.Fatalf("shared root refcount = %d, want 2 immediately after Clone", got)
	}

	if err := tr2.Insert([2]float64{999, 999}, [2]float64{1000, 1000}, -1); err != nil {
		t.Fatalf("Insert on clone: %v", err)
	}
	if stats := tr2.Stats(); stats.Detaches == 0 {
		t.Fatal("expected at least one detach once the clone diverged")
	}
	if tr.Count() == tr2.Count() {
		t.Fatal("clone and original converged in count after a write to the clone")
	}
}

// TestCloneConcurrentDivergence drives the original tree and an
// independent clone from two goroutines at once, mirroring the
// original C library's threaded clone-and-diverge chaos test: each
// side must observe only its own writes once they've diverged.
func TestCloneConcurrentDivergence(t *testing.T) {
	tr := New[float64, int]()
	r := rand.New(rand.NewSource(6))
	const seed = 3000
	for i := 0; i < seed; i++ {
		min, max := fillRandRect(r)
		tr.Insert(min, max, i)
	}
	tr2 := tr.Clone()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r := rand.New(rand.NewSource(7))
		for i := 0; i < 1000; i++ {
			min, max := fillRandRect(r)
			tr.Insert(min, max, seed+i)
		}
	}()
	go func() {
		defer wg.Done()
		r := rand.New(rand.NewSource(8))
		for i := 0; i < 1000; i++ {
			min, max := fillRandRect(r)
			tr2.Insert(min, max, -(seed + i))
		}
	}()
	wg.Wait()

	if tr.Count() != seed+1000 {
		t.Fatalf("original Count() = %d, want %d", tr.Count(), seed+1000)
	}
	if tr2.Count() != seed+1000 {
		t.Fatalf("clone Count() = %d, want %d", tr2.Count(), seed+1000)
	}

	var sawNegative, sawPositiveBeyondSeed bool
	tr.Scan(func(min, max [2]float64, v int) bool {
		if v < 0 {
			sawNegative = true
		}
		return true
	})
	tr2.Scan(func(min, max [2]float64, v int) bool {
		if v >= seed {
			sawPositiveBeyondSeed = true
		}
		return true
	})
	if sawNegative {
		t.Fatal("original tree observed an item only inserted into the clone")
	}
	if sawPositiveBeyondSeed {
		t.Fatal("clone observed an item only inserted into the original")
	}
}

// refItem is a manually reference-counted payload, exercising the
// CloneItemFunc/FreeItemFunc protocol the way a caller storing shared
// handles (not plain values) would.
type refItem struct {
	id   int
	refs *int32
}

func refClone(src refItem, udata any) (refItem, bool) {
	*src.refs++
	return src, true
}

func refFree(item refItem, udata any) {
	*item.refs--
}

func TestItemCallbacksAccountForEveryReference(t *testing.T) {
	tr := New[int, refItem]()
	tr.SetItemCallbacks(refClone, refFree)

	refs := int32(1)
	tr.Insert([2]int{0, 0}, [2]int{1, 1}, refItem{id: 1, refs: &refs})

	tr2 := tr.Clone()
	// Cloning alone is O(1) and must not touch item refcounts.
	if refs != 1 {
		t.Fatalf("refs = %d after Clone, want 1 (no detach has happened yet)", refs)
	}

	// Force tr2's leaf to detach, which clones its one item. The new
	// item being inserted alongside it carries its own fresh reference,
	// exactly like item 1's original one.
	refs++
	tr2.Insert([2]int{5, 5}, [2]int{6, 6}, refItem{id: 2, refs: &refs})
	if refs != 3 {
		t.Fatalf("refs = %d after divergent write, want 3 (item 1's clone plus item 2's own)", refs)
	}

	tr.Close()
	if refs != 2 {
		t.Fatalf("refs = %d after closing original, want 2 (clone's copies remain)", refs)
	}
	tr2.Close()
	if refs != 0 {
		t.Fatalf("refs = %d after closing both trees, want 0", refs)
	}
}
