// Copyright 2021 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"math/rand"
	"testing"
)

func TestSearchFindsIntersecting(t *testing.T) {
	tr := New[int, string]()
	tr.Insert([2]int{0, 0}, [2]int{10, 10}, "a")
	tr.Insert([2]int{20, 20}, [2]int{30, 30}, "b")
	tr.Insert([2]int{5, 5}, [2]int{15, 15}, "c")

	var found []string
	tr.Search([2]int{0, 0}, [2]int{12, 12}, func(min, max [2]int, data string) bool {
		found = append(found, data)
		return true
	})
	want := map[string]bool{"a": true, "c": true}
	if len(found) != len(want) {
		t.Fatalf("Search found %v, want exactly %v", found, want)
	}
	for _, f := range found {
		if !want[f] {
			t.Fatalf("Search found unexpected item %q", f)
		}
	}
}

func TestSearchEarlyExit(t *testing.T) {
	tr := New[int, int]()
	for i := 0; i < 100; i++ {
		tr.Insert([2]int{i, i}, [2]int{i + 1, i + 1}, i)
	}
	visited := 0
	tr.Search([2]int{0, 0}, [2]int{100, 100}, func(min, max [2]int, data int) bool {
		visited++
		return visited < 5
	})
	if visited != 5 {
		t.Fatalf("Search visited %d items after early exit, want 5", visited)
	}
}

func TestSearchOutsideBoundsFindsNothing(t *testing.T) {
	tr := New[int, string]()
	tr.Insert([2]int{0, 0}, [2]int{1, 1}, "a")
	called := false
	tr.Search([2]int{100, 100}, [2]int{200, 200}, func(min, max [2]int, data string) bool {
		called = true
		return true
	})
	if called {
		t.Fatal("Search invoked iter for a region with no entries")
	}
}

func TestScanVisitsEveryEntryExactlyOnce(t *testing.T) {
	tr := New[float64, int]()
	r := rand.New(rand.NewSource(9))
	const n = 3000
	for i := 0; i < n; i++ {
		min, max := fillRandRect(r)
		tr.Insert(min, max, i)
	}
	counts := make(map[int]int, n)
	tr.Scan(func(min, max [2]float64, data int) bool {
		counts[data]++
		return true
	})
	if len(counts) != n {
		t.Fatalf("Scan visited %d distinct items, want %d", len(counts), n)
	}
	for v, c := range counts {
		if c != 1 {
			t.Fatalf("item %d visited %d times, want 1", v, c)
		}
	}
}

func TestScanOnEmptyTree(t *testing.T) {
	tr := New[int, string]()
	called := false
	tr.Scan(func(min, max [2]int, data string) bool {
		called = true
		return true
	})
	if called {
		t.Fatal("Scan invoked iter on an empty tree")
	}
}
