// Copyright 2021 Joshua J Baker. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package rtree implements an in-memory, height-balanced R-tree mapping
// axis-aligned rectangles to user payloads.
//
// The tree supports insertion, deletion (by identity or by comparator),
// range search, full traversal, and O(1) copy-on-write cloning of an
// entire tree through per-node atomic reference counts. A node is
// duplicated only the moment a mutation needs to change it and it is
// still shared with another tree handle; sibling subtrees stay shared
// across clones indefinitely.
//
// Payload ownership can optionally be tracked through a pair of
// item-callbacks (CloneItemFunc/FreeItemFunc) so that two trees sharing
// a node graph can also safely share reference-counted payloads, even
// across goroutines, as long as distinct Tree handles are each used by
// a single goroutine at a time (see the package-level concurrency note
// on Clone).
package rtree
