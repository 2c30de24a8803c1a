// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package cube provides a persistent (copy-on-write) octree: a recursive,
// structurally-shared tree representing a cubic volume of typed cells.
//
// A Node is either a uniform leaf — one value filling its entire cube — or a
// branch of eight children, one per octant. Every mutating operation (Update,
// UpdateRegion, MapNode) returns a new root; the tree passed in is left
// untouched, and whatever subtrees didn't change are shared between the two.
// That sharing is a transparent optimization of Go's garbage collector, never
// an observable effect: two nodes compare Equal iff their recursive
// unfolding produces identical cell values, independent of how much
// structure they happen to share underneath.
//
// Two coordinate systems address cells. CubeCoord is corner-based and
// depth-indexed — the coordinate Get, Update and the bcf subpackage use.
// TraverseCoord is center-based and recursive, used only by the raycast
// engine, which needs a coordinate that stays symmetric around the cube
// center it's currently splitting.
//
// Octants number 0..7: bit 2 is the X sign, bit 1 the Y sign, bit 0 the Z
// sign, with a set bit meaning the positive side. This layout is load
// bearing — it governs child array order here, on-disk byte order in the
// bcf subpackage, and octant visitation order during raycasting.
//
// Raycast finds the first non-empty cell along a ray, where "empty" is
// whatever the caller's predicate says it is; the package itself assigns no
// meaning to any particular cell value.
package cube
