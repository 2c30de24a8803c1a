package cube

import "log"

// Debug gates the diagnostic logging that Get, Update and UpdateRegion fall
// back to for programmer errors (out-of-range coordinates): these never
// panic and stay silent in a normal build, but with Debug set they're
// reported via the standard logger so a caller can catch a mistake while
// developing against the tree.
var Debug = false

func debugf(format string, args ...any) {
	if Debug {
		log.Printf(format, args...)
	}
}

// Get reads the cell value at coord, descending the tree with a fast
// bit-test at each branch (spec.md §4.3.1). A uniform leaf reached before
// the target depth represents an arbitrarily deep homogeneous region and its
// value is returned immediately. An out-of-range coord returns the zero
// value of T without panicking.
func Get[T comparable](n *Node[T], coord CubeCoord) T {
	var zero T
	if !coord.InRange() {
		debugf("cube.Get: coord %+v out of range", coord)
		return zero
	}
	for d := uint8(0); d < coord.Depth; d++ {
		v, ok := n.UniformValue()
		if ok {
			return v
		}
		n = n.children[coord.octantAt(d)]
	}
	v, _ := n.UniformValue()
	return v
}

// Update returns a new tree with the cell at coord set to value, cloning
// only the nodes on the path from root to target; siblings are shared with
// n. If the path runs deeper than n currently subdivides, uniform leaves
// along the way are subdivided on demand (eight equal children, before
// simplification). On the way back up, a rebuilt branch whose eight
// children are all the same uniform value collapses back to that uniform
// (spec.md §4.3.2). An out-of-range coord returns n unchanged.
func Update[T comparable](n *Node[T], coord CubeCoord, value T) *Node[T] {
	if !coord.InRange() {
		debugf("cube.Update: coord %+v out of range", coord)
		return n
	}
	return updateRec(n, coord, 0, value)
}

func updateRec[T comparable](n *Node[T], coord CubeCoord, d uint8, value T) *Node[T] {
	if d == coord.Depth {
		return Uniform(value)
	}

	octant := coord.octantAt(d)

	if v, ok := n.UniformValue(); ok {
		var children [8]*Node[T]
		for i := range children {
			children[i] = Uniform(v)
		}
		children[octant] = updateRec(children[octant], coord, d+1, value)
		return simplify(Branch(children))
	}

	c := n.clone()
	c.children[octant] = updateRec(c.children[octant], coord, d+1, value)
	return simplify(c)
}

// UpdateRegion returns a new tree with the subtree at corner replaced by a
// copy of source (spec.md §4.3.3). Because a uniform node already stands for
// an arbitrarily large homogeneous cube, placing source at a coarser depth
// than it was built for — the "stamp a small prefab into a big world, scaled
// up" case — needs no special casing here: corner's own depth is where
// source's root lands, and every uniform leaf inside source simply covers
// more absolute volume at that position. Scale-from-native-resolution
// bookkeeping belongs to the caller (see CubeBox.PlaceIn); this is the
// primitive it's built from. An out-of-range corner returns target
// unchanged.
func UpdateRegion[T comparable](target *Node[T], corner CubeCoord, source *Node[T]) *Node[T] {
	if !corner.InRange() {
		debugf("cube.UpdateRegion: corner %+v out of range", corner)
		return target
	}
	return updateRegionRec(target, corner, 0, source)
}

func updateRegionRec[T comparable](target *Node[T], corner CubeCoord, d uint8, source *Node[T]) *Node[T] {
	if d == corner.Depth {
		return cloneSubtree(source)
	}

	octant := corner.octantAt(d)

	if v, ok := target.UniformValue(); ok {
		var children [8]*Node[T]
		for i := range children {
			children[i] = Uniform(v)
		}
		children[octant] = updateRegionRec(children[octant], corner, d+1, source)
		return simplify(Branch(children))
	}

	c := target.clone()
	c.children[octant] = updateRegionRec(c.children[octant], corner, d+1, source)
	return simplify(c)
}

// cloneSubtree deep-copies source: values pass through Cloner[T] when T
// implements it, so stamping the same source at several corners never
// aliases a mutable payload into more than one place in the result.
func cloneSubtree[T comparable](source *Node[T]) *Node[T] {
	if v, ok := source.UniformValue(); ok {
		return Uniform(cloneValue(v))
	}
	var children [8]*Node[T]
	for i := range children {
		children[i] = cloneSubtree(source.children[i])
	}
	return Branch(children)
}

// VisitRegion calls visit once for every cell inside region, in depth-first,
// octant order within each branch — the iteration order is part of the
// contract (spec.md §4.3.4) because downstream mesh and physics code depends
// on it being reproducible. A uniform leaf shallower than region's depth
// expands into one call per cell it covers.
func VisitRegion[T comparable](n *Node[T], region Region, visit func(pos [3]uint64, value T)) {
	d := region.Corner.Depth
	width := uint64(1) << d
	nodeMin := [3]uint64{0, 0, 0}
	nodeMax := [3]uint64{width, width, width}

	regionMin := region.Corner.Pos
	regionMax := [3]uint64{
		regionMin[0] + region.Size[0],
		regionMin[1] + region.Size[1],
		regionMin[2] + region.Size[2],
	}

	visitRegionRec(n, nodeMin, nodeMax, regionMin, regionMax, visit)
}

// visitRegionRec walks n, whose full cube spans [nodeMin,nodeMax), visiting
// only the part of it that overlaps [regionMin,regionMax).
func visitRegionRec[T comparable](n *Node[T], nodeMin, nodeMax, regionMin, regionMax [3]uint64, visit func([3]uint64, T)) {
	if v, ok := n.UniformValue(); ok {
		var pos [3]uint64
		for pos[0] = regionMin[0]; pos[0] < regionMax[0]; pos[0]++ {
			for pos[1] = regionMin[1]; pos[1] < regionMax[1]; pos[1]++ {
				for pos[2] = regionMin[2]; pos[2] < regionMax[2]; pos[2]++ {
					visit(pos, v)
				}
			}
		}
		return
	}

	mid := [3]uint64{
		(nodeMin[0] + nodeMax[0]) / 2,
		(nodeMin[1] + nodeMax[1]) / 2,
		(nodeMin[2] + nodeMax[2]) / 2,
	}

	for octant := 0; octant < 8; octant++ {
		sx, sy, sz := OctantOffset(octant)
		cMin, cMax := octantBounds(nodeMin, nodeMax, mid, sx, sy, sz)
		rMin, rMax, ok := clipBox(cMin, cMax, regionMin, regionMax)
		if !ok {
			continue
		}
		visitRegionRec(n.children[octant], cMin, cMax, rMin, rMax, visit)
	}
}

// octantBounds splits [nodeMin,nodeMax) at mid into the half named by the
// per-axis signs (as returned by OctantOffset).
func octantBounds(nodeMin, nodeMax, mid [3]uint64, sx, sy, sz int) (cMin, cMax [3]uint64) {
	half := func(i int, s int) (uint64, uint64) {
		if s < 0 {
			return nodeMin[i], mid[i]
		}
		return mid[i], nodeMax[i]
	}
	cMin[0], cMax[0] = half(0, sx)
	cMin[1], cMax[1] = half(1, sy)
	cMin[2], cMax[2] = half(2, sz)
	return cMin, cMax
}

// clipBox intersects [a0,a1) with [b0,b1) per axis; ok is false if the
// intersection is empty on any axis.
func clipBox(a0, a1, b0, b1 [3]uint64) (r0, r1 [3]uint64, ok bool) {
	for i := 0; i < 3; i++ {
		lo := max64(a0[i], b0[i])
		hi := min64(a1[i], b1[i])
		if lo >= hi {
			return r0, r1, false
		}
		r0[i], r1[i] = lo, hi
	}
	return r0, r1, true
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// MapNode transforms every cell value through f, preserving structure;
// simplification applies so that, e.g., mapping two distinct materials onto
// the same occupancy boolean re-collapses the branch. A free function, not a
// method, because it introduces the additional type parameter U (spec.md
// §4.3.5).
func MapNode[T, U comparable](n *Node[T], f func(T) U) *Node[U] {
	if v, ok := n.UniformValue(); ok {
		return Uniform(f(v))
	}
	var children [8]*Node[U]
	for i := range children {
		children[i] = MapNode(n.children[i], f)
	}
	return simplify(Branch(children))
}
