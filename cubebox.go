package cube

// CubeBox pairs a tree with the dimensions of the model it holds: Node
// itself carries no notion of size, so a model whose voxel dimensions
// aren't a power of two — the common case for anything loaded from an
// external asset — would otherwise lose its true bounds once embedded in a
// power-of-two octree. CubeBox keeps Size alongside Root so placement,
// physics and rendering code can still ask "how big is this, really."
// Grounded on the original cube crate's CubeBox<T>.
type CubeBox[T comparable] struct {
	Root  *Node[T]
	Size  [3]uint64
	Depth uint8
}

// NewCubeBox wraps root, whose model occupies size voxels, built at the
// given depth (the octree itself spans 2^depth voxels per axis, possibly
// more than size — the excess is the caller's padding, conventionally left
// at the zero value). Panics if any dimension of size exceeds the octree's
// own capacity at depth, the same assertion the original constructor makes
// before the box is ever used.
func NewCubeBox[T comparable](root *Node[T], size [3]uint64, depth uint8) CubeBox[T] {
	if depth > MaxDepth {
		panic("cube: CubeBox depth exceeds MaxDepth")
	}
	b := CubeBox[T]{Root: root, Size: size, Depth: depth}
	if !b.FitsOctree() {
		panic("cube: CubeBox size exceeds octree capacity")
	}
	return b
}

// OctreeSize returns the number of cells along one edge of the containing
// power-of-two cube: 2^Depth.
func (b CubeBox[T]) OctreeSize() uint64 {
	return uint64(1) << b.Depth
}

// MinDepthForSize returns the smallest depth whose octree edge length is at
// least the largest dimension of size (a size with every dimension 0 or 1
// needs depth 0).
func MinDepthForSize(size [3]uint64) uint8 {
	maxDim := size[0]
	if size[1] > maxDim {
		maxDim = size[1]
	}
	if size[2] > maxDim {
		maxDim = size[2]
	}
	var d uint8
	for (uint64(1) << d) < maxDim {
		d++
	}
	return d
}

// FitsOctree reports whether every dimension of b.Size fits within b's own
// OctreeSize.
func (b CubeBox[T]) FitsOctree() bool {
	s := b.OctreeSize()
	return b.Size[0] <= s && b.Size[1] <= s && b.Size[2] <= s
}

// Bounds returns the model's bounds as (min, max) voxel coordinates; min is
// always the origin, max is Size.
func (b CubeBox[T]) Bounds() (min, max [3]uint64) {
	return [3]uint64{0, 0, 0}, b.Size
}

// PlaceIn stamps b's tree into target, anchored at position (given in
// targetDepth's coordinate units). scale is how many extra target levels
// each of b's native cells should span beyond 1:1 — 0 places b at its
// native resolution, negative values are clamped to 0. b.Root already
// carries b.Depth levels of its own structure, so splicing it in at
// targetDepth itself would duplicate that structure one level too deep;
// the placement depth is targetDepth less both b.Depth and scale, so
// b.Root's own root always lands exactly b.Depth+scale levels above the
// positions position addresses. Panics if the resulting placement depth
// would be negative — b, scaled, would be bigger than target's own
// addressable cube at targetDepth — a caller error the same as an
// oversized model at construction time.
func (b CubeBox[T]) PlaceIn(target *Node[T], targetDepth uint8, position [3]uint64, scale int) *Node[T] {
	if scale < 0 {
		debugf("cube.CubeBox.PlaceIn: negative scale %d clamped to 0", scale)
		scale = 0
	}

	finalScale := int(b.Depth) + scale
	if finalScale > int(targetDepth) {
		panic("cube: CubeBox.PlaceIn: scaled model is larger than target")
	}
	placementDepth := targetDepth - uint8(finalScale)

	corner := CubeCoord{
		Pos:   [3]uint64{position[0] >> uint(finalScale), position[1] >> uint(finalScale), position[2] >> uint(finalScale)},
		Depth: placementDepth,
	}
	if !corner.InRange() {
		panic("cube: CubeBox.PlaceIn: position out of range at target depth")
	}
	return UpdateRegion(target, corner, b.Root)
}
