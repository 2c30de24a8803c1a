package cube

import "github.com/golang/geo/r3"

// Axis is an axis-aligned direction: one of the six face normals. The
// variant order and bit layout are normative (spec.md §3.2, §4.1): bit 2 of
// an octant index is the X sign, bit 1 the Y sign, bit 0 the Z sign, with a
// set bit meaning the positive side. Ported from the original source's
// engine/cube/src/axis.rs, same operations, same variant order.
type Axis uint8

const (
	PosX Axis = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// Index returns the component index this axis refers to: 0=X, 1=Y, 2=Z.
func (a Axis) Index() int {
	return int(a) >> 1
}

// Sign returns +1 for PosX/PosY/PosZ, -1 for the negative variants.
func (a Axis) Sign() int {
	return 1 - (int(a)&1)*2
}

// Opposite returns the axis pointing the other way along the same line.
func (a Axis) Opposite() Axis {
	return a ^ 1
}

// Vector returns the unit vector for this axis.
func (a Axis) Vector() r3.Vector {
	v := r3.Vector{}
	switch a.Index() {
	case 0:
		v.X = float64(a.Sign())
	case 1:
		v.Y = float64(a.Sign())
	case 2:
		v.Z = float64(a.Sign())
	}
	return v
}

// AxisFromIndexSign builds an Axis from a component index (0..2) and a sign
// (+1 or -1).
func AxisFromIndexSign(index int, sign int) Axis {
	s := 0
	if sign > 0 {
		s = 1
	}
	return Axis(index*2 + (1 - s))
}

// OctantIndex packs a per-axis sign triple (+1 or -1 on each axis) into an
// octant index 0..7: bit 2 is the X sign, bit 1 the Y sign, bit 0 the Z
// sign, a set bit meaning the positive side. Normative per spec.md §3.2 —
// this layout governs branch child order, BCF byte order and raycast
// visitation tables alike.
func OctantIndex(signX, signY, signZ int) int {
	idx := 0
	if signX > 0 {
		idx |= 4
	}
	if signY > 0 {
		idx |= 2
	}
	if signZ > 0 {
		idx |= 1
	}
	return idx
}

// OctantOffset is the inverse of OctantIndex: given an octant 0..7, returns
// the signed unit offset (each component ±1) for that octant.
func OctantOffset(octant int) (x, y, z int) {
	sign := func(bit int) int {
		if octant&bit != 0 {
			return 1
		}
		return -1
	}
	return sign(4), sign(2), sign(1)
}

// CubeCoord is a corner-based, depth-indexed position: at depth d, pos
// ranges over the integer cube [0, 2^d) per axis, naming the cell of side
// 2^-d whose minimum corner sits at pos·2^-d in unit space. This is the
// coordinate used by Get, Update and BCF (spec.md §3.4).
type CubeCoord struct {
	Pos   [3]uint64
	Depth uint8
}

// Child returns the cube-coord of the child at the given octant: position
// components double and pick up 0 or 1 depending on the octant's sign bits,
// depth increases by one.
func (c CubeCoord) Child(octant int) CubeCoord {
	sx, sy, sz := OctantOffset(octant)
	bit := func(s int) uint64 {
		if s > 0 {
			return 1
		}
		return 0
	}
	return CubeCoord{
		Pos:   [3]uint64{c.Pos[0]*2 + bit(sx), c.Pos[1]*2 + bit(sy), c.Pos[2]*2 + bit(sz)},
		Depth: c.Depth + 1,
	}
}

// InRange reports whether Pos lies inside [0, 2^Depth) on every axis.
func (c CubeCoord) InRange() bool {
	if c.Depth > 63 {
		// 1<<64 overflows uint64; depth 64 covers the whole representable
		// range of a uint64 position, so every value is in range.
		return c.Depth <= MaxDepth
	}
	limit := uint64(1) << c.Depth
	return c.Pos[0] < limit && c.Pos[1] < limit && c.Pos[2] < limit
}

// octantAt returns the octant index of the cell at depth+1 that contains
// this coord's target when descending one level from depth d, i.e. the
// high-order bit of Pos at the remaining depth below d. Used by Get/Update's
// bit-test descent (spec.md §4.3.1).
func (c CubeCoord) octantAt(d uint8) int {
	shift := c.Depth - d - 1
	bit := func(p uint64) int {
		return int((p >> shift) & 1)
	}
	x, y, z := bit(c.Pos[0]), bit(c.Pos[1]), bit(c.Pos[2])
	return OctantIndex(2*x-1, 2*y-1, 2*z-1)
}

// ToTraverseCoord converts a corner-based cube-coord into the center-based
// recursive coordinate used by the raycast engine: both name the same cell,
// but recursive coordinates are centered on the root at (0,0,0), depth 0,
// with children offset by ±1 per level.
func (c CubeCoord) ToTraverseCoord() TraverseCoord {
	t := TraverseCoord{Depth: 0}
	for d := uint8(0); d < c.Depth; d++ {
		t = t.Child(c.octantAt(d))
	}
	return t
}

// TraverseCoord is a center-based, recursive position: the root is at
// (0,0,0) at depth 0; a child at octant i of a node at (p, d) is at
// (2p + offset(i), d+1). The root spans [-1,+1]³ in world space. This is
// the coordinate used only during raycast traversal (spec.md §3.4).
type TraverseCoord struct {
	Pos   [3]int64
	Depth uint32
}

// Child returns the traverse-coord of the child at the given octant.
func (t TraverseCoord) Child(octant int) TraverseCoord {
	sx, sy, sz := OctantOffset(octant)
	return TraverseCoord{
		Pos:   [3]int64{t.Pos[0]*2 + int64(sx), t.Pos[1]*2 + int64(sy), t.Pos[2]*2 + int64(sz)},
		Depth: t.Depth + 1,
	}
}

// ToCubeCoord converts a center-based traverse-coord back into the
// corner-based cube-coord naming the same cell: each axis value shifts from
// a signed, 2-stepped range centered on 0 to an unsigned range starting at 0.
func (t TraverseCoord) ToCubeCoord() CubeCoord {
	half := int64(1) << t.Depth
	conv := func(p int64) uint64 {
		return uint64((p + half) / 2)
	}
	return CubeCoord{
		Pos:   [3]uint64{conv(t.Pos[0]), conv(t.Pos[1]), conv(t.Pos[2])},
		Depth: uint8(t.Depth),
	}
}

// Region is a half-open axis-aligned box [Corner, Corner+Size) at Corner's
// depth. Size components must be positive (spec.md §3.5).
type Region struct {
	Corner CubeCoord
	Size   [3]uint64
}
