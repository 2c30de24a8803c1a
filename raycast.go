package cube

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

// Hit is the result of a successful raycast: the world-space point where the
// ray first struck a non-empty cell, that cell's value, the face normal
// crossed to enter it, and the cube-coord naming the cell.
type Hit[T comparable] struct {
	Pos    r3.Vector
	Value  T
	Normal Axis
	Coord  CubeCoord
}

// DebugHook is called once per node visited during a raycast, with the
// parameter range (along the ray) the node's cube occupies. Hook calls never
// affect the result; a hook is purely an observer, useful for visualizing or
// profiling traversal.
type DebugHook[T comparable] func(node *Node[T], coord CubeCoord, tEnter, tExit float64)

// Raycast finds the first cell along the ray (origin, direction) — direction
// need not be normalized, only its signs and relative magnitudes matter —
// for which isEmpty returns false, descending at most maxDepth levels
// (clamped to MaxDepth). direction components may be zero; axes with a zero
// component simply never clip the ray. Returns ok=false if the ray misses
// the root cube [-1,+1]³ entirely, or if every cell it passes through is
// empty. Never panics on finite input.
func Raycast[T comparable](root *Node[T], origin, direction r3.Vector, maxDepth uint8, isEmpty func(T) bool, hook DebugHook[T]) (Hit[T], bool) {
	if maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	tMin, tMax, normal, ok := clipCube(origin, direction, r3.Vector{}, 1)
	if !ok || tMax < 0 {
		return Hit[T]{}, false
	}
	if tMin < 0 {
		// Origin lies inside the root cube; start the walk at the origin
		// itself rather than behind it. The recorded entry normal is
		// meaningless in this case (there's no face crossing), but a hit
		// found here reports it anyway rather than introduce a sentinel.
		tMin = 0
	}

	return raycastRec(root, CubeCoord{}, r3.Vector{}, 1, 0, maxDepth, origin, direction, tMin, tMax, normal, isEmpty, hook)
}

func raycastRec[T comparable](n *Node[T], coord CubeCoord, center r3.Vector, half float64, depth, maxDepth uint8, origin, dir r3.Vector, tMin, tMax float64, normal Axis, isEmpty func(T) bool, hook DebugHook[T]) (Hit[T], bool) {
	if hook != nil {
		hook(n, coord, tMin, tMax)
	}

	v, isUniform := n.UniformValue()
	if !isUniform && depth >= maxDepth {
		v = resolveValue(n)
		isUniform = true
	}

	if isUniform {
		if isEmpty(v) {
			return Hit[T]{}, false
		}
		pos := origin.Add(dir.Mul(tMin))
		return Hit[T]{Pos: pos, Value: v, Normal: normal, Coord: coord}, true
	}

	type candidate struct {
		octant   int
		tMin     float64
		tMax     float64
		normal   Axis
		ownEntry bool
	}
	var candidates [8]candidate
	count := 0
	childHalf := half / 2

	for octant := 0; octant < 8; octant++ {
		sx, sy, sz := OctantOffset(octant)
		childCenter := r3.Vector{
			X: center.X + float64(sx)*childHalf,
			Y: center.Y + float64(sy)*childHalf,
			Z: center.Z + float64(sz)*childHalf,
		}
		cTMin, cTMax, cNormal, ok := clipCube(origin, dir, childCenter, childHalf)
		if !ok {
			continue
		}
		lo, hi := math.Max(cTMin, tMin), math.Min(cTMax, tMax)
		if lo >= hi {
			// A child the ray only touches at a single point (a shared
			// face behind an origin lying on it, or an edge or corner the
			// ray passes exactly through) is skipped, so the ray continues
			// into the child on the side it travels toward.
			continue
		}
		candidates[count] = candidate{octant, lo, hi, cNormal, cTMin >= tMin}
		count++
	}

	// Front-to-back order, which for a partition of cubes coincides exactly
	// with the direction-sign-determined visitation order; a stable sort on
	// entry parameter gives a deterministic tie-break (lower octant index
	// first) on the rare exact tie.
	ordered := candidates[:count]
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].tMin < ordered[j].tMin })

	for _, c := range ordered {
		sx, sy, sz := OctantOffset(c.octant)
		childCenter := r3.Vector{
			X: center.X + float64(sx)*childHalf,
			Y: center.Y + float64(sy)*childHalf,
			Z: center.Z + float64(sz)*childHalf,
		}
		entryNormal := c.normal
		if !c.ownEntry {
			// This child's own near face lies behind the ray's current
			// position — we arrived here after the ray already crossed
			// into the parent cube or skipped past an earlier empty
			// sibling, so the normal carried forward from that crossing
			// still describes how we got here.
			entryNormal = normal
		}
		hit, ok := raycastRec(n.children[c.octant], coord.Child(c.octant), childCenter, childHalf, depth+1, maxDepth, origin, dir, c.tMin, c.tMax, entryNormal, isEmpty, hook)
		if ok {
			return hit, true
		}
	}

	return Hit[T]{}, false
}

// resolveValue returns a representative leaf value for n by following octant
// 0 down to the first uniform leaf. Used only when the depth bound is
// reached inside a branch: the caller has asked to treat this node as a leaf
// despite it subdividing further, so any single value drawn from it is as
// valid an answer as any other.
func resolveValue[T comparable](n *Node[T]) T {
	for {
		v, ok := n.UniformValue()
		if ok {
			return v
		}
		n = n.children[0]
	}
}

// clipCube clips the ray (origin, dir) against the axis-aligned cube
// centered at center with half-width half, using the standard per-axis slab
// test. A zero direction component on an axis removes that axis's
// constraint entirely provided the origin already lies within the slab —
// otherwise the ray can never enter. The returned normal is the face whose
// slab boundary produced the largest (entering) of the per-axis near candidates,
// which — because it falls out of a numeric min/max rather than a
// direction-sign lookup table — agrees with the direction-sign tie-break
// rule by construction: whichever face the ray reaches first is named,
// regardless of how that face's t happened to be derived.
func clipCube(origin, dir, center r3.Vector, half float64) (tMin, tMax float64, normal Axis, ok bool) {
	tMin = math.Inf(-1)
	tMax = math.Inf(1)
	enterAxis := 0
	enterIsLo := true

	axis := func(v r3.Vector, i int) float64 {
		switch i {
		case 0:
			return v.X
		case 1:
			return v.Y
		default:
			return v.Z
		}
	}

	for i := 0; i < 3; i++ {
		o := axis(origin, i)
		d := axis(dir, i)
		c := axis(center, i)
		lo, hi := c-half, c+half

		if d == 0 {
			if o < lo || o > hi {
				return 0, 0, 0, false
			}
			continue
		}

		tLo := (lo - o) / d
		tHi := (hi - o) / d
		near, far, nearIsLo := tLo, tHi, true
		if tHi < tLo {
			near, far, nearIsLo = tHi, tLo, false
		}

		if near > tMin {
			tMin = near
			enterAxis = i
			enterIsLo = nearIsLo
		}
		if far < tMax {
			tMax = far
		}
	}

	if tMin > tMax {
		return 0, 0, 0, false
	}

	sign := 1
	if enterIsLo {
		sign = -1
	}
	return tMin, tMax, AxisFromIndexSign(enterAxis, sign), true
}
