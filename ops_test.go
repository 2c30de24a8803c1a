package cube

import "testing"

func TestGetOutOfRangeReturnsZero(t *testing.T) {
	n := Uniform(9)
	got := Get(n, CubeCoord{Pos: [3]uint64{4, 0, 0}, Depth: 2})
	if got != 0 {
		t.Fatalf("Get out of range = %d; want 0", got)
	}
}

func TestUpdateReadAfterWrite(t *testing.T) {
	n := Uniform(0)
	c := CubeCoord{Pos: [3]uint64{5, 2, 6}, Depth: 3}
	n2 := Update(n, c, 99)
	if got := Get(n2, c); got != 99 {
		t.Fatalf("read-after-write: Get = %d; want 99", got)
	}
}

func TestUpdateReadElsewhereUnaffected(t *testing.T) {
	n := TabulateRecursive(2, func(coord CubeCoord) int {
		return int(coord.Pos[0]) + int(coord.Pos[1])*4 + int(coord.Pos[2])*16
	})
	target := CubeCoord{Pos: [3]uint64{1, 1, 1}, Depth: 2}
	before := Get(n, CubeCoord{Pos: [3]uint64{2, 2, 2}, Depth: 2})
	n2 := Update(n, target, 12345)
	after := Get(n2, CubeCoord{Pos: [3]uint64{2, 2, 2}, Depth: 2})
	if before != after {
		t.Fatalf("update at a different coord changed an unrelated cell: %d -> %d", before, after)
	}
}

func TestUpdateIdempotent(t *testing.T) {
	n := Uniform(0)
	c := CubeCoord{Pos: [3]uint64{1, 0, 1}, Depth: 2}
	once := Update(n, c, 7)
	twice := Update(once, c, 7)
	if !Equal(once, twice) {
		t.Fatal("update(update(t,c,v),c,v) != update(t,c,v)")
	}
}

func TestUpdateOutOfRangeNoop(t *testing.T) {
	n := Uniform(5)
	n2 := Update(n, CubeCoord{Pos: [3]uint64{8, 0, 0}, Depth: 2}, 1)
	if !Equal(n, n2) {
		t.Fatal("Update with out-of-range coord changed the tree")
	}
}

func TestUpdateSubdividesUniformLeafThenCollapses(t *testing.T) {
	n := Uniform(3)
	c := CubeCoord{Pos: [3]uint64{0, 0, 0}, Depth: 2}
	n2 := Update(n, c, 3) // same value everywhere: should stay (or become) uniform
	if v, ok := n2.UniformValue(); !ok || v != 3 {
		t.Fatalf("Update with the already-uniform value did not stay uniform: %v, %v", v, ok)
	}
}

func TestUpdateRegionStampsSubtree(t *testing.T) {
	target := Uniform(0)
	source := Tabulate(func(octant int) int { return octant + 1 })
	result := UpdateRegion(target, CubeCoord{Depth: 0}, source)
	for octant := 0; octant < 8; octant++ {
		c := CubeCoord{Depth: 0}.Child(octant)
		if got := Get(result, c); got != octant+1 {
			t.Fatalf("UpdateRegion octant %d = %d; want %d", octant, got, octant+1)
		}
	}
}

func TestUpdateRegionOutOfRangeNoop(t *testing.T) {
	target := Uniform(1)
	source := Uniform(2)
	result := UpdateRegion(target, CubeCoord{Pos: [3]uint64{4, 0, 0}, Depth: 2}, source)
	if !Equal(target, result) {
		t.Fatal("UpdateRegion with out-of-range corner changed the tree")
	}
}

func TestVisitRegionCompleteness(t *testing.T) {
	n := TabulateRecursive(3, func(coord CubeCoord) int {
		return int(coord.Pos[0])<<16 | int(coord.Pos[1])<<8 | int(coord.Pos[2])
	})
	region := Region{Corner: CubeCoord{Pos: [3]uint64{1, 1, 1}, Depth: 3}, Size: [3]uint64{3, 2, 4}}
	visited := map[[3]uint64]int{}
	var order [][3]uint64
	VisitRegion(n, region, func(pos [3]uint64, v int) {
		visited[pos] = v
		order = append(order, pos)
	})

	want := int(region.Size[0] * region.Size[1] * region.Size[2])
	if len(visited) != want {
		t.Fatalf("VisitRegion visited %d distinct cells; want %d", len(visited), want)
	}
	if len(order) != want {
		t.Fatalf("VisitRegion called visitor %d times; want %d", len(order), want)
	}
	for x := region.Corner.Pos[0]; x < region.Corner.Pos[0]+region.Size[0]; x++ {
		for y := region.Corner.Pos[1]; y < region.Corner.Pos[1]+region.Size[1]; y++ {
			for z := region.Corner.Pos[2]; z < region.Corner.Pos[2]+region.Size[2]; z++ {
				pos := [3]uint64{x, y, z}
				want := int(x)<<16 | int(y)<<8 | int(z)
				got, ok := visited[pos]
				if !ok {
					t.Fatalf("VisitRegion never visited %v", pos)
				}
				if got != want {
					t.Fatalf("VisitRegion value at %v = %d; want %d", pos, got, want)
				}
			}
		}
	}
}

func TestMapNodePreservesStructureAndSimplifies(t *testing.T) {
	n := Tabulate(func(octant int) int {
		if octant < 4 {
			return 1
		}
		return 2
	})
	mapped := MapNode(n, func(v int) bool { return v > 0 })
	if v, ok := mapped.UniformValue(); !ok || !v {
		t.Fatalf("MapNode collapsing two distinct materials onto one bool did not simplify: %v, %v", v, ok)
	}
}

func TestMapNodeValues(t *testing.T) {
	n := Tabulate(func(octant int) int { return octant })
	mapped := MapNode(n, func(v int) string {
		if v%2 == 0 {
			return "even"
		}
		return "odd"
	})
	for octant := 0; octant < 8; octant++ {
		want := "odd"
		if octant%2 == 0 {
			want = "even"
		}
		got, ok := mapped.Child(octant).UniformValue()
		if !ok || got != want {
			t.Fatalf("MapNode child %d = %v, %v; want %q, true", octant, got, ok, want)
		}
	}
}
