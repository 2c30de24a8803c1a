package bcf

import (
	"testing"

	"github.com/k0sti/cube"
)

func TestSerializeInlineLeaf(t *testing.T) {
	buf := Serialize(cube.Uniform[uint8](5))
	if len(buf) != HeaderSize+1 {
		t.Fatalf("len(buf) = %d; want %d", len(buf), HeaderSize+1)
	}
	if buf[HeaderSize] != 5 {
		t.Fatalf("leaf byte = %d; want 5", buf[HeaderSize])
	}
}

func TestSerializeExtendedLeaf(t *testing.T) {
	buf := Serialize(cube.Uniform[uint8](200))
	if len(buf) != HeaderSize+2 {
		t.Fatalf("len(buf) = %d; want %d", len(buf), HeaderSize+2)
	}
	if buf[HeaderSize] != extendedLeafBase {
		t.Fatalf("type byte = 0x%02X; want 0x%02X", buf[HeaderSize], extendedLeafBase)
	}
	if buf[HeaderSize+1] != 200 {
		t.Fatalf("value byte = %d; want 200", buf[HeaderSize+1])
	}
}

func TestSerializeOctaLeaves(t *testing.T) {
	n := cube.Tabulate(func(octant int) uint8 { return uint8(octant) })
	buf := Serialize(n)
	if len(buf) != HeaderSize+9 {
		t.Fatalf("len(buf) = %d; want %d", len(buf), HeaderSize+9)
	}
	if buf[HeaderSize] != octaLeavesBase {
		t.Fatalf("type byte = 0x%02X; want 0x%02X", buf[HeaderSize], octaLeavesBase)
	}
	for i := 0; i < 8; i++ {
		if buf[HeaderSize+1+i] != uint8(i) {
			t.Fatalf("child %d value = %d; want %d", i, buf[HeaderSize+1+i], i)
		}
	}
}

func TestSerializeDeterministic(t *testing.T) {
	n := cube.TabulateRecursive(3, func(c cube.CubeCoord) uint8 {
		return uint8((c.Pos[0] + c.Pos[1]*8 + c.Pos[2]*64) % 251)
	})
	a := Serialize(n)
	b := Serialize(n)
	if string(a) != string(b) {
		t.Fatal("Serialize produced different bytes for the same tree across two calls")
	}
}

func TestSerializeDistinctTreesProduceDistinctBytes(t *testing.T) {
	n1 := cube.Tabulate(func(octant int) uint8 { return uint8(octant) })
	n2 := cube.Tabulate(func(octant int) uint8 { return uint8(7 - octant) })
	a := Serialize(n1)
	b := Serialize(n2)
	if string(a) == string(b) {
		t.Fatal("Serialize produced identical bytes for two distinct trees")
	}
}

func TestSerializeHeaderFields(t *testing.T) {
	buf := Serialize(cube.Uniform[uint8](1))
	magic := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
	if magic != Magic {
		t.Fatalf("header magic = 0x%08X; want 0x%08X", magic, Magic)
	}
	if buf[4] != Version {
		t.Fatalf("header version = 0x%02X; want 0x%02X", buf[4], Version)
	}
}

func TestSerializeNestedBranchOfPointers(t *testing.T) {
	// A branch whose children are themselves non-uniform forces the
	// branch-of-pointers encoding rather than branch-of-leaves.
	n := cube.TabulateRecursive(2, func(c cube.CubeCoord) uint8 {
		return uint8(c.Pos[0] ^ c.Pos[1] ^ c.Pos[2])
	})
	buf := Serialize(n)
	typeByte := buf[HeaderSize]
	if typeByte&msbMask == 0 {
		t.Fatal("root of a deeply branching tree encoded as an inline leaf")
	}
	if (typeByte&typeMask)>>4 != typeOctaPointers {
		t.Fatalf("root type ID = %d; want %d (octa-pointers)", (typeByte&typeMask)>>4, typeOctaPointers)
	}
}
