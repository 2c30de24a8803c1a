package bcf

import (
	"encoding/binary"

	"github.com/k0sti/cube"
)

// Serialize encodes root into a BCF buffer. Encoding is deterministic: the
// same tree always produces the same bytes, on this call or any other,
// which is what makes BCF output usable as a content-addressing key.
//
// The whole tree is serialized once per candidate pointer width, narrowest
// first, and the first width whose resulting file size actually fits that
// width's address range is kept — the widths a branch-of-pointers node could
// need depend on the total file size, and the total file size depends on
// which width every other branch-of-pointers node in the tree picked, so
// there is no way to size a single node's pointers in isolation.
func Serialize(root *cube.Node[uint8]) []byte {
	for ssss := 0; ssss <= 3; ssss++ {
		pointerSize := 1 << ssss
		buf := serializeTree(root, pointerSize)
		if fitsPointerSize(HeaderSize+len(buf), pointerSize) {
			return finish(buf)
		}
	}
	panic("cube/bcf: unreachable: 8-byte pointers always fit")
}

func serializeTree(root *cube.Node[uint8], pointerSize int) []byte {
	w := &encoder{baseOffset: HeaderSize, pointerSize: pointerSize}
	w.writeNode(root)
	return w.buf
}

// fitsPointerSize reports whether every offset in a file of totalSize bytes
// is representable in a pointer of the given width.
func fitsPointerSize(totalSize, pointerSize int) bool {
	switch pointerSize {
	case 1:
		return totalSize <= 1<<8
	case 2:
		return totalSize <= 1<<16
	case 4:
		return totalSize <= 1<<32
	default:
		return true
	}
}

// encoder accumulates one BCF buffer. baseOffset is where this buffer's
// contents will land inside the final file, so every offset it computes or
// writes is an absolute file offset, never relative to the buffer itself.
// pointerSize is fixed for the whole encode: every branch-of-pointers node in
// the tree uses the same pointer width, chosen by Serialize before encoding
// starts.
type encoder struct {
	buf         []byte
	baseOffset  int
	pointerSize int
}

// root is always the first thing appended to the top-level encoder's buffer,
// so its offset is always exactly HeaderSize — the root_offset header field
// never varies.
func finish(buf []byte) []byte {
	header := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], Magic)
	header[4] = Version
	binary.LittleEndian.PutUint32(header[8:12], uint32(HeaderSize))
	return append(header, buf...)
}

func (w *encoder) writeNode(n *cube.Node[uint8]) int {
	if v, ok := n.UniformValue(); ok {
		return w.writeLeaf(v)
	}
	if allSolid(n) {
		return w.writeOctaLeaves(n)
	}
	return w.writeOctaPointers(n)
}

func (w *encoder) writeLeaf(value uint8) int {
	offset := w.baseOffset + len(w.buf)
	if value <= 127 {
		w.buf = append(w.buf, value)
	} else {
		w.buf = append(w.buf, extendedLeafBase, value)
	}
	return offset
}

func (w *encoder) writeOctaLeaves(n *cube.Node[uint8]) int {
	offset := w.baseOffset + len(w.buf)
	w.buf = append(w.buf, octaLeavesBase)
	for i := 0; i < 8; i++ {
		v, _ := n.Child(i).UniformValue()
		w.buf = append(w.buf, v)
	}
	return offset
}

// writeOctaPointers writes a branch-of-pointers node. Every child is rendered
// into its own scratch buffer stamped with its eventual absolute position
// before the real pointer table is written, so a child's own descendants see
// correct absolute offsets even though the child hasn't been appended to w's
// buffer yet. The pointer width itself is not computed here: it is fixed for
// the whole encode by Serialize's outer retry loop.
func (w *encoder) writeOctaPointers(n *cube.Node[uint8]) int {
	nodeOffset := w.baseOffset + len(w.buf)
	ssss := pointerSizeToSSSS(w.pointerSize)
	childrenStart := nodeOffset + 1 + 8*w.pointerSize

	var tempChildren []byte
	var childOffsets [8]int
	for i := 0; i < 8; i++ {
		childBaseOffset := childrenStart + len(tempChildren)
		childOffsets[i] = childBaseOffset

		childWriter := &encoder{baseOffset: childBaseOffset, pointerSize: w.pointerSize}
		childWriter.writeNode(n.Child(i))
		tempChildren = append(tempChildren, childWriter.buf...)
	}

	w.buf = append(w.buf, octaPointersBase|uint8(ssss))
	for _, off := range childOffsets {
		w.buf = appendPointer(w.buf, uint64(off), w.pointerSize)
	}
	w.buf = append(w.buf, tempChildren...)

	return nodeOffset
}

func appendPointer(buf []byte, value uint64, size int) []byte {
	switch size {
	case 1:
		return append(buf, byte(value))
	case 2:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(value))
		return append(buf, b[:]...)
	case 4:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(value))
		return append(buf, b[:]...)
	default:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], value)
		return append(buf, b[:]...)
	}
}

func pointerSizeToSSSS(pointerSize int) int {
	switch pointerSize {
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	default:
		return 3
	}
}

func allSolid(n *cube.Node[uint8]) bool {
	for i := 0; i < 8; i++ {
		if !n.Child(i).IsUniform() {
			return false
		}
	}
	return true
}
