package bcf

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Header is the decoded fixed-size file header.
type Header struct {
	Version    uint8
	RootOffset uint32
}

// NodeType names which of the four on-disk node encodings a node offset
// holds. It carries no payload — Reader.NodeTypeAt reports it for an offset.
type NodeType int

const (
	NodeInlineLeaf NodeType = iota
	NodeExtendedLeaf
	NodeOctaLeaves
	NodeOctaPointers
)

func (t NodeType) String() string {
	switch t {
	case NodeInlineLeaf:
		return "inline-leaf"
	case NodeExtendedLeaf:
		return "extended-leaf"
	case NodeOctaLeaves:
		return "octa-leaves"
	case NodeOctaPointers:
		return "octa-pointers"
	default:
		return "unknown"
	}
}

// Reader provides read-only introspection of a BCF buffer without building a
// tree: looking up the encoding of the node at an offset, or dumping the
// node layout for debugging, which walks the pointer graph and reports a
// cycle instead of recursing forever. Unlike Parse, Reader does not allocate a tree;
// it only ever reads data.
type Reader struct {
	data   []byte
	Header Header
}

// NewReader validates the header and returns a Reader over data. It performs
// the same header checks as Parse, so a malformed file is rejected before
// any offset is read.
func NewReader(data []byte) (*Reader, error) {
	if len(data) < HeaderSize {
		return nil, &TruncatedDataError{ExpectedBytes: HeaderSize, AvailableBytes: len(data)}
	}
	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != Magic {
		return nil, &InvalidMagicError{Expected: Magic, Found: magic}
	}
	version := data[4]
	if version != Version {
		return nil, &UnsupportedVersionError{Found: version}
	}
	rootOffset := binary.LittleEndian.Uint32(data[8:12])
	if int(rootOffset) >= len(data) {
		return nil, &InvalidOffsetError{Offset: int(rootOffset), FileSize: len(data)}
	}
	return &Reader{data: data, Header: Header{Version: version, RootOffset: rootOffset}}, nil
}

// NodeTypeAt reports the encoding of the node at offset without decoding its
// payload.
func (r *Reader) NodeTypeAt(offset int) (NodeType, error) {
	if offset < 0 || offset >= len(r.data) {
		return 0, &InvalidOffsetError{Offset: offset, FileSize: len(r.data)}
	}
	b := r.data[offset]
	if b&msbMask == 0 {
		return NodeInlineLeaf, nil
	}
	switch (b & typeMask) >> 4 {
	case typeExtendedLeaf:
		return NodeExtendedLeaf, nil
	case typeOctaLeaves:
		return NodeOctaLeaves, nil
	case typeOctaPointers:
		return NodeOctaPointers, nil
	default:
		return 0, &InvalidTypeIDError{TypeID: (b & typeMask) >> 4}
	}
}

// Dump writes a human-readable tree diagram of the node graph rooted at the
// header's root offset, one line per node, indented by depth — in the style
// this package's sibling tools use for the typed tree itself, but reading
// directly off the wire instead of through a parsed Node.
func (r *Reader) Dump(w io.Writer) error {
	visited := bitset.New(uint(len(r.data)))
	return r.dumpRec(w, int(r.Header.RootOffset), 0, visited)
}

func (r *Reader) dumpRec(w io.Writer, offset int, depth int, visited *bitset.BitSet) error {
	if offset < 0 || uint(offset) >= visited.Len() {
		return &InvalidOffsetError{Offset: offset, FileSize: len(r.data)}
	}
	if visited.Test(uint(offset)) {
		// A pointer graph that revisits an offset isn't a tree; report it
		// rather than recurse forever.
		return fmt.Errorf("bcf: cycle detected at offset %d", offset)
	}
	visited.Set(uint(offset))

	typ, err := r.NodeTypeAt(offset)
	if err != nil {
		return err
	}
	indent := strings.Repeat(".", depth)

	switch typ {
	case NodeInlineLeaf:
		fmt.Fprintf(w, "%s[leaf] offset:%d value:%d\n", indent, offset, r.data[offset]&valueMask)
		return nil
	case NodeExtendedLeaf:
		if offset+2 > len(r.data) {
			return &TruncatedDataError{ExpectedBytes: 2, AvailableBytes: len(r.data) - offset}
		}
		fmt.Fprintf(w, "%s[leaf] offset:%d value:%d\n", indent, offset, r.data[offset+1])
		return nil
	case NodeOctaLeaves:
		if offset+9 > len(r.data) {
			return &TruncatedDataError{ExpectedBytes: 9, AvailableBytes: len(r.data) - offset}
		}
		fmt.Fprintf(w, "%s[branch-of-leaves] offset:%d values:%v\n", indent, offset, r.data[offset+1:offset+9])
		return nil
	case NodeOctaPointers:
		ssss := r.data[offset] & sizeMask
		if ssss > 3 {
			return &InvalidPointerSizeError{SSSS: ssss}
		}
		pointerSize := 1 << ssss
		nodeSize := 1 + 8*pointerSize
		if offset+nodeSize > len(r.data) {
			return &TruncatedDataError{ExpectedBytes: nodeSize, AvailableBytes: len(r.data) - offset}
		}
		fmt.Fprintf(w, "%s[branch-of-pointers] offset:%d pointer-size:%d\n", indent, offset, pointerSize)
		for i := 0; i < 8; i++ {
			childOffset, err := readPointerAt(r.data, offset+1+i*pointerSize, pointerSize)
			if err != nil {
				return err
			}
			if err := r.dumpRec(w, childOffset, depth+1, visited); err != nil {
				return err
			}
		}
		return nil
	default:
		return &InvalidTypeIDError{TypeID: uint8(typ)}
	}
}

func readPointerAt(data []byte, offset, size int) (int, error) {
	if offset+size > len(data) {
		return 0, &TruncatedDataError{ExpectedBytes: size, AvailableBytes: len(data) - offset}
	}
	switch size {
	case 1:
		return int(data[offset]), nil
	case 2:
		return int(binary.LittleEndian.Uint16(data[offset : offset+2])), nil
	case 4:
		return int(binary.LittleEndian.Uint32(data[offset : offset+4])), nil
	default:
		return int(binary.LittleEndian.Uint64(data[offset : offset+8])), nil
	}
}
