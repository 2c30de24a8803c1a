package bcf

import (
	"encoding/binary"

	"github.com/k0sti/cube"
)

// Parse decodes a BCF buffer into a tree. Returns a typed error — one of
// InvalidMagicError, UnsupportedVersionError, InvalidTypeIDError,
// InvalidPointerSizeError, TruncatedDataError, InvalidOffsetError or
// RecursionLimitError — identifiable with errors.As, on any malformed input.
// Parse never panics: every offset and length is bounds-checked before use.
func Parse(data []byte) (*cube.Node[uint8], error) {
	p, err := newParser(data)
	if err != nil {
		return nil, err
	}
	return p.parseNodeAt(p.rootOffset)
}

type parser struct {
	data           []byte
	rootOffset     int
	recursionDepth int
}

func newParser(data []byte) (*parser, error) {
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

	rootOffset := int(binary.LittleEndian.Uint32(data[8:12]))
	if rootOffset >= len(data) {
		return nil, &InvalidOffsetError{Offset: rootOffset, FileSize: len(data)}
	}

	return &parser{data: data, rootOffset: rootOffset}, nil
}

func (p *parser) parseNodeAt(offset int) (*cube.Node[uint8], error) {
	if p.recursionDepth >= MaxRecursionDepth {
		return nil, &RecursionLimitError{MaxDepth: MaxRecursionDepth}
	}
	p.recursionDepth++
	n, err := p.parseNodeAtImpl(offset)
	p.recursionDepth--
	return n, err
}

func (p *parser) parseNodeAtImpl(offset int) (*cube.Node[uint8], error) {
	if offset < 0 || offset >= len(p.data) {
		return nil, &InvalidOffsetError{Offset: offset, FileSize: len(p.data)}
	}

	typeByte := p.data[offset]
	if typeByte&msbMask == 0 {
		return cube.Uniform(typeByte & valueMask), nil
	}

	typeID := (typeByte & typeMask) >> 4
	sizeField := typeByte & sizeMask

	switch typeID {
	case typeExtendedLeaf:
		return p.parseExtendedLeaf(offset)
	case typeOctaLeaves:
		return p.parseOctaLeaves(offset)
	case typeOctaPointers:
		return p.parseOctaPointers(offset, sizeField)
	default:
		return nil, &InvalidTypeIDError{TypeID: typeID}
	}
}

func (p *parser) parseExtendedLeaf(offset int) (*cube.Node[uint8], error) {
	if offset+2 > len(p.data) {
		return nil, &TruncatedDataError{ExpectedBytes: 2, AvailableBytes: len(p.data) - offset}
	}
	return cube.Uniform(p.data[offset+1]), nil
}

func (p *parser) parseOctaLeaves(offset int) (*cube.Node[uint8], error) {
	if offset+9 > len(p.data) {
		return nil, &TruncatedDataError{ExpectedBytes: 9, AvailableBytes: len(p.data) - offset}
	}
	var children [8]*cube.Node[uint8]
	for i := range children {
		children[i] = cube.Uniform(p.data[offset+1+i])
	}
	return cube.Branch(children), nil
}

func (p *parser) parseOctaPointers(offset int, ssss uint8) (*cube.Node[uint8], error) {
	if ssss > 3 {
		return nil, &InvalidPointerSizeError{SSSS: ssss}
	}
	pointerSize := 1 << ssss
	nodeSize := 1 + 8*pointerSize

	if offset+nodeSize > len(p.data) {
		return nil, &TruncatedDataError{ExpectedBytes: nodeSize, AvailableBytes: len(p.data) - offset}
	}

	var childOffsets [8]int
	for i := 0; i < 8; i++ {
		ptrOffset := offset + 1 + i*pointerSize
		off, err := p.readPointer(ptrOffset, pointerSize)
		if err != nil {
			return nil, err
		}
		childOffsets[i] = off
	}

	var children [8]*cube.Node[uint8]
	for i, off := range childOffsets {
		child, err := p.parseNodeAt(off)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return cube.Branch(children), nil
}

func (p *parser) readPointer(offset, size int) (int, error) {
	if offset+size > len(p.data) {
		return 0, &TruncatedDataError{ExpectedBytes: size, AvailableBytes: len(p.data) - offset}
	}
	switch size {
	case 1:
		return int(p.data[offset]), nil
	case 2:
		return int(binary.LittleEndian.Uint16(p.data[offset : offset+2])), nil
	case 4:
		return int(binary.LittleEndian.Uint32(p.data[offset : offset+4])), nil
	default:
		return int(binary.LittleEndian.Uint64(p.data[offset : offset+8])), nil
	}
}
