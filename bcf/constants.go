// Package bcf implements the Binary Cube Format: a compact, deterministic
// binary encoding for trees whose cell type is a byte. Two trees that
// compare equal always serialize to identical bytes, which makes a BCF
// buffer usable directly as a content-addressing key.
package bcf

const (
	// Magic is the four-byte file signature, 'BCF1' read little-endian.
	Magic uint32 = 0x42434631

	// Version is the only format version this package writes or accepts.
	Version uint8 = 0x01

	// HeaderSize is the fixed size, in bytes, of the file header.
	HeaderSize = 12

	// MaxRecursionDepth bounds the parser's descent, guarding against
	// unbounded recursion from a malicious or corrupt pointer graph.
	// Serialize does not check it.
	MaxRecursionDepth = 64
)

// Type-byte bit layout: [M|TTT|SSSS] — MSB distinguishes an inline leaf
// (cleared) from every other node kind (set); when set, the next three bits
// select a type ID and the low four bits carry a type-specific size field.
const (
	msbMask   = 0x80
	typeMask  = 0x70
	sizeMask  = 0x0F
	valueMask = 0x7F

	typeExtendedLeaf  = 0
	typeOctaLeaves    = 1
	typeOctaPointers  = 2
	extendedLeafBase  = 0x80
	octaLeavesBase    = 0x90
	octaPointersBase  = 0xA0
)
