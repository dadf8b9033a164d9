// Package bitstream defines the bit sink and bit source used by intcode and
// ships in-memory and io-backed implementations.
//
// Bit order is most-significant-bit first: WriteBits(0b101, 3) appends the bits
// 1, 0, 1 in that order, and bytes are filled from bit 7 down to bit 0.
package bitstream

import "errors"

// MaxWidth is the widest field a single WriteBits/ReadBits call accepts.
const MaxWidth = 64

var (
	// ErrEndOfStream is returned by a Source when fewer bits remain than requested.
	ErrEndOfStream = errors.New("bitstream: end of stream")
	// ErrWidth is returned for field widths above MaxWidth.
	ErrWidth = errors.New("bitstream: field width exceeds 64 bits")
)

// Sink is an ordered, append-only destination for bits.
type Sink interface {
	// WriteBit appends the low bit of bit.
	WriteBit(bit uint8) error
	// WriteBits appends the low width bits of v, most significant first.
	WriteBits(v uint64, width uint8) error
}

// Source is an ordered, position-tracked origin of bits.
//
// A failed read consumes nothing, so a caller may inspect the position after
// ErrEndOfStream and see where the truncated field started.
type Source interface {
	// ReadBit returns the next bit (0 or 1).
	ReadBit() (uint8, error)
	// ReadBits returns the next width bits packed into the low bits of the
	// result, first bit read in the most significant position.
	ReadBits(width uint8) (uint64, error)
}

func mask(width uint8) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return 1<<width - 1
}
