package intcode

import (
	"math"
	"math/bits"

	"github.com/unkn0wn-root/intcode/bitstream"
)

// MaxVarintLen is the longest VLQ or LEB128 encoding of a uint64, in bytes.
const MaxVarintLen = 10

// VLQ is the byte-aligned variable-length quantity used by MIDI and similar
// formats: 7-bit groups, most significant first, each carried in a byte whose
// top bit is set when more bytes follow. Over a bit Sink each byte is an 8-bit
// field.
//
//	0 => 00
//	127 => 7F
//	128 => 81 00
//	300 => 82 2C
//
// Decoding rejects a leading 0x80 byte: it only adds zero groups, and a value
// has exactly one canonical encoding.
type VLQ struct{}

var _ Code = VLQ{}

func (VLQ) Encode(w bitstream.Sink, n uint64) error {
	var buf [MaxVarintLen]byte
	for _, b := range AppendVLQ(buf[:0], n) {
		if err := w.WriteBits(uint64(b), 8); err != nil {
			return err
		}
	}
	return nil
}

func (VLQ) Decode(r bitstream.Source) (uint64, error) {
	var n uint64
	for i := 0; ; i++ {
		b, err := r.ReadBits(8)
		if err != nil {
			return 0, truncated(NameVLQ, "group", err)
		}
		if n, err = vlqStep(n, byte(b), i); err != nil || b&0x80 == 0 {
			return n, err
		}
	}
}

func (VLQ) Len(n uint64) (int, error) { return 8 * vlqSize(n), nil }
func (VLQ) Min() uint64               { return 0 }
func (VLQ) Scheme() Scheme            { return Scheme{Name: NameVLQ} }

// AppendVLQ appends the VLQ encoding of n to dst.
func AppendVLQ(dst []byte, n uint64) []byte {
	for i := vlqSize(n) - 1; i > 0; i-- {
		dst = append(dst, byte(n>>(7*i))|0x80)
	}
	return append(dst, byte(n)&0x7F)
}

// ConsumeVLQ decodes a VLQ from the front of b and returns the value and the
// number of bytes read.
func ConsumeVLQ(b []byte) (uint64, int, error) {
	var n uint64
	var err error
	for i, c := range b {
		if n, err = vlqStep(n, c, i); err != nil {
			return 0, 0, err
		}
		if c&0x80 == 0 {
			return n, i + 1, nil
		}
	}
	return 0, 0, truncated(NameVLQ, "group", bitstream.ErrEndOfStream)
}

func vlqStep(n uint64, c byte, i int) (uint64, error) {
	if i == 0 && c == 0x80 {
		return 0, malformed(NameVLQ, "leading zero group")
	}
	if n > math.MaxUint64>>7 {
		return 0, overflow(NameVLQ, "group")
	}
	return n<<7 | uint64(c&0x7F), nil
}

func vlqSize(n uint64) int {
	return max(1, (bits.Len64(n)+6)/7)
}

// LEB128 is the little-endian variant of VLQ: 7-bit groups, least significant
// first. It is wire compatible with protobuf varints.
//
//	300 => AC 02
//
// As with protobuf, redundant trailing zero groups are accepted.
type LEB128 struct{}

var _ Code = LEB128{}

func (LEB128) Encode(w bitstream.Sink, n uint64) error {
	var buf [MaxVarintLen]byte
	for _, b := range AppendLEB128(buf[:0], n) {
		if err := w.WriteBits(uint64(b), 8); err != nil {
			return err
		}
	}
	return nil
}

func (LEB128) Decode(r bitstream.Source) (uint64, error) {
	var n uint64
	for i := 0; ; i++ {
		b, err := r.ReadBits(8)
		if err != nil {
			return 0, truncated(NameLEB128, "group", err)
		}
		if n, err = leb128Step(n, byte(b), i); err != nil || b&0x80 == 0 {
			return n, err
		}
	}
}

func (LEB128) Len(n uint64) (int, error) { return 8 * vlqSize(n), nil }
func (LEB128) Min() uint64               { return 0 }
func (LEB128) Scheme() Scheme            { return Scheme{Name: NameLEB128} }

// AppendLEB128 appends the LEB128 encoding of n to dst.
func AppendLEB128(dst []byte, n uint64) []byte {
	for n >= 0x80 {
		dst = append(dst, byte(n)|0x80)
		n >>= 7
	}
	return append(dst, byte(n))
}

// ConsumeLEB128 decodes a LEB128 value from the front of b and returns the
// value and the number of bytes read.
func ConsumeLEB128(b []byte) (uint64, int, error) {
	var n uint64
	var err error
	for i, c := range b {
		if n, err = leb128Step(n, c, i); err != nil {
			return 0, 0, err
		}
		if c&0x80 == 0 {
			return n, i + 1, nil
		}
	}
	return 0, 0, truncated(NameLEB128, "group", bitstream.ErrEndOfStream)
}

func leb128Step(n uint64, c byte, i int) (uint64, error) {
	// The tenth byte carries only bit 63 and must end the value.
	if i == MaxVarintLen-1 && c > 1 || i >= MaxVarintLen {
		return 0, overflow(NameLEB128, "group")
	}
	return n | uint64(c&0x7F)<<(7*i), nil
}
