package intcode

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/unkn0wn-root/intcode/bitstream"
)

// Code is a prefix-free integer code. Implementations are immutable values:
// they hold no state between calls and are safe for concurrent use as long as
// each call gets its own Sink or Source.
type Code interface {
	// Encode appends the codeword for n to w.
	Encode(w bitstream.Sink, n uint64) error
	// Decode consumes exactly one codeword from r.
	Decode(r bitstream.Source) (uint64, error)
	// Len returns the bit length of the codeword for n without encoding it.
	Len(n uint64) (int, error)
	// Min is the smallest encodable value, 0 or 1.
	Min() uint64
	// Scheme identifies the code and its parameter.
	Scheme() Scheme
}

// Encode returns the codeword for n packed MSB-first and its length in bits.
func Encode(c Code, n uint64) ([]byte, int, error) {
	var w bitstream.Writer
	if err := c.Encode(&w, n); err != nil {
		return nil, 0, err
	}
	return w.Bytes(), w.Len(), nil
}

// Decode reads one codeword from the first nbits bits of b and reports how
// many bits it consumed.
func Decode(c Code, b []byte, nbits int) (uint64, int, error) {
	r := bitstream.NewReaderBits(b, nbits)
	n, err := c.Decode(r)
	if err != nil {
		return 0, r.Pos(), err
	}
	return n, r.Pos(), nil
}

// Bits renders the codeword for n as '0'/'1' text.
func Bits(c Code, n uint64) (string, error) {
	var w bitstream.Writer
	if err := c.Encode(&w, n); err != nil {
		return "", err
	}
	return w.String(), nil
}

// EncodeAll appends the codewords for ns to w in order.
func EncodeAll(c Code, w bitstream.Sink, ns []uint64) error {
	for i, n := range ns {
		if err := c.Encode(w, n); err != nil {
			return fmt.Errorf("intcode: encode value %d at index %d: %w", n, i, err)
		}
	}
	return nil
}

// DecodeN decodes exactly count codewords from r.
func DecodeN(c Code, r bitstream.Source, count int) ([]uint64, error) {
	out := make([]uint64, 0, count)
	for i := 0; i < count; i++ {
		n, err := c.Decode(r)
		if err != nil {
			return out, fmt.Errorf("intcode: decode index %d: %w", i, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// DecodeAll decodes codewords until r is exhausted. The stream must end on a
// codeword boundary; trailing bits that do not form a complete codeword are
// reported as malformed.
func DecodeAll(c Code, r *bitstream.Reader) ([]uint64, error) {
	var out []uint64
	for r.Remaining() > 0 {
		n, err := c.Decode(r)
		if err != nil {
			return out, fmt.Errorf("intcode: decode index %d: %w", len(out), err)
		}
		out = append(out, n)
	}
	return out, nil
}

// writeUnary writes q one-bits followed by a zero.
func writeUnary(w bitstream.Sink, q uint64) error {
	for ; q >= 64; q -= 64 {
		if err := w.WriteBits(^uint64(0), 64); err != nil {
			return err
		}
	}
	// q < 64 ones and the terminator fit a single field.
	return w.WriteBits((uint64(1)<<q-1)<<1, uint8(q+1))
}

// readUnary counts one-bits up to the terminating zero. It gives up with
// errRunTooLong once the count exceeds limit.
func readUnary(r bitstream.Source, limit uint64) (uint64, error) {
	var q uint64
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == 0 {
			return q, nil
		}
		if q == limit {
			return 0, errRunTooLong
		}
		q++
	}
}

var errRunTooLong = errors.New("intcode: unary run too long")

// lowBits returns the low width bits of n; width may be 64.
func lowBits(n uint64, width uint) uint64 {
	if width >= 64 {
		return n
	}
	return n & (1<<width - 1)
}

// dropLead clears the leading one of n, leaving its bits.Len64(n)-1 low bits.
func dropLead(n uint64) uint64 {
	return n &^ (1 << (bits.Len64(n) - 1))
}

// unaryLen is the length of unary(q), or an error when it does not fit an int.
func unaryLen(code string, q uint64) (int, error) {
	if q >= uint64(maxInt)-128 {
		return 0, fmt.Errorf("%w: %s codeword length overflows int", ErrOutOfRange, code)
	}
	return int(q) + 1, nil
}

const maxInt = int(^uint(0) >> 1)
