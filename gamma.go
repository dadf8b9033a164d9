package intcode

import (
	"math/bits"

	"github.com/unkn0wn-root/intcode/bitstream"
)

// Gamma is the Elias gamma code for n >= 1: unary(b-1) followed by the low
// b-1 bits of n, where b is the bit length of n. The leading one of n is
// implied by the prefix.
//
//	1 => 0
//	2 => 10_0
//	5 => 110_01
//	10 => 1110_010
type Gamma struct{}

var _ Code = Gamma{}

func (Gamma) Encode(w bitstream.Sink, n uint64) error {
	if n == 0 {
		return outOfRange(NameGamma, n)
	}
	return writeGamma(w, n)
}

func (Gamma) Decode(r bitstream.Source) (uint64, error) { return readGamma(r, NameGamma) }

func (Gamma) Len(n uint64) (int, error) {
	if n == 0 {
		return 0, outOfRange(NameGamma, n)
	}
	return gammaLen(n), nil
}

func (Gamma) Min() uint64    { return 1 }
func (Gamma) Scheme() Scheme { return Scheme{Name: NameGamma} }

func writeGamma(w bitstream.Sink, n uint64) error {
	return writeGammaParts(w, dropLead(n), bits.Len64(n)-1)
}

// readGamma decodes a gamma codeword; code names the caller in errors so a
// failure inside a delta prefix reports as delta.
func readGamma(r bitstream.Source, code string) (uint64, error) {
	l, low, err := readGammaParts(r, code, 63)
	if err != nil {
		return 0, err
	}
	return 1<<l | low, nil
}

// writeGammaParts writes unary(l) and the low l bits of low: the gamma
// codeword of 2^l + low with the leading one implied. l may be 64.
func writeGammaParts(w bitstream.Sink, low uint64, l int) error {
	if err := writeUnary(w, uint64(l)); err != nil {
		return err
	}
	return w.WriteBits(lowBits(low, uint(l)), uint8(l))
}

// readGammaParts is the inverse of writeGammaParts for l <= limit.
func readGammaParts(r bitstream.Source, code string, limit uint64) (int, uint64, error) {
	l, err := readUnary(r, limit)
	if err == errRunTooLong {
		return 0, 0, overflow(code, "prefix")
	}
	if err != nil {
		return 0, 0, truncated(code, "prefix", err)
	}
	low, err := r.ReadBits(uint8(l))
	if err != nil {
		return 0, 0, truncated(code, "offset", err)
	}
	return int(l), low, nil
}

func gammaLen(n uint64) int { return 2*bits.Len64(n) - 1 }
