package intcode

import (
	"math/bits"

	"github.com/unkn0wn-root/intcode/bitstream"
)

// Delta is the Elias delta code for n >= 1: gamma(b) followed by the low b-1
// bits of n, where b is the bit length of n.
//
//	1 => 0
//	2 => 10_0_0
//	17 => 110_01_0001
type Delta struct{}

var _ Code = Delta{}

func (Delta) Encode(w bitstream.Sink, n uint64) error {
	if n == 0 {
		return outOfRange(NameDelta, n)
	}
	b := bits.Len64(n)
	if err := writeGamma(w, uint64(b)); err != nil {
		return err
	}
	return w.WriteBits(dropLead(n), uint8(b-1))
}

func (Delta) Decode(r bitstream.Source) (uint64, error) {
	b, err := readGamma(r, NameDelta)
	if err != nil {
		return 0, err
	}
	if b > 64 {
		return 0, overflow(NameDelta, "length")
	}
	low, err := r.ReadBits(uint8(b - 1))
	if err != nil {
		return 0, truncated(NameDelta, "offset", err)
	}
	return 1<<(b-1) | low, nil
}

func (Delta) Len(n uint64) (int, error) {
	if n == 0 {
		return 0, outOfRange(NameDelta, n)
	}
	b := bits.Len64(n)
	return gammaLen(uint64(b)) + b - 1, nil
}

func (Delta) Min() uint64    { return 1 }
func (Delta) Scheme() Scheme { return Scheme{Name: NameDelta} }
