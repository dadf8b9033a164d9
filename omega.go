package intcode

import (
	"math/bits"

	"github.com/unkn0wn-root/intcode/bitstream"
)

// Omega is the Elias omega code for n >= 1. The codeword is a chain of groups,
// each the full binary form of the next group's width minus one, ending with
// the binary form of n and a terminating zero:
//
//	1 => 0
//	2 => 10_0
//	4 => 10_100_0
//	16 => 10_100_10000_0
type Omega struct{}

var _ Code = Omega{}

// A uint64 needs at most four groups (n, 63, 5, 2).
const maxOmegaGroups = 4

func (Omega) Encode(w bitstream.Sink, n uint64) error {
	if n == 0 {
		return outOfRange(NameOmega, n)
	}
	groups := omegaGroups(n)
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		if err := w.WriteBits(g, uint8(bits.Len64(g))); err != nil {
			return err
		}
	}
	return w.WriteBit(0)
}

func (Omega) Decode(r bitstream.Source) (uint64, error) {
	v := uint64(1)
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, truncated(NameOmega, "group", err)
		}
		if bit == 0 {
			return v, nil
		}
		// The next group is v+1 bits wide and its leading one was just read.
		if v > 63 {
			return 0, overflow(NameOmega, "group")
		}
		low, err := r.ReadBits(uint8(v))
		if err != nil {
			return 0, truncated(NameOmega, "group", err)
		}
		v = 1<<v | low
	}
}

func (Omega) Len(n uint64) (int, error) {
	if n == 0 {
		return 0, outOfRange(NameOmega, n)
	}
	l := 1
	for _, g := range omegaGroups(n) {
		l += bits.Len64(g)
	}
	return l, nil
}

func (Omega) Min() uint64    { return 1 }
func (Omega) Scheme() Scheme { return Scheme{Name: NameOmega} }

// omegaGroups lists the groups of n from last written to first. Each step
// strictly shrinks the value, so the loop ends at 1.
func omegaGroups(n uint64) []uint64 {
	var buf [maxOmegaGroups]uint64
	groups := buf[:0]
	for v := n; v > 1; v = uint64(bits.Len64(v) - 1) {
		groups = append(groups, v)
	}
	return groups
}
