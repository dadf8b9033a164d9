package intcode

import (
	"math"
	"math/bits"

	"github.com/unkn0wn-root/intcode/bitstream"
)

// ExpGolomb is the order-k exponential Golomb code for n >= 0: the gamma
// structure of (n >> k) + 1 followed by the k low bits of n. Order 0 is
// exactly Gamma applied to n+1.
//
//	k=0: 0 => 0, 1 => 10_0, 2 => 10_1, 3 => 110_00
//	k=2: 0 => 0_00, 3 => 0_11, 4 => 10_0_00
type ExpGolomb struct {
	k uint8
}

var _ Code = ExpGolomb{}

// NewExpGolomb returns the Exp-Golomb code of order k, 0 <= k <= 64.
func NewExpGolomb(k int) (ExpGolomb, error) {
	if k < 0 || k > 64 {
		return ExpGolomb{}, invalidParam(NameExpGolomb, "k=%d, want 0 <= k <= 64", k)
	}
	return ExpGolomb{k: uint8(k)}, nil
}

// K returns the order.
func (e ExpGolomb) K() int { return int(e.k) }

func (e ExpGolomb) Encode(w bitstream.Sink, n uint64) error {
	v, l := e.prefix(n)
	// When (n >> k) + 1 carries into bit 64, v's low 64 bits are all zero.
	if err := writeGammaParts(w, v, l); err != nil {
		return err
	}
	return w.WriteBits(lowBits(n, uint(e.k)), e.k)
}

func (e ExpGolomb) Decode(r bitstream.Source) (uint64, error) {
	l, low, err := readGammaParts(r, NameExpGolomb, 64)
	if err != nil {
		return 0, err
	}
	var hi uint64
	if l == 64 {
		// 2^64 + low - 1 only fits when low is zero.
		if low != 0 {
			return 0, overflow(NameExpGolomb, "offset")
		}
		hi = math.MaxUint64
	} else {
		hi = (1<<l | low) - 1
	}
	tail, err := r.ReadBits(e.k)
	if err != nil {
		return 0, truncated(NameExpGolomb, "suffix", err)
	}
	if hi > math.MaxUint64>>e.k {
		return 0, overflow(NameExpGolomb, "offset")
	}
	return hi<<e.k | tail, nil
}

func (e ExpGolomb) Len(n uint64) (int, error) {
	_, l := e.prefix(n)
	return 2*l + 1 + int(e.k), nil
}

func (e ExpGolomb) Min() uint64    { return 0 }
func (e ExpGolomb) Scheme() Scheme { return Scheme{Name: NameExpGolomb, Param: int64(e.k)} }

// prefix returns the low 64 bits of (n >> k) + 1 and its bit length minus one.
func (e ExpGolomb) prefix(n uint64) (v uint64, l int) {
	v, carry := bits.Add64(n>>e.k, 1, 0)
	if carry != 0 {
		return v, 64
	}
	return v, bits.Len64(v) - 1
}
