package intcode

import (
	"math"
	"math/bits"

	"github.com/unkn0wn-root/intcode/bitstream"
)

// Golomb codes n >= 0 with parameter m as unary(n / m) followed by n % m in
// truncated binary. With b = ceil(log2 m) and u = 2^b - m, remainders below u
// take b-1 bits and the rest are written as r+u in b bits.
//
// Rice codes are Golomb codes with m a power of two. Then u is zero and the
// remainder is a plain b-bit field: NewRice returns this same type, so the two
// codes share one implementation.
type Golomb struct {
	m     uint64
	width uint8  // ceil(log2 m)
	cut   uint64 // 2^width - m, zero for Rice
	shift uint8  // log2 m when cut is zero
	rice  bool
}

var _ Code = Golomb{}

// NewGolomb returns the Golomb code with parameter m >= 1.
func NewGolomb(m int64) (Golomb, error) {
	if m < 1 {
		return Golomb{}, invalidParam(NameGolomb, "m=%d, want m >= 1", m)
	}
	return newGolomb(uint64(m), false), nil
}

// NewRice returns the Rice code with parameter m, a power of two.
func NewRice(m int64) (Golomb, error) {
	if m < 1 || m&(m-1) != 0 {
		return Golomb{}, invalidParam(NameRice, "m=%d, want a power of two", m)
	}
	return newGolomb(uint64(m), true), nil
}

// NewRiceK returns the Rice code with parameter m = 2^k, 0 <= k <= 62.
func NewRiceK(k int) (Golomb, error) {
	if k < 0 || k > 62 {
		return Golomb{}, invalidParam(NameRice, "k=%d, want 0 <= k <= 62", k)
	}
	return NewRice(1 << k)
}

func newGolomb(m uint64, rice bool) Golomb {
	width := bits.Len64(m - 1)
	g := Golomb{
		m:     m,
		width: uint8(width),
		cut:   1<<width - m,
		rice:  rice,
	}
	if g.cut == 0 {
		g.shift = uint8(width)
	}
	return g
}

// M returns the code parameter.
func (g Golomb) M() uint64 { return g.m }

func (g Golomb) Encode(w bitstream.Sink, n uint64) error {
	// Len rejects the zero value and quotients too long to write.
	if _, err := g.Len(n); err != nil {
		return err
	}
	q, r := g.split(n)
	if err := writeUnary(w, q); err != nil {
		return err
	}
	switch {
	case g.cut == 0:
		return w.WriteBits(r, g.width)
	case r < g.cut:
		return w.WriteBits(r, g.width-1)
	default:
		return w.WriteBits(r+g.cut, g.width)
	}
}

func (g Golomb) Decode(r bitstream.Source) (uint64, error) {
	if g.m == 0 {
		return 0, invalidParam(g.name(), "zero value Golomb is not usable")
	}
	q, err := readUnary(r, math.MaxUint64)
	if err != nil {
		return 0, truncated(g.name(), "quotient", err)
	}
	rem, err := g.readRemainder(r)
	if err != nil {
		return 0, truncated(g.name(), "remainder", err)
	}
	if g.cut == 0 {
		if q > math.MaxUint64>>g.shift {
			return 0, overflow(g.name(), "quotient")
		}
		return q<<g.shift | rem, nil
	}
	hi, lo := bits.Mul64(q, g.m)
	n, carry := bits.Add64(lo, rem, 0)
	if hi != 0 || carry != 0 {
		return 0, overflow(g.name(), "quotient")
	}
	return n, nil
}

func (g Golomb) readRemainder(r bitstream.Source) (uint64, error) {
	if g.cut == 0 {
		return r.ReadBits(g.width)
	}
	x, err := r.ReadBits(g.width - 1)
	if err != nil {
		return 0, err
	}
	if x < g.cut {
		return x, nil
	}
	bit, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	return (x<<1 | uint64(bit)) - g.cut, nil
}

func (g Golomb) Len(n uint64) (int, error) {
	if g.m == 0 {
		return 0, invalidParam(g.name(), "zero value Golomb is not usable")
	}
	q, r := g.split(n)
	l, err := unaryLen(g.name(), q)
	if err != nil {
		return 0, err
	}
	if g.cut != 0 && r < g.cut {
		return l + int(g.width) - 1, nil
	}
	return l + int(g.width), nil
}

func (g Golomb) Min() uint64 { return 0 }

func (g Golomb) Scheme() Scheme { return Scheme{Name: g.name(), Param: int64(g.m)} }

func (g Golomb) split(n uint64) (q, r uint64) {
	if g.cut == 0 {
		return n >> g.shift, n & (g.m - 1)
	}
	return n / g.m, n % g.m
}

func (g Golomb) name() string {
	if g.rice {
		return NameRice
	}
	return NameGolomb
}
