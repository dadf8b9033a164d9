package intcode

import (
	"math"

	"github.com/unkn0wn-root/intcode/bitstream"
)

// Shift returns a zero-based view of c: it codes n as n+c.Min(), so codes that
// start at one (gamma, delta, omega, Fibonacci) accept zero. Codes that already
// start at zero are returned unchanged. The view reports the scheme of c.
func Shift(c Code) Code {
	if c.Min() == 0 {
		return c
	}
	return shifted{inner: c, off: c.Min()}
}

type shifted struct {
	inner Code
	off   uint64
}

func (s shifted) Encode(w bitstream.Sink, n uint64) error {
	if n > math.MaxUint64-s.off {
		return outOfRange(s.inner.Scheme().Name, n)
	}
	return s.inner.Encode(w, n+s.off)
}

func (s shifted) Decode(r bitstream.Source) (uint64, error) {
	n, err := s.inner.Decode(r)
	if err != nil {
		return 0, err
	}
	return n - s.off, nil
}

func (s shifted) Len(n uint64) (int, error) {
	if n > math.MaxUint64-s.off {
		return 0, outOfRange(s.inner.Scheme().Name, n)
	}
	return s.inner.Len(n + s.off)
}

func (s shifted) Min() uint64    { return 0 }
func (s shifted) Scheme() Scheme { return s.inner.Scheme() }

// ZigZag maps signed integers onto unsigned ones so that small magnitudes get
// small codes: 0, -1, 1, -2, 2 map to 0, 1, 2, 3, 4.
func ZigZag(v int64) uint64 { return uint64(v<<1) ^ uint64(v>>63) }

// UnZigZag inverts ZigZag.
func UnZigZag(u uint64) int64 { return int64(u>>1) ^ -int64(u&1) }

// EncodeSigned writes v with c through ZigZag and Shift. For one-based codes
// math.MinInt64 maps past the domain and is rejected with ErrOutOfRange.
func EncodeSigned(c Code, w bitstream.Sink, v int64) error {
	return Shift(c).Encode(w, ZigZag(v))
}

// DecodeSigned reads a value written by EncodeSigned.
func DecodeSigned(c Code, r bitstream.Source) (int64, error) {
	u, err := Shift(c).Decode(r)
	if err != nil {
		return 0, err
	}
	return UnZigZag(u), nil
}
