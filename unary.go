package intcode

import (
	"math"

	"github.com/unkn0wn-root/intcode/bitstream"
)

// Unary codes n >= 0 as n one-bits followed by a zero:
//
//	0 => 0
//	1 => 10
//	2 => 110
//	3 => 1110
//
// Gamma, delta, Golomb, Rice and Exp-Golomb embed this same convention.
type Unary struct{}

var _ Code = Unary{}

func (Unary) Encode(w bitstream.Sink, n uint64) error {
	if _, err := unaryLen(NameUnary, n); err != nil {
		return err
	}
	return writeUnary(w, n)
}

func (Unary) Decode(r bitstream.Source) (uint64, error) {
	n, err := readUnary(r, math.MaxUint64)
	if err != nil {
		return 0, truncated(NameUnary, "run", err)
	}
	return n, nil
}

func (Unary) Len(n uint64) (int, error) { return unaryLen(NameUnary, n) }
func (Unary) Min() uint64               { return 0 }
func (Unary) Scheme() Scheme            { return Scheme{Name: NameUnary} }
