package intcode

import (
	"math/bits"
	"sort"

	"github.com/unkn0wn-root/intcode/bitstream"
)

// fibCount is the number of Fibonacci numbers F(2)..F(93) that fit in a uint64.
const fibCount = 92

// fib[i] = F(i+2): 1, 2, 3, 5, 8, ...
var fib = func() (f [fibCount]uint64) {
	f[0], f[1] = 1, 2
	for i := 2; i < fibCount; i++ {
		f[i] = f[i-1] + f[i-2]
	}
	return f
}()

// Fibonacci codes n >= 1 by its Zeckendorf representation, smallest term
// first, followed by an extra one. Zeckendorf digits never hold two adjacent
// ones, so the first "11" in the stream marks the end of the codeword.
//
//	1 => 11
//	2 => 011
//	3 => 0011
//	4 => 1011
//	11 => 001011
type Fibonacci struct{}

var _ Code = Fibonacci{}

func (Fibonacci) Encode(w bitstream.Sink, n uint64) error {
	if n == 0 {
		return outOfRange(NameFibonacci, n)
	}
	var digits [fibCount]uint8
	top := fibTop(n)
	for i, rem := top, n; rem > 0; i-- {
		if fib[i] <= rem {
			digits[i] = 1
			rem -= fib[i]
		}
	}
	for i := 0; i <= top; i++ {
		if err := w.WriteBit(digits[i]); err != nil {
			return err
		}
	}
	return w.WriteBit(1)
}

func (Fibonacci) Decode(r bitstream.Source) (uint64, error) {
	var n uint64
	var prev uint8
	for i := 0; ; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, truncated(NameFibonacci, "digits", err)
		}
		if bit == 1 && prev == 1 {
			return n, nil
		}
		// Past the last representable term only the terminator may follow.
		if i >= fibCount {
			return 0, overflow(NameFibonacci, "digits")
		}
		if bit == 1 {
			var carry uint64
			n, carry = bits.Add64(n, fib[i], 0)
			if carry != 0 {
				return 0, overflow(NameFibonacci, "digits")
			}
		}
		prev = bit
	}
}

func (Fibonacci) Len(n uint64) (int, error) {
	if n == 0 {
		return 0, outOfRange(NameFibonacci, n)
	}
	return fibTop(n) + 2, nil
}

func (Fibonacci) Min() uint64    { return 1 }
func (Fibonacci) Scheme() Scheme { return Scheme{Name: NameFibonacci} }

// fibTop returns the index of the largest Fibonacci term <= n.
func fibTop(n uint64) int {
	return sort.Search(fibCount, func(i int) bool { return fib[i] > n }) - 1
}
