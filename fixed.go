package intcode

import "github.com/unkn0wn-root/intcode/bitstream"

// Fixed writes every value as a plain field of a fixed width. It is not
// universal; values of 2^width or more are rejected.
type Fixed struct {
	width uint8
	name  string // empty for NewFixed codes
}

var _ Code = Fixed{}

// Byte is the one-byte-per-value code. It is written as scheme "byte";
// NewFixed(8) codes identically but names itself "fixed:8".
var Byte = Fixed{width: 8, name: NameByte}

// NewFixed returns the fixed-width code for 1 <= width <= 64.
func NewFixed(width int) (Fixed, error) {
	if width < 1 || width > 64 {
		return Fixed{}, invalidParam(NameFixed, "width=%d, want 1 <= width <= 64", width)
	}
	return Fixed{width: uint8(width)}, nil
}

// Width returns the field width in bits.
func (f Fixed) Width() int { return int(f.width) }

func (f Fixed) Encode(w bitstream.Sink, n uint64) error {
	if err := f.check(n); err != nil {
		return err
	}
	return w.WriteBits(n, f.width)
}

func (f Fixed) Decode(r bitstream.Source) (uint64, error) {
	if f.width == 0 {
		return 0, invalidParam(NameFixed, "zero value Fixed is not usable")
	}
	n, err := r.ReadBits(f.width)
	if err != nil {
		return 0, truncated(f.Scheme().Name, "value", err)
	}
	return n, nil
}

func (f Fixed) Len(n uint64) (int, error) {
	if err := f.check(n); err != nil {
		return 0, err
	}
	return int(f.width), nil
}

func (f Fixed) Min() uint64    { return 0 }
func (f Fixed) Scheme() Scheme {
	if f.name == NameByte {
		return Scheme{Name: NameByte}
	}
	return Scheme{Name: NameFixed, Param: int64(f.width)}
}

func (f Fixed) check(n uint64) error {
	if f.width == 0 {
		return invalidParam(NameFixed, "zero value Fixed is not usable")
	}
	if lowBits(n, uint(f.width)) != n {
		return outOfRange(f.Scheme().Name, n)
	}
	return nil
}
