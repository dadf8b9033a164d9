// Package pack stores integer lists as codec.Blocks coded with one of the
// intcode schemes.
//
// A Packer is immutable once built and safe for concurrent use. With Gaps
// set, lists must be non-decreasing and are stored as the first value
// followed by the differences, which keeps codewords short for sorted ids.
package pack

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/unkn0wn-root/intcode"
	"github.com/unkn0wn-root/intcode/bitstream"
	"github.com/unkn0wn-root/intcode/codec"
)

var (
	ErrNotSorted      = errors.New("intcode/pack: values not sorted")
	ErrTooMany        = errors.New("intcode/pack: too many values")
	ErrSchemeMismatch = errors.New("intcode/pack: block scheme mismatch")
	ErrTrailingBits   = errors.New("intcode/pack: trailing bits after last value")
)

type Options struct {
	// Scheme selects the code; required.
	Scheme intcode.Scheme
	// Gaps stores a non-decreasing list as first value plus deltas.
	Gaps bool
	// MaxCount bounds Pack input and Unpack output; 0 means DefaultMaxCount.
	MaxCount int
	Logger   Logger
	Hooks    Hooks
}

type Packer struct {
	code     intcode.Code
	scheme   intcode.Scheme
	gaps     bool
	maxCount int
	log      Logger
	hooks    Hooks
}

func New(opts Options) (*Packer, error) {
	if opts.MaxCount < 0 {
		return nil, fmt.Errorf("%w: MaxCount=%d", intcode.ErrInvalidParameter, opts.MaxCount)
	}
	code, err := intcode.New(opts.Scheme)
	if err != nil {
		return nil, err
	}
	return &Packer{
		// zero values and zero gaps must be representable
		code:     intcode.Shift(code),
		scheme:   code.Scheme(),
		gaps:     opts.Gaps,
		maxCount: coalesce(opts.MaxCount, DefaultMaxCount),
		log:      coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:    coalesce[Hooks](opts.Hooks, NopHooks{}),
	}, nil
}

// Scheme returns the canonical scheme written into every block.
func (p *Packer) Scheme() intcode.Scheme { return p.scheme }

// Pack codes values into a block. The block's Data is freshly allocated.
func (p *Packer) Pack(values []uint64) (codec.Block, error) {
	name := p.scheme.String()
	if len(values) > p.maxCount {
		p.hooks.PackRejected(name, len(values), ReasonTooMany)
		return codec.Block{}, fmt.Errorf("%w: %d > %d", ErrTooMany, len(values), p.maxCount)
	}

	w := bitstream.NewWriter(len(values))
	var prev uint64
	for i, v := range values {
		x := v
		if p.gaps {
			if v < prev {
				p.hooks.PackRejected(name, len(values), ReasonNotSorted)
				return codec.Block{}, fmt.Errorf("%w: values[%d]=%d < values[%d]=%d", ErrNotSorted, i, v, i-1, prev)
			}
			x, prev = v-prev, v
		}
		if err := p.code.Encode(w, x); err != nil {
			p.hooks.PackRejected(name, len(values), ReasonEncode)
			return codec.Block{}, fmt.Errorf("values[%d]: %w", i, err)
		}
	}

	blk := codec.Block{
		Scheme: p.scheme.Name,
		Param:  p.scheme.Param,
		Gaps:   p.gaps,
		Count:  len(values),
		Bits:   w.Len(),
		Data:   w.Bytes(),
	}
	p.log.Debug("packed block", Fields{"scheme": name, "count": blk.Count, "bits": blk.Bits})
	return blk, nil
}

// Unpack decodes every value of blk. The block must have been produced by a
// Packer with the same scheme and Gaps setting.
func (p *Packer) Unpack(blk codec.Block) ([]uint64, error) {
	values, reason, err := p.unpack(blk)
	if err != nil {
		p.hooks.BlockRejected(p.scheme.String(), reason, err)
		p.log.Warn("block rejected", Fields{"scheme": p.scheme.String(), "reason": reason, "err": err})
		return nil, err
	}
	p.log.Debug("unpacked block", Fields{"scheme": p.scheme.String(), "count": len(values), "bits": blk.Bits})
	return values, nil
}

func (p *Packer) unpack(blk codec.Block) ([]uint64, string, error) {
	if err := blk.Validate(); err != nil {
		return nil, ReasonCorrupt, err
	}
	if blk.Scheme != p.scheme.Name || blk.Param != p.scheme.Param || blk.Gaps != p.gaps {
		return nil, ReasonSchemeMismatch, fmt.Errorf("%w: block %s:%d gaps=%t, packer %s gaps=%t",
			ErrSchemeMismatch, blk.Scheme, blk.Param, blk.Gaps, p.scheme, p.gaps)
	}
	if blk.Count > p.maxCount {
		return nil, ReasonTooMany, fmt.Errorf("%w: %d > %d", ErrTooMany, blk.Count, p.maxCount)
	}
	r := bitstream.NewReaderBits(blk.Data, blk.Bits)
	out := make([]uint64, blk.Count)
	var acc uint64
	for i := range out {
		x, err := p.code.Decode(r)
		if err != nil {
			return nil, ReasonDecode, fmt.Errorf("values[%d]: %w", i, err)
		}
		if p.gaps {
			var carry uint64
			acc, carry = bits.Add64(acc, x, 0)
			if carry != 0 {
				return nil, ReasonDecode, fmt.Errorf("values[%d]: %w: running sum", i, intcode.ErrOverflow)
			}
			x = acc
		}
		out[i] = x
	}
	if n := r.Remaining(); n != 0 {
		return nil, ReasonTrailingBits, fmt.Errorf("%w: %d", ErrTrailingBits, n)
	}
	return out, "", nil
}
