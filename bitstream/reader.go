package bitstream

import (
	"fmt"
	"strings"
)

// Reader is a Source over a byte slice with an explicit bit cursor.
// Readers never mutate the slice, so any number of them may decode the same
// bytes concurrently.
type Reader struct {
	data []byte
	pos  int // next bit to read
	end  int // bit length of the stream
}

var _ Source = (*Reader)(nil)

// NewReader reads every bit of b.
func NewReader(b []byte) *Reader {
	return &Reader{data: b, end: len(b) * 8}
}

// NewReaderBits reads the first nbits bits of b. nbits is clamped to
// [0, 8*len(b)].
func NewReaderBits(b []byte, nbits int) *Reader {
	nbits = max(0, min(nbits, len(b)*8))
	return &Reader{data: b, end: nbits}
}

func (r *Reader) ReadBit() (uint8, error) {
	if r.pos >= r.end {
		return 0, ErrEndOfStream
	}
	bit := (r.data[r.pos>>3] >> (7 - r.pos&7)) & 1
	r.pos++
	return bit, nil
}

func (r *Reader) ReadBits(width uint8) (uint64, error) {
	if width > MaxWidth {
		return 0, ErrWidth
	}
	n := int(width)
	if r.end-r.pos < n {
		return 0, ErrEndOfStream
	}
	var v uint64
	for n > 0 {
		avail := 8 - r.pos&7
		take := min(avail, n)
		b := (uint64(r.data[r.pos>>3]) >> (avail - take)) & (1<<take - 1)
		v = v<<take | b
		r.pos += take
		n -= take
	}
	return v, nil
}

// Pos returns the number of bits consumed so far.
func (r *Reader) Pos() int { return r.pos }

// Len returns the bit length of the stream.
func (r *Reader) Len() int { return r.end }

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int { return r.end - r.pos }

// Seek moves the cursor to bit pos.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > r.end {
		return fmt.Errorf("bitstream: seek %d outside [0, %d]", pos, r.end)
	}
	r.pos = pos
	return nil
}

// Parse builds a Reader from a string of '0' and '1' characters. Spaces and
// underscores are ignored so fields can be grouped: "110_01".
func Parse(s string) (*Reader, error) {
	var w Writer
	for i, c := range s {
		switch c {
		case '0', '1':
			_ = w.WriteBit(uint8(c - '0'))
		case ' ', '_':
		default:
			return nil, fmt.Errorf("bitstream: invalid bit %q at offset %d", c, i)
		}
	}
	return w.Reader(), nil
}

// MustParse is like Parse but panics on malformed input. Meant for tests and
// package-level fixtures.
func MustParse(s string) *Reader {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// String renders the unread bits as '0' and '1' characters.
func (r *Reader) String() string {
	var sb strings.Builder
	sb.Grow(r.Remaining())
	for i := r.pos; i < r.end; i++ {
		sb.WriteByte('0' + (r.data[i>>3]>>(7-i&7))&1)
	}
	return sb.String()
}
