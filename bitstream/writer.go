package bitstream

import "strings"

// Writer is an in-memory Sink. The zero value is ready to use.
type Writer struct {
	buf   []byte
	nbits int
}

var _ Sink = (*Writer)(nil)

// NewWriter returns a Writer with room for sizeHint bits before it grows.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, (sizeHint+7)/8)}
}

func (w *Writer) WriteBit(bit uint8) error {
	idx := w.nbits >> 3
	if idx == len(w.buf) {
		w.buf = append(w.buf, 0)
	}
	if bit&1 == 1 {
		w.buf[idx] |= 0x80 >> (w.nbits & 7)
	}
	w.nbits++
	return nil
}

func (w *Writer) WriteBits(v uint64, width uint8) error {
	if width > MaxWidth {
		return ErrWidth
	}
	v &= mask(width)
	n := int(width)
	for n > 0 {
		idx := w.nbits >> 3
		if idx == len(w.buf) {
			w.buf = append(w.buf, 0)
		}
		// Fill the current byte from its highest free bit downwards.
		free := 8 - w.nbits&7
		take := min(free, n)
		chunk := byte(v>>(n-take)) & byte(1<<take-1)
		w.buf[idx] |= chunk << (free - take)
		w.nbits += take
		n -= take
	}
	return nil
}

// Len returns the number of bits written.
func (w *Writer) Len() int { return w.nbits }

// Bytes returns the written bits packed into bytes. Bits past Len in the
// final byte are zero. The slice aliases the Writer's buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Reader returns a Reader positioned at the first written bit and bounded by Len.
func (w *Writer) Reader() *Reader { return NewReaderBits(w.buf, w.nbits) }

// Reset discards all bits but keeps the allocated buffer.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.nbits = 0
}

// String renders the written bits as '0' and '1' characters.
func (w *Writer) String() string {
	var sb strings.Builder
	sb.Grow(w.nbits)
	for i := 0; i < w.nbits; i++ {
		if w.buf[i>>3]&(0x80>>(i&7)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
