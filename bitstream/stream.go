package bitstream

import (
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// StreamWriter is a Sink over an io.Writer. Bits are buffered until a byte
// completes; call Close to pad the last byte with zeros and flush it.
// Close does not close the underlying writer.
type StreamWriter struct {
	w     *bitio.Writer
	nbits int64
}

var _ Sink = (*StreamWriter)(nil)

func NewStreamWriter(out io.Writer) *StreamWriter {
	return &StreamWriter{w: bitio.NewWriter(out)}
}

func (s *StreamWriter) WriteBit(bit uint8) error {
	if err := s.w.WriteBool(bit&1 == 1); err != nil {
		return errors.Wrap(err, "bitstream: write bit")
	}
	s.nbits++
	return nil
}

func (s *StreamWriter) WriteBits(v uint64, width uint8) error {
	if width > MaxWidth {
		return ErrWidth
	}
	if width == 0 {
		return nil
	}
	// bitio requires bits above width to be clear.
	if err := s.w.WriteBits(v&mask(width), width); err != nil {
		return errors.Wrapf(err, "bitstream: write %d bits", width)
	}
	s.nbits += int64(width)
	return nil
}

// Bits returns the number of bits written, excluding Close padding.
func (s *StreamWriter) Bits() int64 { return s.nbits }

func (s *StreamWriter) Close() error {
	if err := s.w.Close(); err != nil {
		return errors.Wrap(err, "bitstream: flush")
	}
	return nil
}

// StreamReader is a Source over an io.Reader.
//
// Unlike Reader it cannot rewind: a read that hits the end of the underlying
// stream reports ErrEndOfStream, and the partial bits it saw are gone.
type StreamReader struct {
	r     *bitio.Reader
	nbits int64
}

var _ Source = (*StreamReader)(nil)

func NewStreamReader(in io.Reader) *StreamReader {
	return &StreamReader{r: bitio.NewReader(in)}
}

func (s *StreamReader) ReadBit() (uint8, error) {
	b, err := s.r.ReadBool()
	if err != nil {
		return 0, readErr(err)
	}
	s.nbits++
	if b {
		return 1, nil
	}
	return 0, nil
}

func (s *StreamReader) ReadBits(width uint8) (uint64, error) {
	if width > MaxWidth {
		return 0, ErrWidth
	}
	if width == 0 {
		return 0, nil
	}
	v, err := s.r.ReadBits(width)
	if err != nil {
		return 0, readErr(err)
	}
	s.nbits += int64(width)
	return v, nil
}

// Bits returns the number of bits consumed.
func (s *StreamReader) Bits() int64 { return s.nbits }

func readErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrEndOfStream
	}
	return errors.Wrap(err, "bitstream: read")
}
