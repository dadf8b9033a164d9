package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/unkn0wn-root/intcode"
)

const (
	version  byte = 1
	flagGaps byte = 1 << 0
	flagMask      = flagGaps
)

var magic4 = [...]byte{'I', 'C', 'D', 'B'}

// Raw is the compact binary framing for Blocks:
//
//	magic(4) | ver(1) | flags(1) | slen(1) | scheme(slen)
//	param(zigzag vlq) | count(vlq) | bits(vlq) | xxhash64(8 be) | data
//
// The checksum covers everything before it and the data. Unmarshal returns
// Data as a subslice of its input; no bytes may follow the data.
type Raw struct{}

var _ Codec = Raw{}

func (Raw) Marshal(b Block) ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	buf := make([]byte, 0, 4+3+len(b.Scheme)+3*intcode.MaxVarintLen+8+len(b.Data))
	buf = append(buf, magic4[:]...)
	buf = append(buf, version)
	var flags byte
	if b.Gaps {
		flags |= flagGaps
	}
	buf = append(buf, flags, byte(len(b.Scheme)))
	buf = append(buf, b.Scheme...)
	buf = intcode.AppendVLQ(buf, intcode.ZigZag(b.Param))
	buf = intcode.AppendVLQ(buf, uint64(b.Count))
	buf = intcode.AppendVLQ(buf, uint64(b.Bits))

	buf = binary.BigEndian.AppendUint64(buf, checksum(buf, b.Data))
	return append(buf, b.Data...), nil
}

func (Raw) Unmarshal(p []byte) (Block, error) {
	const hdr = 4 + 1 + 1 + 1
	if len(p) < hdr || !bytes.Equal(p[:4], magic4[:]) || p[4] != version || p[5]&^flagMask != 0 {
		return Block{}, ErrCorrupt
	}
	b := Block{Gaps: p[5]&flagGaps != 0}
	off := hdr
	slen := int(p[6])
	if slen == 0 || slen > len(p)-off {
		return Block{}, ErrCorrupt
	}
	b.Scheme = string(p[off : off+slen])
	off += slen

	var fields [3]uint64
	for i := range fields {
		v, n, err := intcode.ConsumeVLQ(p[off:])
		if err != nil {
			return Block{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		fields[i] = v
		off += n
	}
	if fields[1] > maxBits || fields[2] > maxBits {
		return Block{}, ErrCorrupt
	}
	b.Param = intcode.UnZigZag(fields[0])
	b.Count = int(fields[1])
	b.Bits = int(fields[2])

	if off+8 > len(p) {
		return Block{}, ErrCorrupt
	}
	head, sum := p[:off], binary.BigEndian.Uint64(p[off:off+8])
	off += 8

	dlen := (b.Bits + 7) / 8
	if dlen != len(p)-off { // rejects both short and trailing data
		return Block{}, ErrCorrupt
	}
	b.Data = p[off:]
	if checksum(head, b.Data) != sum {
		return Block{}, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	return b, b.Validate()
}

func checksum(head, data []byte) uint64 {
	d := xxhash.New()
	_, _ = d.Write(head)
	_, _ = d.Write(data)
	return d.Sum64()
}
