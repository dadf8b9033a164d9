package codec

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the Block message:
//
//	message Block {
//	  string scheme = 1;
//	  sint64 param  = 2;
//	  bool   gaps   = 3;
//	  uint64 count  = 4;
//	  uint64 bits   = 5;
//	  bytes  data   = 6;
//	}
const (
	fieldScheme protowire.Number = 1 + iota
	fieldParam
	fieldGaps
	fieldCount
	fieldBits
	fieldData
)

// Protobuf writes Blocks in protobuf wire format, so other languages can read
// them with a generated message for the schema above. Zero fields are omitted
// and unknown fields are skipped on decode.
type Protobuf struct{}

var _ Codec = Protobuf{}

func (Protobuf) Marshal(b Block) ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	var p []byte
	p = protowire.AppendTag(p, fieldScheme, protowire.BytesType)
	p = protowire.AppendString(p, b.Scheme)
	if b.Param != 0 {
		p = protowire.AppendTag(p, fieldParam, protowire.VarintType)
		p = protowire.AppendVarint(p, protowire.EncodeZigZag(b.Param))
	}
	if b.Gaps {
		p = protowire.AppendTag(p, fieldGaps, protowire.VarintType)
		p = protowire.AppendVarint(p, protowire.EncodeBool(true))
	}
	if b.Count != 0 {
		p = protowire.AppendTag(p, fieldCount, protowire.VarintType)
		p = protowire.AppendVarint(p, uint64(b.Count))
	}
	if b.Bits != 0 {
		p = protowire.AppendTag(p, fieldBits, protowire.VarintType)
		p = protowire.AppendVarint(p, uint64(b.Bits))
	}
	if len(b.Data) != 0 {
		p = protowire.AppendTag(p, fieldData, protowire.BytesType)
		p = protowire.AppendBytes(p, b.Data)
	}
	return p, nil
}

func (Protobuf) Unmarshal(p []byte) (Block, error) {
	var b Block
	for len(p) > 0 {
		num, typ, n := protowire.ConsumeTag(p)
		if n < 0 {
			return Block{}, wireErr(n)
		}
		p = p[n:]

		switch {
		case num == fieldScheme && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(p)
			if n < 0 {
				return Block{}, wireErr(n)
			}
			b.Scheme, p = v, p[n:]
		case num == fieldData && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(p)
			if n < 0 {
				return Block{}, wireErr(n)
			}
			b.Data, p = v, p[n:]
		case num >= fieldParam && num <= fieldBits && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(p)
			if n < 0 {
				return Block{}, wireErr(n)
			}
			p = p[n:]
			switch num {
			case fieldParam:
				b.Param = protowire.DecodeZigZag(v)
			case fieldGaps:
				b.Gaps = protowire.DecodeBool(v)
			case fieldCount, fieldBits:
				if v > maxBits {
					return Block{}, fmt.Errorf("%w: field %d = %d", ErrCorrupt, num, v)
				}
				if num == fieldCount {
					b.Count = int(v)
				} else {
					b.Bits = int(v)
				}
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, p)
			if n < 0 {
				return Block{}, wireErr(n)
			}
			p = p[n:]
		}
	}
	return b, b.Validate()
}

func wireErr(n int) error {
	return fmt.Errorf("%w: %w", ErrCorrupt, protowire.ParseError(n))
}
