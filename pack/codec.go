package pack

import (
	"github.com/unkn0wn-root/intcode/codec"
)

// Codec turns integer lists into bytes: Packer builds the block, Block
// serializes it. A nil Block means codec.Raw.
type Codec struct {
	Packer *Packer
	Block  codec.Codec
}

func (c Codec) blockCodec() codec.Codec {
	if c.Block == nil {
		return codec.Raw{}
	}
	return c.Block
}

func (c Codec) Encode(values []uint64) ([]byte, error) {
	blk, err := c.Packer.Pack(values)
	if err != nil {
		return nil, err
	}
	return c.blockCodec().Marshal(blk)
}

func (c Codec) Decode(b []byte) ([]uint64, error) {
	blk, err := c.blockCodec().Unmarshal(b)
	if err != nil {
		name := c.Packer.scheme.String()
		c.Packer.hooks.BlockRejected(name, ReasonCorrupt, err)
		c.Packer.log.Warn("block rejected", Fields{"scheme": name, "reason": ReasonCorrupt, "err": err})
		return nil, err
	}
	return c.Packer.Unpack(blk)
}
