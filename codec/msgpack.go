package codec

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack serializes Blocks using vmihailenco/msgpack/v5.
// The zero value is ready to use.
type Msgpack struct{}

var _ Codec = Msgpack{}

func (Msgpack) Marshal(b Block) ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return msgpack.Marshal(b)
}

func (Msgpack) Unmarshal(p []byte) (Block, error) {
	var b Block
	if err := msgpack.Unmarshal(p, &b); err != nil {
		return Block{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return b, b.Validate()
}
