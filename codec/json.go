package codec

import (
	"encoding/json"
	"fmt"
)

// JSON encodes Blocks as JSON objects; Data is base64 as usual for []byte.
type JSON struct{}

var _ Codec = JSON{}

func (JSON) Marshal(b Block) ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(b)
}

func (JSON) Unmarshal(p []byte) (Block, error) {
	var b Block
	if err := json.Unmarshal(p, &b); err != nil {
		return Block{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return b, b.Validate()
}
