package codec

import "fmt"

// Limit wraps another codec to enforce a maximum allowed payload size
// at Unmarshal time. Marshal is forwarded to Inner unchanged.
// If MaxDecode <= 0, size limiting is disabled.
type Limit struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner Codec
	// MaxDecode is the maximum permitted payload length in bytes. Larger
	// payloads fail with ErrTooLarge without invoking Inner.
	MaxDecode int
}

var _ Codec = Limit{}

func (c Limit) Marshal(b Block) ([]byte, error) { return c.Inner.Marshal(b) }

func (c Limit) Unmarshal(p []byte) (Block, error) {
	if c.MaxDecode > 0 && len(p) > c.MaxDecode {
		return Block{}, fmt.Errorf("%w: %d > %d", ErrTooLarge, len(p), c.MaxDecode)
	}
	return c.Inner.Unmarshal(p)
}
