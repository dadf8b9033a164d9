package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// CBOR is a Codec that serializes Blocks using fxamacker/cbor, with integer
// map keys 1..6.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
//
// Use deterministic=true for canonical encoding (RFC 8949 Core Deterministic)
// when the bytes are hashed or compared. Otherwise
// PreferredUnsortedEncOptions are used.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec = CBOR{}

// NewCBOR constructs a CBOR codec. Decoding rejects duplicate map keys.
func NewCBOR(deterministic bool) (CBOR, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}

	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	dm, err := (cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}).DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
// Handy for package-level variables in tests/examples.
func MustCBOR(deterministic bool) CBOR {
	c, err := NewCBOR(deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR) Marshal(b Block) ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return c.enc.Marshal(b)
}

func (c CBOR) Unmarshal(p []byte) (Block, error) {
	var b Block
	if err := c.dec.Unmarshal(p, &b); err != nil {
		return Block{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return b, b.Validate()
}
