// Package codec serializes packed integer blocks.
//
// A Block carries everything needed to decode its payload: the scheme that
// coded the values, whether they are gaps, how many there are and how many
// bits of Data are used. Codec implementations only move Blocks to and from
// bytes; packing values into a Block is done by package pack.
package codec

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrCorrupt reports a payload that does not describe a valid Block.
	ErrCorrupt = errors.New("intcode/codec: corrupt block")
	// ErrTooLarge reports a payload rejected by Limit before decoding.
	ErrTooLarge = errors.New("intcode/codec: payload too large")
)

const (
	// maxSchemeLen bounds the scheme name so it fits the one byte length in Raw.
	maxSchemeLen = 0xFF
	// maxBits bounds Count and Bits so they fit an int on every platform.
	maxBits = math.MaxInt32
)

// Block is a packed sequence of coded integers.
type Block struct {
	Scheme string `json:"scheme" cbor:"1,keyasint" msgpack:"scheme"`
	Param  int64  `json:"param,omitempty" cbor:"2,keyasint,omitempty" msgpack:"param,omitempty"`
	Gaps   bool   `json:"gaps,omitempty" cbor:"3,keyasint,omitempty" msgpack:"gaps,omitempty"`
	Count  int    `json:"count" cbor:"4,keyasint" msgpack:"count"`
	Bits   int    `json:"bits" cbor:"5,keyasint" msgpack:"bits"`
	Data   []byte `json:"data" cbor:"6,keyasint" msgpack:"data"`
}

// Validate checks the structural invariants every codec enforces on decode:
// a named scheme, counts in 0..MaxInt32, at least one bit per value and a Data
// slice exactly long enough to hold Bits bits.
func (b Block) Validate() error {
	switch {
	case b.Scheme == "":
		return fmt.Errorf("%w: empty scheme", ErrCorrupt)
	case len(b.Scheme) > maxSchemeLen:
		return fmt.Errorf("%w: scheme name of %d bytes", ErrCorrupt, len(b.Scheme))
	case b.Count < 0 || b.Bits < 0 || b.Count > maxBits || b.Bits > maxBits:
		return fmt.Errorf("%w: count=%d bits=%d", ErrCorrupt, b.Count, b.Bits)
	case b.Count > b.Bits:
		// every codeword takes at least one bit
		return fmt.Errorf("%w: %d values in %d bits", ErrCorrupt, b.Count, b.Bits)
	case b.Bits > 8*len(b.Data):
		return fmt.Errorf("%w: %d bits in %d bytes", ErrCorrupt, b.Bits, len(b.Data))
	case len(b.Data) != (b.Bits+7)/8:
		return fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(b.Data)-(b.Bits+7)/8)
	}
	return nil
}

// Codec moves Blocks to and from bytes.
type Codec interface {
	Marshal(Block) ([]byte, error)
	Unmarshal([]byte) (Block, error)
}
