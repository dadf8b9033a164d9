// Package intcode implements prefix-free integer codes over a bit stream:
// unary, Elias gamma, delta and omega, Fibonacci, Golomb and Rice,
// exponential Golomb, VLQ and LEB128, and fixed-width fields.
//
// Every code satisfies the same contract. Encoding n and decoding the result
// returns n and consumes exactly the bits that were written, so codewords can
// be concatenated and read back in order from a single stream.
//
// Conventions:
//
//   - Bits are written most significant first (see package bitstream).
//   - unary(n) is n one-bits followed by a zero; codes that embed unary use
//     the same convention.
//   - Gamma, delta, omega and Fibonacci start at 1. Shift gives a zero-based
//     view; ZigZag and EncodeSigned cover int64.
//   - Malformed or truncated input yields a *DecodeError that matches
//     ErrMalformedInput (and bitstream.ErrEndOfStream when the source ran dry);
//     values past 64 bits match ErrOverflow.
//
// Example:
//
//	var w bitstream.Writer
//	_ = intcode.Gamma{}.Encode(&w, 5) // 110_01
//	n, _ := intcode.Gamma{}.Decode(w.Reader())
//
//	rice, _ := intcode.NewRice(4)
//	_ = rice.Encode(&w, 9) // 110_01
//
// Packed sequences with a self-describing header live in package pack; the
// block serializations (raw, JSON, CBOR, msgpack, protobuf) in package codec.
package intcode
