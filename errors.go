package intcode

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/intcode/bitstream"
)

var (
	// ErrInvalidParameter is returned by constructors for out-of-domain
	// parameters such as Golomb m < 1 or Exp-Golomb k < 0.
	ErrInvalidParameter = errors.New("intcode: invalid parameter")
	// ErrMalformedInput is returned when a codeword is truncated or violates the
	// structure of its code.
	ErrMalformedInput = errors.New("intcode: malformed input")
	// ErrOverflow is returned when a decoded value does not fit in 64 bits.
	ErrOverflow = errors.New("intcode: value overflows 64 bits")
	// ErrOutOfRange is returned when encoding a value outside a code's domain.
	ErrOutOfRange = errors.New("intcode: value outside code domain")
	// ErrUnknownScheme is returned by New and ParseScheme for unregistered names.
	ErrUnknownScheme = errors.New("intcode: unknown scheme")
)

// DecodeError describes a failed decode. Kind is ErrMalformedInput or
// ErrOverflow; Err is the source error that caused it, if any. errors.Is
// matches both, so a truncated codeword satisfies
// errors.Is(err, ErrMalformedInput) and errors.Is(err, bitstream.ErrEndOfStream).
type DecodeError struct {
	Code  string // scheme name
	Field string // part of the codeword being read
	Kind  error
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("intcode: %s %s: %v: %v", e.Code, e.Field, e.Kind, e.Err)
	}
	return fmt.Sprintf("intcode: %s %s: %v", e.Code, e.Field, e.Kind)
}

func (e *DecodeError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// truncated classifies a source error. Running out of bits makes the codeword
// malformed; any other error (I/O on a stream) is passed through untouched.
func truncated(code, field string, err error) error {
	if errors.Is(err, bitstream.ErrEndOfStream) {
		return &DecodeError{Code: code, Field: field, Kind: ErrMalformedInput, Err: err}
	}
	return err
}

func malformed(code, field string) error {
	return &DecodeError{Code: code, Field: field, Kind: ErrMalformedInput}
}

func overflow(code, field string) error {
	return &DecodeError{Code: code, Field: field, Kind: ErrOverflow}
}

func outOfRange(code string, n uint64) error {
	return fmt.Errorf("%w: %s cannot encode %d", ErrOutOfRange, code, n)
}

func invalidParam(code, format string, args ...any) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidParameter, code, fmt.Sprintf(format, args...))
}
