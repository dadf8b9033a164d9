package intcode

import (
	"fmt"
	"strconv"
	"strings"
)

// Scheme names.
const (
	NameUnary     = "unary"
	NameGamma     = "gamma"
	NameDelta     = "delta"
	NameOmega     = "omega"
	NameFibonacci = "fibonacci"
	NameGolomb    = "golomb"
	NameRice      = "rice"
	NameExpGolomb = "expgolomb"
	NameVLQ       = "vlq"
	NameLEB128    = "leb128"
	NameFixed     = "fixed"
	NameByte      = "byte"
)

// Scheme identifies a code and its parameter: m for golomb and rice, k for
// expgolomb, the width for fixed. Param is zero for parameterless codes.
type Scheme struct {
	Name  string
	Param int64
}

// String renders the scheme as name or name:param.
func (s Scheme) String() string {
	if parameterized(s.Name) {
		return s.Name + ":" + strconv.FormatInt(s.Param, 10)
	}
	return s.Name
}

// ParseScheme parses the String form of a scheme.
func ParseScheme(s string) (Scheme, error) {
	name, param, hasParam := strings.Cut(strings.TrimSpace(s), ":")
	name = strings.ToLower(name)
	if _, ok := builders[name]; !ok {
		return Scheme{}, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
	if parameterized(name) != hasParam {
		if hasParam {
			return Scheme{}, invalidParam(name, "takes no parameter")
		}
		return Scheme{}, invalidParam(name, "requires a parameter")
	}
	sc := Scheme{Name: name}
	if hasParam {
		p, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			return Scheme{}, invalidParam(name, "parameter %q: %v", param, err)
		}
		sc.Param = p
	}
	return sc, nil
}

// New builds the code a Scheme names.
func New(s Scheme) (Code, error) {
	build, ok := builders[s.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, s.Name)
	}
	return build(s.Param)
}

// MustNew is like New but panics on error.
func MustNew(s Scheme) Code {
	c, err := New(s)
	if err != nil {
		panic(err)
	}
	return c
}

var builders = map[string]func(p int64) (Code, error){
	NameUnary:     bare(NameUnary, Unary{}),
	NameGamma:     bare(NameGamma, Gamma{}),
	NameDelta:     bare(NameDelta, Delta{}),
	NameOmega:     bare(NameOmega, Omega{}),
	NameFibonacci: bare(NameFibonacci, Fibonacci{}),
	NameVLQ:       bare(NameVLQ, VLQ{}),
	NameLEB128:    bare(NameLEB128, LEB128{}),
	NameByte:      bare(NameByte, Byte),
	NameGolomb: func(p int64) (Code, error) {
		return built(NewGolomb(p))
	},
	NameRice: func(p int64) (Code, error) {
		return built(NewRice(p))
	},
	NameExpGolomb: func(p int64) (Code, error) {
		if p < 0 || p > 64 {
			return nil, invalidParam(NameExpGolomb, "k=%d, want 0 <= k <= 64", p)
		}
		return built(NewExpGolomb(int(p)))
	},
	NameFixed: func(p int64) (Code, error) {
		if p < 1 || p > 64 {
			return nil, invalidParam(NameFixed, "width=%d, want 1 <= width <= 64", p)
		}
		return built(NewFixed(int(p)))
	},
}

func bare(name string, c Code) func(int64) (Code, error) {
	return func(p int64) (Code, error) {
		if p != 0 {
			return nil, invalidParam(name, "takes no parameter, got %d", p)
		}
		return c, nil
	}
}

// built drops the concrete type of a constructor result. A failed
// constructor yields a nil Code rather than a typed zero value.
func built[C Code](c C, err error) (Code, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

func parameterized(name string) bool {
	switch name {
	case NameGolomb, NameRice, NameExpGolomb, NameFixed:
		return true
	}
	return false
}
