package intcode

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/unkn0wn-root/intcode/bitstream"
)

type codeCase struct {
	name string
	code Code
	max  uint64 // largest value worth sampling; unary parts grow linearly
}

func must[C Code](c C, err error) Code {
	if err != nil {
		panic(err)
	}
	return c
}

func allCodes(t *testing.T) []codeCase {
	t.Helper()
	return []codeCase{
		{"unary", Unary{}, 1 << 11},
		{"gamma", Gamma{}, math.MaxUint64},
		{"delta", Delta{}, math.MaxUint64},
		{"omega", Omega{}, math.MaxUint64},
		{"fibonacci", Fibonacci{}, math.MaxUint64},
		{"golomb:1", must(NewGolomb(1)), 1 << 11},
		{"golomb:3", must(NewGolomb(3)), 1 << 14},
		{"golomb:10", must(NewGolomb(10)), 1 << 17},
		{"golomb:2^40+3", must(NewGolomb(1<<40+3)), 1 << 52},
		{"golomb:maxint64", must(NewGolomb(math.MaxInt64)), math.MaxUint64},
		{"rice:1", must(NewRice(1)), 1 << 11},
		{"rice:4", must(NewRice(4)), 1 << 16},
		{"rice:2^32", must(NewRiceK(32)), 1 << 44},
		{"rice:2^62", must(NewRiceK(62)), math.MaxUint64},
		{"expgolomb:0", must(NewExpGolomb(0)), math.MaxUint64},
		{"expgolomb:3", must(NewExpGolomb(3)), math.MaxUint64},
		{"expgolomb:64", must(NewExpGolomb(64)), math.MaxUint64},
		{"vlq", VLQ{}, math.MaxUint64},
		{"leb128", LEB128{}, math.MaxUint64},
		{"byte", Byte, 255},
		{"fixed:13", must(NewFixed(13)), 1<<13 - 1},
		{"fixed:64", must(NewFixed(64)), math.MaxUint64},
		{"shift(gamma)", Shift(Gamma{}), math.MaxUint64 - 1},
		{"shift(fibonacci)", Shift(Fibonacci{}), math.MaxUint64 - 1},
	}
}

// samples covers [lo, hi] densely near zero, sparsely up to 2^20, and at
// every power-of-two boundary.
func samples(lo, hi uint64) []uint64 {
	var out []uint64
	add := func(n uint64) {
		if n >= lo && n <= hi {
			out = append(out, n)
		}
	}
	for n := uint64(0); n <= 4096; n++ {
		add(n)
	}
	for n := uint64(4097); n <= 1<<20; n += 997 {
		add(n)
	}
	for k := 1; k < 64; k++ {
		p := uint64(1) << k
		add(p - 1)
		add(p)
		add(p + 1)
	}
	add(math.MaxUint64 - 1)
	add(math.MaxUint64)
	return out
}

func mustBits(t *testing.T, c Code, n uint64) string {
	t.Helper()
	s, err := Bits(c, n)
	if err != nil {
		t.Fatalf("encode %d: %v", n, err)
	}
	return s
}

func TestRoundTrip(t *testing.T) {
	for _, tc := range allCodes(t) {
		t.Run(tc.name, func(t *testing.T) {
			for _, n := range samples(tc.code.Min(), tc.max) {
				b, nbits, err := Encode(tc.code, n)
				if err != nil {
					t.Fatalf("encode %d: %v", n, err)
				}
				want, err := tc.code.Len(n)
				if err != nil {
					t.Fatalf("len %d: %v", n, err)
				}
				if nbits != want {
					t.Fatalf("len %d: Len says %d, wrote %d bits", n, want, nbits)
				}
				got, used, err := Decode(tc.code, b, nbits)
				if err != nil {
					t.Fatalf("decode %d: %v", n, err)
				}
				if got != n || used != nbits {
					t.Fatalf("decode %d: got (%d, %d bits) want (%d, %d bits)", n, got, used, n, nbits)
				}
			}
		})
	}
}

func TestConcatenatedStreamDecodesInOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, tc := range allCodes(t) {
		t.Run(tc.name, func(t *testing.T) {
			values := samples(tc.code.Min(), tc.max)
			rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

			var w bitstream.Writer
			if err := EncodeAll(tc.code, &w, values); err != nil {
				t.Fatal(err)
			}
			got, err := DecodeAll(tc.code, w.Reader())
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(values) {
				t.Fatalf("decoded %d values, want %d", len(got), len(values))
			}
			for i := range values {
				if got[i] != values[i] {
					t.Fatalf("index %d: got %d want %d", i, got[i], values[i])
				}
			}
		})
	}
}

func TestNoCodewordIsPrefixOfAnother(t *testing.T) {
	for _, tc := range allCodes(t) {
		t.Run(tc.name, func(t *testing.T) {
			lo := tc.code.Min()
			hi := min(tc.max, lo+255)
			words := make([]string, 0, hi-lo+1)
			for n := lo; n <= hi; n++ {
				words = append(words, mustBits(t, tc.code, n))
			}
			for i, a := range words {
				for j, b := range words {
					if i != j && strings.HasPrefix(b, a) {
						t.Fatalf("codeword %q for %d is a prefix of %q for %d", a, lo+uint64(i), b, lo+uint64(j))
					}
				}
			}
		})
	}
}

func TestUniversalCodeLengthsAreMonotonic(t *testing.T) {
	for _, c := range []Code{Gamma{}, Delta{}, Omega{}, Fibonacci{}} {
		t.Run(c.Scheme().Name, func(t *testing.T) {
			prev := 0
			check := func(n uint64) {
				l, err := c.Len(n)
				if err != nil {
					t.Fatalf("len %d: %v", n, err)
				}
				if l < prev {
					t.Fatalf("len(%d) = %d shorter than previous %d", n, l, prev)
				}
				prev = l
			}
			for n := uint64(1); n <= 1<<16; n++ {
				check(n)
			}
			for k := 17; k < 64; k++ {
				p := uint64(1) << k
				check(p - 1)
				check(p)
				check(p + 1)
			}
			check(math.MaxUint64)
		})
	}
}

func TestTruncatedCodewordsAreMalformed(t *testing.T) {
	for _, tc := range allCodes(t) {
		t.Run(tc.name, func(t *testing.T) {
			lo := tc.code.Min()
			for _, n := range []uint64{lo, lo + 1, 5, 300, 1 << 11, 1<<40 + 7, math.MaxUint64 - 1} {
				if n < lo || n > tc.max {
					continue
				}
				b, nbits, err := Encode(tc.code, n)
				if err != nil {
					t.Fatal(err)
				}
				for cut := 0; cut < nbits; cut++ {
					got, _, err := Decode(tc.code, b, cut)
					if !errors.Is(err, ErrMalformedInput) || !errors.Is(err, bitstream.ErrEndOfStream) {
						t.Fatalf("value %d cut at %d/%d bits: got (%d, %v), want malformed", n, cut, nbits, got, err)
					}
				}
			}
		})
	}
}

func TestOutOfDomainValuesAreRejected(t *testing.T) {
	cases := []struct {
		code Code
		n    uint64
	}{
		{Gamma{}, 0},
		{Delta{}, 0},
		{Omega{}, 0},
		{Fibonacci{}, 0},
		{Byte, 256},
		{must(NewFixed(3)), 8},
		{Shift(Gamma{}), math.MaxUint64},
	}
	for _, tc := range cases {
		var w bitstream.Writer
		if err := tc.code.Encode(&w, tc.n); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("%s encode %d: expected ErrOutOfRange, got %v", tc.code.Scheme(), tc.n, err)
		}
		if w.Len() != 0 {
			t.Fatalf("%s encode %d: wrote %d bits before failing", tc.code.Scheme(), tc.n, w.Len())
		}
		if _, err := tc.code.Len(tc.n); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("%s len %d: expected ErrOutOfRange, got %v", tc.code.Scheme(), tc.n, err)
		}
	}
}

func TestOverflowingCodewords(t *testing.T) {
	cases := []struct {
		name string
		code Code
		bits string
	}{
		{"gamma prefix", Gamma{}, strings.Repeat("1", 64) + "0"},
		{"delta length", Delta{}, "1111110_000001"},
		{"omega group", Omega{}, strings.Repeat("1", 23)},
		{"fibonacci past last term", Fibonacci{}, strings.Repeat("0", 92) + "10"},
		{"fibonacci sum", Fibonacci{}, strings.Repeat("0", 87) + "101011"},
		{"rice quotient", must(NewRiceK(62)), "11110" + strings.Repeat("0", 62)},
		{"golomb quotient", must(NewGolomb(1<<62+1)), "11110" + strings.Repeat("0", 62)},
		{"expgolomb prefix", must(NewExpGolomb(0)), strings.Repeat("1", 65)},
		{"expgolomb carry", must(NewExpGolomb(0)), strings.Repeat("1", 64) + "0" + strings.Repeat("0", 63) + "1"},
		{"expgolomb shift", must(NewExpGolomb(3)), strings.Repeat("1", 63) + "0" + strings.Repeat("1", 63) + "000"},
		{"vlq", VLQ{}, strings.Repeat("11111111", 10) + "01111111"},
		{"leb128", LEB128{}, strings.Repeat("11111111", 9) + "00000010"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := tc.code.Decode(bitstream.MustParse(tc.bits))
			if !errors.Is(err, ErrOverflow) {
				t.Fatalf("got (%d, %v), want ErrOverflow", n, err)
			}
		})
	}
}

func TestExpGolombTopValueAtOrderZero(t *testing.T) {
	c := must(NewExpGolomb(0))
	want := strings.Repeat("1", 64) + "0" + strings.Repeat("0", 64)
	if got := mustBits(t, c, math.MaxUint64); got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestDecodeErrorNamesCode(t *testing.T) {
	_, err := Delta{}.Decode(bitstream.MustParse("11"))
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T %v", err, err)
	}
	if de.Code != NameDelta || de.Field != "prefix" {
		t.Fatalf("got code=%q field=%q", de.Code, de.Field)
	}
	if !strings.Contains(err.Error(), "delta prefix") {
		t.Fatalf("message lacks context: %v", err)
	}
}

func TestDecodeAllRejectsTrailingGarbage(t *testing.T) {
	r := bitstream.MustParse("1010" + "11")
	got, err := DecodeAll(Gamma{}, r)
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
	if len(got) != 2 || got[0] != 3 || got[1] != 1 {
		t.Fatalf("decoded prefix %v, want [3 1]", got)
	}
}

func TestStreamSinkAndSource(t *testing.T) {
	values := []uint64{1, 2, 3, 1000, 1 << 40, math.MaxUint64}
	codes := []Code{Gamma{}, Delta{}, Omega{}, Fibonacci{}, VLQ{}}

	var buf bytes.Buffer
	sw := bitstream.NewStreamWriter(&buf)
	for _, c := range codes {
		if err := EncodeAll(c, sw, values); err != nil {
			t.Fatal(err)
		}
	}
	if err := sw.Close(); err != nil {
		t.Fatal(err)
	}

	sr := bitstream.NewStreamReader(bytes.NewReader(buf.Bytes()))
	for _, c := range codes {
		got, err := DecodeN(c, sr, len(values))
		if err != nil {
			t.Fatalf("%s: %v", c.Scheme(), err)
		}
		for i := range values {
			if got[i] != values[i] {
				t.Fatalf("%s index %d: got %d want %d", c.Scheme(), i, got[i], values[i])
			}
		}
	}
	if sr.Bits() != sw.Bits() {
		t.Fatalf("read %d bits, wrote %d", sr.Bits(), sw.Bits())
	}
}

func TestConcurrentDecodesShareBytes(t *testing.T) {
	values := samples(1, 1<<20)
	var w bitstream.Writer
	if err := EncodeAll(Delta{}, &w, values); err != nil {
		t.Fatal(err)
	}
	data, nbits := w.Bytes(), w.Len()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := DecodeAll(Delta{}, bitstream.NewReaderBits(data, nbits))
			if err != nil {
				errs <- err
				return
			}
			for i := range values {
				if got[i] != values[i] {
					errs <- errors.New("value mismatch")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}
