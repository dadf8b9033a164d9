package intcode_test

import (
	"fmt"

	"github.com/unkn0wn-root/intcode"
	"github.com/unkn0wn-root/intcode/bitstream"
)

func Example() {
	var w bitstream.Writer
	_ = intcode.Gamma{}.Encode(&w, 5)
	rice, _ := intcode.NewRice(4)
	_ = rice.Encode(&w, 9)
	fmt.Println(w.String())

	r := w.Reader()
	a, _ := intcode.Gamma{}.Decode(r)
	b, _ := rice.Decode(r)
	fmt.Println(a, b, r.Remaining())
	// Output:
	// 1100111001
	// 5 9 0
}

func ExampleFibonacci() {
	for n := uint64(1); n <= 5; n++ {
		s, _ := intcode.Bits(intcode.Fibonacci{}, n)
		fmt.Println(n, s)
	}
	// Output:
	// 1 11
	// 2 011
	// 3 0011
	// 4 1011
	// 5 00011
}

func ExampleAppendVLQ() {
	fmt.Printf("% x\n", intcode.AppendVLQ(nil, 300))
	fmt.Printf("% x\n", intcode.AppendLEB128(nil, 300))
	// Output:
	// 82 2c
	// ac 02
}

func ExampleParseScheme() {
	sc, _ := intcode.ParseScheme("golomb:3")
	c, _ := intcode.New(sc)
	for n := uint64(0); n < 4; n++ {
		s, _ := intcode.Bits(c, n)
		fmt.Println(n, s)
	}
	// Output:
	// 0 00
	// 1 010
	// 2 011
	// 3 100
}
