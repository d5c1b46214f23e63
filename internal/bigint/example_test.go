package bigint_test

import (
	"fmt"

	"github.com/agbru/infinite/internal/bigint"
)

func ExampleInt_Add() {
	x := bigint.FromInt64(8589934592).Add(bigint.FromInt64(5))
	fmt.Println(x, x.Words())
	// Output: 8589934597 [5 2]
}

func ExampleInt_Divide() {
	q := bigint.FromInt64(-11).Divide(bigint.FromInt64(5))
	fmt.Println(q.Whole, q.Remainder)
	fmt.Println(bigint.FromInt64(10).Divide(bigint.FromInt64(5)))
	fmt.Println(bigint.FromInt64(10).Divide(bigint.Zero()))
	// Output:
	// -2 1
	// 2 r 0
	// ∉ℤ r ∉ℤ
}

func ExampleInt_GCD() {
	fmt.Println(bigint.FromInt64(12).GCD(bigint.FromInt64(10)))
	fmt.Println(bigint.Zero().GCD(bigint.Zero()))
	// Output:
	// 2
	// ∞
}

func ExampleInt_IsPrime() {
	fmt.Println(bigint.FromInt64(1024).IsPrime(), bigint.FromInt64(199).IsPrime())
	// Output: false true
}

func ExampleInt_Text() {
	x := bigint.One().MulPow2(64)
	hex, _ := x.Text(16)
	dec, _ := x.Text(10)
	fmt.Println(hex)
	fmt.Println(dec)
	fmt.Println(x)
	// Output:
	// 10000000000000000
	// 18446744073709551616
	// …8446744073709551616
}

func ExampleParse() {
	x, err := bigint.Parse("-zz", 36)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(x)
	_, err = bigint.Parse("12x", 10)
	fmt.Println(err)
	// Output:
	// -1295
	// cannot parse "12x" in radix 10: invalid digit 'x'
}

func ExampleMutable() {
	m := bigint.NewMutable(bigint.FromInt64(3))
	m.Add(bigint.FromInt64(4)).Mul(bigint.Two()).MulPow2(10)
	fmt.Println(m)
	m.Mul(bigint.NegInf())
	fmt.Println(m)
	// Output:
	// 14336
	// -∞
}
