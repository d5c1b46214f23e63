// Package bigint implements unbounded signed integers extended with the
// non-finite values NaN, +∞ and −∞.
//
// The package offers two flavors of the same arithmetic:
//
//   - Int is an immutable value. Every operation returns a new Int and leaves
//     its operands untouched, so Ints may be shared freely between goroutines.
//   - Mutable holds an Int that it updates in place. Its methods return the
//     receiver so calls can be chained. A Mutable must not be used by more
//     than one goroutine at a time.
//
// Non-finite operands never cause a panic: each operation resolves them
// through fixed rule tables (see Add, Mul and Divide), and NaN absorbs
// everything. Only projections into bounded targets (Int64, Uint64, unary
// text, oversized renderings) report errors.
//
// Magnitudes are stored as chains of 32-bit words, least significant first.
// Division offers several strategies (see Strategy) that all produce the same
// answer and can be cross-checked against each other.
package bigint
