package bigint

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	apperrors "github.com/agbru/infinite/internal/errors"
)

// Kind distinguishes finite integers from the non-finite values.
type Kind uint8

const (
	// KindFinite is an ordinary integer.
	KindFinite Kind = iota
	// KindNaN is "not a number", the result of undefined operations.
	KindNaN
	// KindPosInf is positive infinity.
	KindPosInf
	// KindNegInf is negative infinity.
	KindNegInf
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFinite:
		return "finite"
	case KindNaN:
		return "NaN"
	case KindPosInf:
		return "+Inf"
	case KindNegInf:
		return "-Inf"
	}
	return "unknown"
}

// Int is an immutable, unbounded signed integer, or one of the non-finite
// values NaN, +∞ and −∞. The zero value is the finite integer 0.
type Int struct {
	kind Kind
	neg  bool
	mag  nat
}

var (
	zero   = Int{mag: natZero}
	one    = Int{mag: natOne}
	two    = Int{mag: natTwo}
	nan    = Int{kind: KindNaN}
	posInf = Int{kind: KindPosInf}
	negInf = Int{kind: KindNegInf}
)

// Zero returns the integer 0.
func Zero() Int { return zero }

// One returns the integer 1.
func One() Int { return one }

// Two returns the integer 2.
func Two() Int { return two }

// NaN returns the not-a-number value.
func NaN() Int { return nan }

// PosInf returns positive infinity.
func PosInf() Int { return posInf }

// NegInf returns negative infinity.
func NegInf() Int { return negInf }

// Inf returns +∞ when sign >= 0 and −∞ otherwise.
func Inf(sign int) Int {
	if sign >= 0 {
		return posInf
	}
	return negInf
}

// finite wraps a magnitude the caller no longer uses. Zero is never negative,
// and the small constants come back as the shared instances.
func finite(neg bool, mag nat) Int {
	mag = mag.norm()
	if mag.isZero() {
		return zero
	}
	if !neg && len(mag) == 1 {
		switch mag[0] {
		case 1:
			return one
		case 2:
			return two
		}
	}
	return Int{neg: neg, mag: mag}
}

// FromInt64 returns the Int with the value v.
func FromInt64(v int64) Int {
	u := uint64(v)
	if v < 0 {
		u = ^u + 1
	}
	return finite(v < 0, nat(nil).setUint64(u))
}

// FromUint64 returns the Int with the value u.
func FromUint64(u uint64) Int {
	return finite(false, nat(nil).setUint64(u))
}

// FromWords builds an Int from a sign and a magnitude given as 32-bit words,
// least significant first. The words are copied.
func FromWords(neg bool, words []uint32) Int {
	if len(words) == 0 {
		return zero
	}
	return finite(neg, nat(words).clone())
}

// abs returns the magnitude, treating the zero value as 0.
func (x Int) abs() nat {
	if len(x.mag) == 0 {
		return natZero
	}
	return x.mag
}

// Kind reports which kind of value x is.
func (x Int) Kind() Kind { return x.kind }

// IsFinite reports whether x is an ordinary integer.
func (x Int) IsFinite() bool { return x.kind == KindFinite }

// IsNaN reports whether x is NaN.
func (x Int) IsNaN() bool { return x.kind == KindNaN }

// IsInf reports whether x is +∞ or −∞.
func (x Int) IsInf() bool { return x.kind == KindPosInf || x.kind == KindNegInf }

// IsZero reports whether x is the finite integer 0.
func (x Int) IsZero() bool { return x.kind == KindFinite && x.abs().isZero() }

// Sign returns -1, 0 or +1 for negative, zero and positive values
// (infinities included). NaN has sign 0.
func (x Int) Sign() int {
	switch x.kind {
	case KindPosInf:
		return 1
	case KindNegInf:
		return -1
	case KindNaN:
		return 0
	}
	switch {
	case x.abs().isZero():
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// Words returns a copy of the magnitude's words, least significant first.
// Non-finite values have no words.
func (x Int) Words() []uint32 {
	if x.kind != KindFinite {
		return nil
	}
	return []uint32(x.abs().clone())
}

// BitLen returns the number of bits in the magnitude of x; 0 has length 0.
// Non-finite values report 0.
func (x Int) BitLen() int {
	if x.kind != KindFinite {
		return 0
	}
	return x.abs().bitLen()
}

// Int64 returns x as an int64, or an ArithmeticError when x is not finite or
// does not fit.
func (x Int) Int64() (int64, error) {
	if x.kind != KindFinite {
		return 0, apperrors.ArithmeticError{Op: "Int64", Message: x.kind.String() + " has no int64 value"}
	}
	u, ok := x.abs().uint64()
	switch {
	case !ok:
	case !x.neg && u <= math.MaxInt64:
		return int64(u), nil
	case x.neg && u <= 1<<63:
		return -int64(u), nil
	}
	return 0, apperrors.ArithmeticError{Op: "Int64", Message: "value overflows int64"}
}

// Uint64 returns x as a uint64, or an ArithmeticError when x is not a finite
// non-negative value that fits.
func (x Int) Uint64() (uint64, error) {
	if x.kind != KindFinite {
		return 0, apperrors.ArithmeticError{Op: "Uint64", Message: x.kind.String() + " has no uint64 value"}
	}
	if x.neg {
		return 0, apperrors.ArithmeticError{Op: "Uint64", Message: "value is negative"}
	}
	u, ok := x.abs().uint64()
	if !ok {
		return 0, apperrors.ArithmeticError{Op: "Uint64", Message: "value overflows uint64"}
	}
	return u, nil
}

// Float64 returns the nearest float64 to x. Infinities map to ±Inf, NaN to
// NaN, and finite values too large for a float64 to ±Inf.
func (x Int) Float64() float64 {
	switch x.kind {
	case KindNaN:
		return math.NaN()
	case KindPosInf:
		return math.Inf(1)
	case KindNegInf:
		return math.Inf(-1)
	}
	mag := x.abs()
	var f float64
	for i := len(mag) - 1; i >= 0; i-- {
		f = f*(1<<wordBits) + float64(mag[i])
	}
	if x.neg {
		f = -f
	}
	return f
}

// rank orders kinds for comparison: −∞ < finite < +∞ < NaN.
func (x Int) rank() int {
	switch x.kind {
	case KindNegInf:
		return 0
	case KindFinite:
		return 1
	case KindPosInf:
		return 2
	}
	return 3
}

// Cmp compares x and y and returns -1, 0 or +1. The order is total:
// −∞ < every finite value < +∞ < NaN, and NaN compares equal to NaN.
func (x Int) Cmp(y Int) int {
	rx, ry := x.rank(), y.rank()
	if rx != ry {
		if rx < ry {
			return -1
		}
		return 1
	}
	if x.kind != KindFinite {
		return 0
	}
	xs, ys := x.Sign(), y.Sign()
	if xs != ys {
		if xs < ys {
			return -1
		}
		return 1
	}
	c := x.abs().cmp(y.abs())
	if x.neg {
		return -c
	}
	return c
}

// Equal reports whether x and y are the same value. Unlike IEEE floats,
// NaN equals NaN.
func (x Int) Equal(y Int) bool { return x.Cmp(y) == 0 }

// Hash returns a hash of x consistent with Equal.
func (x Int) Hash() uint64 {
	buf := make([]byte, 0, 2+4*len(x.mag))
	buf = append(buf, byte(x.kind))
	if x.kind != KindFinite {
		return xxhash.Sum64(buf)
	}
	if x.Sign() < 0 {
		buf = append(buf, '-')
	}
	for _, w := range x.abs() {
		buf = binary.LittleEndian.AppendUint32(buf, w)
	}
	return xxhash.Sum64(buf)
}
