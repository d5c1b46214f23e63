package bigint

import (
	"fmt"
	"math/bits"
)

// Strategy selects the algorithm used for finite division. Every strategy
// produces the same quotient and remainder.
type Strategy int

const (
	// StrategyAuto picks the cheapest strategy for the operands.
	StrategyAuto Strategy = iota
	// StrategyNative uses machine division when both operands fit in 64
	// bits, and falls back to long division otherwise.
	StrategyNative
	// StrategyBinarySearch searches for the quotient between powers of two.
	StrategyBinarySearch
	// StrategyLongDivision is bit-by-bit long division.
	StrategyLongDivision
)

// Strategies lists the concrete strategies in a stable order.
var Strategies = []Strategy{StrategyNative, StrategyBinarySearch, StrategyLongDivision}

// String returns the name used for the strategy in flags and reports.
func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyNative:
		return "native"
	case StrategyBinarySearch:
		return "binary"
	case StrategyLongDivision:
		return "long"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range append([]Strategy{StrategyAuto}, Strategies...) {
		if s.String() == name {
			return s, nil
		}
	}
	return StrategyAuto, fmt.Errorf("unknown division strategy %q", name)
}

// binarySearchWindow bounds the quotient size, in bits, for which the auto
// strategy prefers binary search over long division.
const binarySearchWindow = wordBits

// divmod divides n by d (d != 0) and returns the quotient and remainder.
// Common trailing zero words and bits are removed from both operands first;
// the remainder is shifted back by the same amount at the end.
func divmod(n, d nat, s Strategy) (q, r nat) {
	if d.isZero() {
		panic("bigint: division by zero")
	}
	if n.cmp(d) < 0 {
		return nat{0}, n.clone()
	}
	zw := min(n.trailingZeroWords(), d.trailingZeroWords())
	n, d = n[zw:], d[zw:]
	zb := uint(min(bits.TrailingZeros32(n[0]), bits.TrailingZeros32(d[0])))
	if zb > 0 {
		n, d = n.shr(zb), d.shr(zb)
	}
	shift := uint(zw)*wordBits + zb

	switch pickStrategy(n, d, s) {
	case StrategyNative:
		q, r = nativeDivide(n, d)
	case StrategyBinarySearch:
		q, r = binarySearchDivide(n, d)
	default:
		q, r = longDivide(n, d)
	}
	if shift > 0 {
		r = r.shl(shift)
	}
	return q, r
}

func pickStrategy(n, d nat, s Strategy) Strategy {
	fits := len(n) <= 2 && len(d) <= 2
	switch s {
	case StrategyNative:
		if fits {
			return StrategyNative
		}
		return StrategyLongDivision
	case StrategyBinarySearch, StrategyLongDivision:
		return s
	}
	switch {
	case fits:
		return StrategyNative
	case n.bitLen()-d.bitLen() < binarySearchWindow:
		return StrategyBinarySearch
	}
	return StrategyLongDivision
}

func nativeDivide(n, d nat) (q, r nat) {
	nv, _ := n.uint64()
	dv, _ := d.uint64()
	return nat(nil).setUint64(nv / dv), nat(nil).setUint64(nv % dv)
}

// binarySearchDivide finds the largest q with q·d <= n. With k the
// difference in bit length, q lies in [2^(k-1), 2^(k+1)).
func binarySearchDivide(n, d nat) (q, r nat) {
	k := n.bitLen() - d.bitLen()
	lo := nat{0}
	if k > 0 {
		lo = natOne.shl(uint(k - 1))
	}
	hi := natOne.shl(uint(k + 1))
	// lo·d <= n < hi·d
	var mid nat
	for {
		mid = mid.add(lo, natOne)
		if mid.cmp(hi) >= 0 {
			break
		}
		mid = mid.add(lo, hi).shr(1)
		if mul(mid, d).cmp(n) <= 0 {
			lo = mid.clone()
		} else {
			hi = mid.clone()
		}
	}
	return lo, nat(nil).sub(n, mul(lo, d))
}

// longDivide divides bit by bit, most significant bit first.
func longDivide(n, d nat) (q, r nat) {
	q = make(nat, len(n))
	r = nat{0}
	for i := n.bitLen() - 1; i >= 0; i-- {
		r = r.shlBit(n.bit(i))
		if r.cmp(d) >= 0 {
			r = r.sub(r, d)
			q[i/wordBits] |= 1 << uint(i%wordBits)
		}
	}
	return q.norm(), r.norm()
}

// Quotient is the result of a division: the whole part, truncated toward
// zero, and the non-negative magnitude of what is left over. For finite
// operands x = y·Whole + sign(x)·Remainder and 0 <= Remainder < |y|.
type Quotient struct {
	Whole     Int
	Remainder Int
}

// String renders the quotient as "whole r remainder".
func (q Quotient) String() string {
	return q.Whole.String() + " r " + q.Remainder.String()
}

// Equal reports whether both parts of q and p are equal.
func (q Quotient) Equal(p Quotient) bool {
	return q.Whole.Equal(p.Whole) && q.Remainder.Equal(p.Remainder)
}

// divideInts applies the division rule table, then divides the magnitudes.
func divideInts(x, y Int, s Strategy) Quotient {
	rule := resolveDiv(x, y)
	if rule.whole != outFinite {
		return Quotient{Whole: rule.whole.value(x), Remainder: rule.rem.value(x)}
	}
	xm, ym := x.abs(), y.abs()
	switch {
	case ym.isOne():
		return Quotient{Whole: finite(x.neg != y.neg, xm.clone()), Remainder: zero}
	case xm.cmp(ym) == 0:
		return Quotient{Whole: finite(x.neg != y.neg, nat{1}), Remainder: zero}
	}
	q, r := divmod(xm, ym, s)
	return Quotient{
		Whole:     finite(x.neg != y.neg, q),
		Remainder: finite(false, r),
	}
}
