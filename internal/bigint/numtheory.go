package bigint

// sqrtProbeGap is the gap below which SqrtCeil stops bisecting and probes
// linearly.
const sqrtProbeGap = 4

// GCD returns the greatest common divisor of |x| and |y|. GCD(0, 0) is +∞ by
// convention, GCD(a, 0) is |a|, and any non-finite operand gives NaN.
//
// The finite path is trial division, so its cost grows with the square root
// of the operands' largest prime factor.
func (x Int) GCD(y Int) Int {
	if !x.IsFinite() || !y.IsFinite() {
		return nan
	}
	a, b := x.abs(), y.abs()
	switch {
	case a.isZero() && b.isZero():
		return posInf
	case b.isZero():
		return finite(false, a.clone())
	case a.isZero():
		return finite(false, b.clone())
	case a.isOne() || b.isOne():
		return one
	case a.cmp(b) == 0:
		return finite(false, a.clone())
	}
	return finite(false, gcd(a, b))
}

// gcd handles non-zero, unequal magnitudes.
func gcd(a, b nat) nat {
	// Common factors of two: whole words first, then bits.
	zw := min(a.trailingZeroWords(), b.trailingZeroWords())
	a, b = a[zw:], b[zw:]
	twos := uint(zw) * wordBits
	zb := min(a.trailingZeroBits(), b.trailingZeroBits())
	twos += zb
	// Factors of two left in only one operand are not shared.
	a, b = a.shr(a.trailingZeroBits()), b.shr(b.trailingZeroBits())

	result := nat{1}
	rootA, rootB := sqrtCeil(a), sqrtCeil(b)
	c := nat{3}
	for !a.isOne() && !b.isOne() && c.cmp(rootA) <= 0 && c.cmp(rootB) <= 0 {
		shrunk := false
		for {
			qa, ra := divmod(a, c, StrategyAuto)
			if !ra.isZero() {
				break
			}
			qb, rb := divmod(b, c, StrategyAuto)
			if !rb.isZero() {
				break
			}
			a, b = qa, qb
			result = mul(result, c)
			shrunk = true
		}
		// c may still divide one operand; those factors are not shared.
		if q, ok := divideOut(a, c); ok {
			a, shrunk = q, true
		}
		if q, ok := divideOut(b, c); ok {
			b, shrunk = q, true
		}
		if shrunk {
			rootA, rootB = sqrtCeil(a), sqrtCeil(b)
		}
		c = nat(nil).add(c, natTwo)
	}

	// What is left of a or b has no factor below c. An operand whose root
	// was passed is 1 or prime and is shared only if it divides the other.
	switch {
	case a.isOne() || b.isOne():
	case a.cmp(b) == 0:
		result = mul(result, a)
	case c.cmp(rootA) > 0:
		if _, r := divmod(b, a, StrategyAuto); r.isZero() {
			result = mul(result, a)
		}
	default:
		if _, r := divmod(a, b, StrategyAuto); r.isZero() {
			result = mul(result, b)
		}
	}
	return result.shl(twos)
}

// divideOut removes every factor c from n and reports whether there was one.
func divideOut(n, c nat) (nat, bool) {
	found := false
	for {
		q, r := divmod(n, c, StrategyAuto)
		if !r.isZero() {
			return n, found
		}
		n, found = q, true
	}
}

// LCM returns the least common multiple of |x| and |y|. Any non-finite
// operand gives NaN and a zero operand gives 0.
//
// Two running multiples advance by their own step until they meet, so the
// cost grows with the ratio between the operands.
func (x Int) LCM(y Int) Int {
	if !x.IsFinite() || !y.IsFinite() {
		return nan
	}
	a, b := x.abs(), y.abs()
	if a.isZero() || b.isZero() {
		return zero
	}
	ma, mb := a.clone(), b.clone()
	for c := ma.cmp(mb); c != 0; c = ma.cmp(mb) {
		if c < 0 {
			ma = ma.add(ma, a)
		} else {
			mb = mb.add(mb, b)
		}
	}
	return finite(false, ma)
}

// sieveCursor tracks the next odd multiple of a confirmed prime.
type sieveCursor struct {
	next, step nat
}

// IsPrime reports whether x is a prime number. Non-finite values, negative
// numbers, 0 and 1 are not prime.
//
// Odd candidates up to the ceiling square root of x are walked in order. A
// candidate that no sieve cursor lands on is prime: it gets its own cursor
// and is tried as a divisor of x.
func (x Int) IsPrime() bool {
	if !x.IsFinite() || x.neg {
		return false
	}
	n := x.abs()
	if v, ok := n.uint64(); ok && v < 4 {
		return v >= 2
	}
	if n[0]&1 == 0 {
		return false
	}
	limit := sqrtCeil(n)
	var cursors []sieveCursor
	for c := (nat{3}); c.cmp(limit) <= 0; c = nat(nil).add(c, natTwo) {
		composite := false
		for i := range cursors {
			cur := &cursors[i]
			for cur.next.cmp(c) < 0 {
				cur.next = cur.next.add(cur.next, cur.step)
			}
			if cur.next.cmp(c) == 0 {
				composite = true
			}
		}
		if composite {
			continue
		}
		if _, r := divmod(n, c, StrategyAuto); r.isZero() {
			return false
		}
		cursors = append(cursors, sieveCursor{next: mul(c, c), step: c.shl(1)})
	}
	return true
}

// SqrtCeil returns the smallest r with r² >= x. Negative values, −∞ and NaN
// give NaN; +∞ gives +∞.
func (x Int) SqrtCeil() Int {
	switch {
	case x.kind == KindPosInf:
		return posInf
	case x.kind != KindFinite || x.neg:
		return nan
	}
	return finite(false, sqrtCeil(x.abs()))
}

// SqrtFloor returns the largest r with r² <= x, with the same non-finite
// handling as SqrtCeil.
func (x Int) SqrtFloor() Int {
	switch {
	case x.kind == KindPosInf:
		return posInf
	case x.kind != KindFinite || x.neg:
		return nan
	}
	n := x.abs()
	r := sqrtCeil(n)
	if mul(r, r).cmp(n) > 0 {
		r = nat(nil).sub(r, natOne)
	}
	return finite(false, r)
}

// sqrtCeil estimates the root from the bit length of n-1 rounded up to even:
// hi = 2^(k/2) satisfies hi² >= n and lo = hi/2 satisfies lo² < n. The answer
// lies in (lo, hi] and is found by bisection, then linear probing.
func sqrtCeil(n nat) nat {
	if n.isZero() {
		return nat{0}
	}
	k := nat(nil).sub(n, natOne).bitLen()
	if k%2 == 1 {
		k++
	}
	hi := natOne.shl(uint(k / 2))
	lo := hi.shr(1)
	gap := nat(nil).setWord(sqrtProbeGap)
	for nat(nil).sub(hi, lo).cmp(gap) > 0 {
		mid := nat(nil).add(lo, hi).shr(1)
		if mul(mid, mid).cmp(n) >= 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	r := nat(nil).add(lo, natOne)
	for mul(r, r).cmp(n) < 0 {
		r = r.add(r, natOne)
	}
	return r
}
