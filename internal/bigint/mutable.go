package bigint

// Mutable is an integer that is updated in place. Each method stores its
// result in the receiver and returns the receiver, so calls chain:
//
//	m := bigint.NewMutable(bigint.FromInt64(3))
//	m.Add(bigint.FromInt64(4)).Mul(bigint.Two())
//
// When an operand or the receiver is non-finite, the receiver becomes the
// value chosen by the rule tables and keeps no magnitude storage.
//
// The zero value is ready to use and holds 0. A Mutable is not safe for
// concurrent use.
type Mutable struct {
	v Int
	// owned reports whether v.mag is private to m and may be overwritten.
	owned bool
}

// NewMutable returns a Mutable holding a private copy of x.
func NewMutable(x Int) *Mutable {
	return new(Mutable).Set(x)
}

// Set copies x into m.
func (m *Mutable) Set(x Int) *Mutable {
	if x.kind != KindFinite {
		m.setShared(x)
		return m
	}
	m.v = Int{neg: x.neg, mag: m.storage().set(x.abs())}
	m.owned = true
	return m
}

// SetInt64 sets m to v.
func (m *Mutable) SetInt64(v int64) *Mutable {
	u := uint64(v)
	if v < 0 {
		u = ^u + 1
	}
	m.v = Int{neg: v < 0, mag: m.storage().setUint64(u)}
	m.owned = true
	return m
}

// Int returns the current value as an immutable Int. Later changes to m do
// not affect the returned value.
func (m *Mutable) Int() Int {
	if m.v.kind != KindFinite {
		return m.v
	}
	return finite(m.v.neg, m.v.abs().clone())
}

// take returns the current value and gives up m's storage. Used by Int.Add
// and Int.Sub, which own a throwaway Mutable.
func (m *Mutable) take() Int {
	v := m.v
	m.v, m.owned = Int{}, false
	if v.kind != KindFinite {
		return v
	}
	return finite(v.neg, v.abs())
}

// String renders the current value like Int.String.
func (m *Mutable) String() string { return m.v.String() }

// storage returns m's magnitude when it may be overwritten, nil otherwise.
func (m *Mutable) storage() nat {
	if m.owned {
		return m.v.mag
	}
	return nil
}

// own makes sure m's magnitude is backed by storage nobody else sees.
func (m *Mutable) own() {
	if !m.owned || len(m.v.mag) == 0 {
		m.v.mag = m.v.abs().clone()
		m.owned = true
	}
}

// setFinite stores a magnitude that m now owns.
func (m *Mutable) setFinite(neg bool, mag nat) {
	mag = mag.norm()
	if mag.isZero() {
		neg = false
	}
	m.v = Int{neg: neg, mag: mag}
	m.owned = true
}

// setShared stores a value whose storage may be shared.
func (m *Mutable) setShared(x Int) {
	m.v, m.owned = x, false
}

// Add sets m to m + y.
func (m *Mutable) Add(y Int) *Mutable {
	if o := resolveAdd(m.v, y); o != outFinite {
		m.setShared(o.value(m.v))
		return m
	}
	m.own()
	neg, mag := addSigned(m.v.mag, m.v.neg, m.v.mag, y.neg, y.abs())
	m.setFinite(neg, mag)
	return m
}

// Sub sets m to m - y.
func (m *Mutable) Sub(y Int) *Mutable {
	if o := resolveSub(m.v, y); o != outFinite {
		m.setShared(o.value(m.v))
		return m
	}
	m.own()
	neg, mag := addSigned(m.v.mag, m.v.neg, m.v.mag, !y.neg, y.abs())
	m.setFinite(neg, mag)
	return m
}

// addSigned computes (xneg, x) + (yneg, y) into z's storage. With opposite
// signs the smaller magnitude is subtracted from the larger, which decides
// the sign.
func addSigned(z nat, xneg bool, x nat, yneg bool, y nat) (bool, nat) {
	if xneg == yneg {
		return xneg, z.add(x, y)
	}
	if x.cmp(y) >= 0 {
		return xneg, z.sub(x, y)
	}
	return yneg, z.sub(y, x)
}

// Mul sets m to m · y.
func (m *Mutable) Mul(y Int) *Mutable {
	if o := resolveMul(m.v, y); o != outFinite {
		m.setShared(o.value(m.v))
		return m
	}
	m.setFinite(m.v.neg != y.neg, mul(m.v.abs(), y.abs()))
	return m
}

// MulPow2 sets m to m · 2^n. Infinities and NaN are unchanged.
func (m *Mutable) MulPow2(n uint) *Mutable {
	if m.v.kind != KindFinite {
		return m
	}
	m.setFinite(m.v.neg, m.v.abs().shl(n))
	return m
}

// DivPow2 sets m to m / 2^n, truncated toward zero. Infinities
// and NaN are unchanged.
func (m *Mutable) DivPow2(n uint) *Mutable {
	if m.v.kind != KindFinite {
		return m
	}
	m.setFinite(m.v.neg, m.v.abs().shr(n))
	return m
}

// Neg sets m to -m. NaN stays NaN.
func (m *Mutable) Neg() *Mutable {
	switch m.v.kind {
	case KindPosInf:
		m.setShared(negInf)
	case KindNegInf:
		m.setShared(posInf)
	case KindFinite:
		m.own()
		m.setFinite(!m.v.neg, m.v.mag)
	}
	return m
}

// Abs sets m to |m|. Both infinities become +∞.
func (m *Mutable) Abs() *Mutable {
	switch m.v.kind {
	case KindNegInf:
		m.setShared(posInf)
	case KindFinite:
		m.v.neg = false
	}
	return m
}

// DivideDropRemainder sets m to the whole part of m ÷ y.
func (m *Mutable) DivideDropRemainder(y Int) *Mutable {
	q := divideInts(m.v, y, StrategyAuto)
	m.setShared(q.Whole)
	return m
}

// DivideReturnRemainder sets m to the remainder of m ÷ y.
func (m *Mutable) DivideReturnRemainder(y Int) *Mutable {
	q := divideInts(m.v, y, StrategyAuto)
	m.setShared(q.Remainder)
	return m
}

// Pow sets m to m^e. Any value to the power 0 is 1, except NaN.
func (m *Mutable) Pow(e uint) *Mutable {
	m.setShared(pow(m.v, e))
	return m
}

// Compare compares m with y like Int.Cmp.
func (m *Mutable) Compare(y Int) int { return m.v.Cmp(y) }
