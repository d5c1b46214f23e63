package bigint

import "math/bits"

// nat is an unsigned magnitude held as a chain of 32-bit words, least
// significant word first. A normalized nat has no zero word above its most
// significant non-zero word; zero is the single word 0.
//
// The methods follow the z.op(x, y) convention: the result is written into
// z's storage when it is large enough and returned. z may alias x or y unless
// a method says otherwise.
type nat []uint32

const (
	wordBits = 32
	// extraWords is the spare capacity reserved when a nat must grow.
	extraWords = 4
)

var (
	natZero = nat{0}
	natOne  = nat{1}
	natTwo  = nat{2}
)

// make returns a nat of length n, reusing z's storage when possible.
// The contents are unspecified.
func (z nat) make(n int) nat {
	if n <= cap(z) {
		return z[:n]
	}
	return make(nat, n, n+extraWords)
}

// grow extends z to length n, keeping its words and zero-filling new ones.
func (z nat) grow(n int) nat {
	if n <= len(z) {
		return z
	}
	if n <= cap(z) {
		old := len(z)
		z = z[:n]
		clear(z[old:])
		return z
	}
	nz := make(nat, n, n+extraWords)
	copy(nz, z)
	return nz
}

// norm drops high zero words, keeping at least one word.
func (z nat) norm() nat {
	i := len(z)
	for i > 1 && z[i-1] == 0 {
		i--
	}
	if i == 0 {
		return nat{0}
	}
	return z[:i]
}

func (x nat) clone() nat {
	z := make(nat, len(x))
	copy(z, x)
	return z
}

func (z nat) set(x nat) nat {
	z = z.make(len(x))
	copy(z, x)
	return z
}

func (z nat) setWord(w uint32) nat {
	z = z.make(1)
	z[0] = w
	return z
}

func (z nat) setUint64(v uint64) nat {
	if v>>wordBits == 0 {
		return z.setWord(uint32(v))
	}
	z = z.make(2)
	z[0] = uint32(v)
	z[1] = uint32(v >> wordBits)
	return z
}

func (x nat) isZero() bool { return len(x) == 0 || (len(x) == 1 && x[0] == 0) }

func (x nat) isOne() bool { return len(x) == 1 && x[0] == 1 }

// uint64 returns x as a uint64 and whether it fits.
func (x nat) uint64() (uint64, bool) {
	switch len(x) {
	case 0:
		return 0, true
	case 1:
		return uint64(x[0]), true
	case 2:
		return uint64(x[1])<<wordBits | uint64(x[0]), true
	}
	return 0, false
}

func (x nat) cmp(y nat) int {
	m, n := len(x), len(y)
	if m != n {
		if m < n {
			return -1
		}
		return 1
	}
	for i := m - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// bitLen returns the position of the highest set bit plus one; zero has length 0.
func (x nat) bitLen() int {
	if x.isZero() {
		return 0
	}
	top := len(x) - 1
	return top*wordBits + bits.Len32(x[top])
}

// bit returns bit i of x.
func (x nat) bit(i int) uint32 {
	w := i / wordBits
	if w >= len(x) {
		return 0
	}
	return x[w] >> uint(i%wordBits) & 1
}

// trailingZeroWords counts the zero words below the lowest non-zero word.
func (x nat) trailingZeroWords() int {
	i := 0
	for i < len(x)-1 && x[i] == 0 {
		i++
	}
	return i
}

// trailingZeroBits counts the zero bits below the lowest set bit. x must not be zero.
func (x nat) trailingZeroBits() uint {
	i := x.trailingZeroWords()
	return uint(i*wordBits + bits.TrailingZeros32(x[i]))
}

func (z nat) add(x, y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	m, n := len(x), len(y)
	z = z.make(m + 1)
	var carry uint64
	for i := 0; i < m; i++ {
		s := uint64(x[i]) + carry
		if i < n {
			s += uint64(y[i])
		}
		z[i] = uint32(s)
		carry = s >> wordBits
	}
	z[m] = uint32(carry)
	return z.norm()
}

// sub sets z = x - y. The caller guarantees x >= y.
func (z nat) sub(x, y nat) nat {
	m, n := len(x), len(y)
	z = z.make(m)
	var borrow uint64
	for i := 0; i < m; i++ {
		var yi uint64
		if i < n {
			yi = uint64(y[i])
		}
		d := uint64(x[i]) - yi - borrow
		z[i] = uint32(d)
		borrow = d >> 63
	}
	if borrow != 0 {
		panic("bigint: nat subtraction underflow")
	}
	return z.norm()
}

// mulAddWord sets z = x*y + r.
func (z nat) mulAddWord(x nat, y, r uint32) nat {
	m := len(x)
	z = z.make(m + 1)
	carry := uint64(r)
	for i := 0; i < m; i++ {
		t := uint64(x[i])*uint64(y) + carry
		z[i] = uint32(t)
		carry = t >> wordBits
	}
	z[m] = uint32(carry)
	return z.norm()
}

// addAt adds x·2^(32·s) into z in place.
func (z nat) addAt(x nat, s int) nat {
	z = z.grow(len(x) + s)
	var carry uint64
	for i, w := range x {
		t := uint64(z[s+i]) + uint64(w) + carry
		z[s+i] = uint32(t)
		carry = t >> wordBits
	}
	for k := s + len(x); carry != 0; k++ {
		if k == len(z) {
			z = append(z, 0)
		}
		t := uint64(z[k]) + carry
		z[k] = uint32(t)
		carry = t >> wordBits
	}
	return z
}

// mul returns x*y in fresh storage. For every word of y the whole of x is
// scaled by that word and added into the total shifted by the word's position.
func mul(x, y nat) nat {
	if x.isZero() || y.isZero() {
		return nat{0}
	}
	if len(x) < len(y) {
		x, y = y, x
	}
	total := make(nat, len(x)+len(y))
	var partial nat
	for j, w := range y {
		if w == 0 {
			continue
		}
		partial = partial.mulAddWord(x, w, 0)
		total = total.addAt(partial, j)
	}
	return total.norm()
}

// shl returns x << s in fresh storage.
func (x nat) shl(s uint) nat {
	if x.isZero() {
		return nat{0}
	}
	ws, bs := int(s/wordBits), s%wordBits
	z := make(nat, len(x)+ws+1)
	if bs == 0 {
		copy(z[ws:], x)
		return z.norm()
	}
	var carry uint32
	for i, w := range x {
		z[ws+i] = w<<bs | carry
		carry = w >> (wordBits - bs)
	}
	z[ws+len(x)] = carry
	return z.norm()
}

// shr returns x >> s in fresh storage.
func (x nat) shr(s uint) nat {
	ws, bs := int(s/wordBits), s%wordBits
	if ws >= len(x) {
		return nat{0}
	}
	n := len(x) - ws
	z := make(nat, n)
	if bs == 0 {
		copy(z, x[ws:])
		return z.norm()
	}
	for i := 0; i < n; i++ {
		w := x[ws+i] >> bs
		if ws+i+1 < len(x) {
			w |= x[ws+i+1] << (wordBits - bs)
		}
		z[i] = w
	}
	return z.norm()
}

// shlBit shifts z left by one bit in place and ORs b into the lowest bit.
func (z nat) shlBit(b uint32) nat {
	carry := b
	for i, w := range z {
		z[i] = w<<1 | carry
		carry = w >> (wordBits - 1)
	}
	if carry != 0 {
		z = append(z, carry)
	}
	return z
}

// modWord returns x mod d for a single-word divisor d != 0.
func (x nat) modWord(d uint32) uint32 {
	var r uint64
	for i := len(x) - 1; i >= 0; i-- {
		r = (r<<wordBits | uint64(x[i])) % uint64(d)
	}
	return uint32(r)
}

// modUint64 returns x mod d for a 64-bit divisor d != 0.
func (x nat) modUint64(d uint64) uint64 {
	var r uint64
	for i := len(x) - 1; i >= 0; i-- {
		// r < d, so (r, w) / d never overflows.
		hi, lo := bits.Mul64(r, 1<<wordBits)
		lo, c := bits.Add64(lo, uint64(x[i]), 0)
		hi += c
		_, r = bits.Div64(hi, lo, d)
	}
	return r
}
