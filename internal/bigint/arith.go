package bigint

import apperrors "github.com/agbru/infinite/internal/errors"

// Add and Sub reuse the in-place code of Mutable through a throwaway copy
// of the receiver. The other operations build a fresh magnitude directly.

// Add returns x + y. NaN absorbs everything, an infinity absorbs any finite
// value, and +∞ + −∞ is NaN.
func (x Int) Add(y Int) Int { return NewMutable(x).Add(y).take() }

// Sub returns x - y, resolved as x + (-y).
func (x Int) Sub(y Int) Int { return NewMutable(x).Sub(y).take() }

// Mul returns x · y. An infinity times 0 is NaN; otherwise the sign of
// an infinite product follows the signs of the operands.
func (x Int) Mul(y Int) Int {
	if o := resolveMul(x, y); o != outFinite {
		return o.value(x)
	}
	return finite(x.neg != y.neg, mul(x.abs(), y.abs()))
}

// MulPow2 returns x · 2^n.
func (x Int) MulPow2(n uint) Int {
	if x.kind != KindFinite {
		return x
	}
	return finite(x.neg, x.abs().shl(n))
}

// DivPow2 returns x / 2^n truncated toward zero.
func (x Int) DivPow2(n uint) Int {
	if x.kind != KindFinite {
		return x
	}
	return finite(x.neg, x.abs().shr(n))
}

// Neg returns -x. NaN is its own negation.
func (x Int) Neg() Int {
	switch x.kind {
	case KindPosInf:
		return negInf
	case KindNegInf:
		return posInf
	case KindNaN:
		return nan
	}
	return finite(!x.neg, x.abs().clone())
}

// Abs returns |x|. Both infinities map to +∞.
func (x Int) Abs() Int {
	switch x.kind {
	case KindNegInf:
		return posInf
	case KindFinite:
		if x.neg {
			return finite(false, x.abs().clone())
		}
	}
	return x
}

// Divide returns the whole part and remainder of x ÷ y using the automatic
// strategy. The whole part is truncated toward zero and the remainder is the
// non-negative magnitude left over, so x = y·Whole + sign(x)·Remainder.
//
// Division by zero yields NaN for both parts. A finite value divided by an
// infinity is 0 with |x| left over; an infinity divided by a non-zero finite
// value is a signed infinity with a NaN remainder.
func (x Int) Divide(y Int) Quotient { return divideInts(x, y, StrategyAuto) }

// DivideWith is Divide with an explicit strategy.
func (x Int) DivideWith(y Int, s Strategy) Quotient { return divideInts(x, y, s) }

// DivideDropRemainder returns the whole part of x ÷ y.
func (x Int) DivideDropRemainder(y Int) Int { return divideInts(x, y, StrategyAuto).Whole }

// DivideReturnRemainder returns the remainder of x ÷ y.
func (x Int) DivideReturnRemainder(y Int) Int { return divideInts(x, y, StrategyAuto).Remainder }

// DivideExact returns x ÷ y and fails with an ArithmeticError when the
// remainder is not zero. Non-finite quotients are returned as is.
func (x Int) DivideExact(y Int) (Int, error) {
	q := divideInts(x, y, StrategyAuto)
	if q.Remainder.IsFinite() && !q.Remainder.IsZero() {
		return nan, apperrors.ArithmeticError{Op: "DivideExact", Message: "remainder " + q.Remainder.String() + " is not zero"}
	}
	return q.Whole, nil
}

// Pow returns x^e by repeated squaring. x^0 is 1 for every x except NaN.
func (x Int) Pow(e uint) Int { return pow(x, e) }

func pow(x Int, e uint) Int {
	switch x.kind {
	case KindNaN:
		return nan
	case KindPosInf, KindNegInf:
		if e == 0 {
			return one
		}
		if x.kind == KindNegInf && e%2 == 1 {
			return negInf
		}
		return posInf
	}
	result := natOne
	base := x.abs()
	for k := e; k > 0; k >>= 1 {
		if k&1 == 1 {
			result = mul(result, base)
		}
		if k > 1 {
			base = mul(base, base)
		}
	}
	return finite(x.neg && e%2 == 1, result)
}
