package bigint

// class buckets an operand for the non-finite rule tables.
type class uint8

const (
	classNegInf class = iota
	classNeg
	classZero
	classPos
	classPosInf
	classNaN
	numClasses
)

func classify(x Int) class {
	switch x.kind {
	case KindNaN:
		return classNaN
	case KindPosInf:
		return classPosInf
	case KindNegInf:
		return classNegInf
	}
	switch x.Sign() {
	case -1:
		return classNeg
	case 0:
		return classZero
	}
	return classPos
}

// outcome is the entry of a rule table: either a fixed value or
// outFinite, meaning the ordinary finite algorithm runs.
type outcome uint8

const (
	outFinite outcome = iota
	outNaN
	outPosInf
	outNegInf
	outZero
	outAbsLeft
)

func (o outcome) value(x Int) Int {
	switch o {
	case outNaN:
		return nan
	case outPosInf:
		return posInf
	case outNegInf:
		return negInf
	case outZero:
		return zero
	case outAbsLeft:
		return x.Abs()
	}
	panic("bigint: outcome has no fixed value")
}

const (
	fin = outFinite
	nN  = outNaN
	pI  = outPosInf
	nI  = outNegInf
)

// addRules[x][y] resolves x + y. Rows and columns follow class order:
// −∞, negative, zero, positive, +∞, NaN.
var addRules = [numClasses][numClasses]outcome{
	classNegInf: {nI, nI, nI, nI, nN, nN},
	classNeg:    {nI, fin, fin, fin, pI, nN},
	classZero:   {nI, fin, fin, fin, pI, nN},
	classPos:    {nI, fin, fin, fin, pI, nN},
	classPosInf: {nN, pI, pI, pI, pI, nN},
	classNaN:    {nN, nN, nN, nN, nN, nN},
}

// mulRules[x][y] resolves x · y. Zero times an infinity is NaN.
var mulRules = [numClasses][numClasses]outcome{
	classNegInf: {pI, pI, nN, nI, nI, nN},
	classNeg:    {pI, fin, fin, fin, nI, nN},
	classZero:   {nN, fin, fin, fin, nN, nN},
	classPos:    {nI, fin, fin, fin, pI, nN},
	classPosInf: {nI, nI, nN, pI, pI, nN},
	classNaN:    {nN, nN, nN, nN, nN, nN},
}

// divRule is one entry of the division table: the outcome for the whole part
// and for the remainder.
type divRule struct {
	whole, rem outcome
}

var (
	dFin   = divRule{fin, fin}
	dNaN   = divRule{nN, nN}
	dZero  = divRule{outZero, outZero}
	dSmall = divRule{outZero, outAbsLeft}
	dPosI  = divRule{pI, nN}
	dNegI  = divRule{nI, nN}
)

// divRules[x][y] resolves x ÷ y. Division by zero is NaN with a NaN
// remainder. A finite value divided by an infinity is 0 with the dividend's
// magnitude left over; an infinity divided by a non-zero finite value is a
// signed infinity with nothing meaningful left over.
var divRules = [numClasses][numClasses]divRule{
	classNegInf: {dNaN, dPosI, dNaN, dNegI, dNaN, dNaN},
	classNeg:    {dSmall, dFin, dNaN, dFin, dSmall, dNaN},
	classZero:   {dZero, dZero, dNaN, dZero, dZero, dNaN},
	classPos:    {dSmall, dFin, dNaN, dFin, dSmall, dNaN},
	classPosInf: {dNaN, dNegI, dNaN, dPosI, dNaN, dNaN},
	classNaN:    {dNaN, dNaN, dNaN, dNaN, dNaN, dNaN},
}

// negClass maps the class of x to the class of -x.
var negClass = [numClasses]class{
	classNegInf: classPosInf,
	classNeg:    classPos,
	classZero:   classZero,
	classPos:    classNeg,
	classPosInf: classNegInf,
	classNaN:    classNaN,
}

func resolveAdd(x, y Int) outcome { return addRules[classify(x)][classify(y)] }

func resolveSub(x, y Int) outcome { return addRules[classify(x)][negClass[classify(y)]] }

func resolveMul(x, y Int) outcome { return mulRules[classify(x)][classify(y)] }

func resolveDiv(x, y Int) divRule { return divRules[classify(x)][classify(y)] }
