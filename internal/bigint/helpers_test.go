package bigint

import (
	"math/big"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// toBig converts a finite Int into a math/big value for cross-checking.
func toBig(x Int) *big.Int {
	words := x.Words()
	r := new(big.Int)
	for i := len(words) - 1; i >= 0; i-- {
		r.Lsh(r, wordBits)
		r.Or(r, new(big.Int).SetUint64(uint64(words[i])))
	}
	if x.Sign() < 0 {
		r.Neg(r)
	}
	return r
}

// fromBig converts a math/big value into an Int.
func fromBig(b *big.Int) Int {
	abs := new(big.Int).Abs(b)
	mask := new(big.Int).SetUint64(1<<wordBits - 1)
	var words []uint32
	for abs.Sign() > 0 {
		words = append(words, uint32(new(big.Int).And(abs, mask).Uint64()))
		abs.Rsh(abs, wordBits)
	}
	return FromWords(b.Sign() < 0, words)
}

// propertyParameters keeps generated magnitudes small enough for the
// quadratic algorithms.
func propertyParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.MaxSize = 8
	return parameters
}

// genInt generates finite Ints of up to MaxSize words with either sign.
func genInt() gopter.Gen {
	return gopter.CombineGens(gen.Bool(), gen.SliceOf(gen.UInt32())).Map(func(v []interface{}) Int {
		return FromWords(v[0].(bool), v[1].([]uint32))
	})
}

// mustParse parses a decimal literal and panics on error.
func mustParse(s string) Int {
	v, err := Parse(s, 10)
	if err != nil {
		panic(err)
	}
	return v
}
