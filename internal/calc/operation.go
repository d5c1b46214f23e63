package calc

import (
	encbinary "encoding/binary"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/agbru/infinite/internal/bigint"
)

// ResultKind tells which fields of a Result carry the answer.
type ResultKind int

const (
	// ResultNumber is a single integer in Value.
	ResultNumber ResultKind = iota
	// ResultQuotient is a whole part in Value and a remainder in Remainder.
	ResultQuotient
	// ResultTruth is a yes/no answer in Truth.
	ResultTruth
)

// String returns the name used for the kind in JSON responses.
func (k ResultKind) String() string {
	switch k {
	case ResultQuotient:
		return "quotient"
	case ResultTruth:
		return "truth"
	}
	return "number"
}

// Result is the outcome of one operation.
type Result struct {
	Op        string
	Kind      ResultKind
	Value     bigint.Int
	Remainder bigint.Int
	Truth     bool
}

// Number wraps a single integer result.
func Number(op string, v bigint.Int) Result {
	return Result{Op: op, Kind: ResultNumber, Value: v}
}

// Rendering is a Result written out in one radix.
type Rendering struct {
	Kind  ResultKind
	Radix int
	// Value is empty for truth results.
	Value string
	// Remainder is set for quotients only.
	Remainder string
	Truth     bool
}

// String joins the parts: the number, "w r r" for a quotient, or
// "true"/"false".
func (t Rendering) String() string {
	switch t.Kind {
	case ResultTruth:
		return strconv.FormatBool(t.Truth)
	case ResultQuotient:
		return t.Value + " r " + t.Remainder
	}
	return t.Value
}

// Digits counts the digits of the value, without its sign.
func (t Rendering) Digits() int {
	return len(strings.TrimPrefix(t.Value, "-"))
}

// Render writes r out in radix.
func (r Result) Render(radix int) (Rendering, error) {
	t := Rendering{Kind: r.Kind, Radix: radix, Truth: r.Truth}
	if r.Kind == ResultTruth {
		return t, nil
	}
	var err error
	if t.Value, err = r.Value.Text(radix); err != nil {
		return Rendering{}, err
	}
	if r.Kind == ResultQuotient {
		if t.Remainder, err = r.Remainder.Text(radix); err != nil {
			return Rendering{}, err
		}
	}
	return t, nil
}

// Format renders the result in radix as a single string.
func (r Result) Format(radix int) (string, error) {
	t, err := r.Render(radix)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

// Hash returns a hash of the result: equal results hash alike whatever
// expression produced them.
func (r Result) Hash() uint64 {
	var buf [1 + 8 + 8 + 1]byte
	buf[0] = byte(r.Kind)
	switch r.Kind {
	case ResultTruth:
		if r.Truth {
			buf[17] = 1
		}
	case ResultQuotient:
		encbinary.LittleEndian.PutUint64(buf[9:], r.Remainder.Hash())
		fallthrough
	default:
		encbinary.LittleEndian.PutUint64(buf[1:], r.Value.Hash())
	}
	return xxhash.Sum64(buf[:])
}

// Options carries the evaluator settings an operation may depend on.
type Options struct {
	Strategy bigint.Strategy
}

// Operation is a named function over integers with a fixed number of
// operands.
type Operation struct {
	Name        string
	Arity       int
	Usage       string
	Description string
	Apply       func(args []bigint.Int, opts Options) (Result, error)
}
