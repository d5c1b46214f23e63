package calc

import (
	"fmt"

	"github.com/agbru/infinite/internal/bigint"
	apperrors "github.com/agbru/infinite/internal/errors"
)

// MaxResultBits bounds the size of results whose length the evaluator can
// predict (shl and pow) so a short expression cannot exhaust memory.
const MaxResultBits = 1 << 26

func binary(name, usage, desc string, f func(x, y bigint.Int) bigint.Int) Operation {
	return Operation{
		Name: name, Arity: 2, Usage: usage, Description: desc,
		Apply: func(args []bigint.Int, _ Options) (Result, error) {
			return Number(name, f(args[0], args[1])), nil
		},
	}
}

func unary(name, usage, desc string, f func(x bigint.Int) bigint.Int) Operation {
	return Operation{
		Name: name, Arity: 1, Usage: usage, Description: desc,
		Apply: func(args []bigint.Int, _ Options) (Result, error) {
			return Number(name, f(args[0])), nil
		},
	}
}

func builtins() []Operation {
	return []Operation{
		binary("add", "add x y", "Sum x + y.", bigint.Int.Add),
		binary("sub", "sub x y", "Difference x - y.", bigint.Int.Sub),
		binary("mul", "mul x y", "Product x * y.", bigint.Int.Mul),
		{
			Name: "div", Arity: 2, Usage: "div x y",
			Description: "Truncated quotient and remainder magnitude of x / y.",
			Apply: func(args []bigint.Int, opts Options) (Result, error) {
				q := args[0].DivideWith(args[1], opts.Strategy)
				return Result{Op: "div", Kind: ResultQuotient, Value: q.Whole, Remainder: q.Remainder}, nil
			},
		},
		{
			Name: "mod", Arity: 2, Usage: "mod x y",
			Description: "Remainder magnitude of x / y.",
			Apply: func(args []bigint.Int, opts Options) (Result, error) {
				return Number("mod", args[0].DivideWith(args[1], opts.Strategy).Remainder), nil
			},
		},
		{
			Name: "divexact", Arity: 2, Usage: "divexact x y",
			Description: "Quotient x / y, failing unless y divides x.",
			Apply: func(args []bigint.Int, _ Options) (Result, error) {
				q, err := args[0].DivideExact(args[1])
				if err != nil {
					return Result{}, err
				}
				return Number("divexact", q), nil
			},
		},
		binary("gcd", "gcd x y", "Greatest common divisor of |x| and |y|.", bigint.Int.GCD),
		binary("lcm", "lcm x y", "Least common multiple of |x| and |y|.", bigint.Int.LCM),
		{
			Name: "prime", Arity: 1, Usage: "prime x",
			Description: "Whether x is prime.",
			Apply: func(args []bigint.Int, _ Options) (Result, error) {
				return Result{Op: "prime", Kind: ResultTruth, Truth: args[0].IsPrime()}, nil
			},
		},
		unary("sqrt", "sqrt x", "Ceiling square root of x.", bigint.Int.SqrtCeil),
		unary("isqrt", "isqrt x", "Floor square root of x.", bigint.Int.SqrtFloor),
		unary("neg", "neg x", "Negation -x.", bigint.Int.Neg),
		unary("abs", "abs x", "Absolute value |x|.", bigint.Int.Abs),
		{
			Name: "shl", Arity: 2, Usage: "shl x n",
			Description: "x * 2^n.",
			Apply: func(args []bigint.Int, _ Options) (Result, error) {
				n, err := count("shl", args[1])
				if err != nil {
					return Result{}, err
				}
				if bits := uint64(args[0].BitLen()) + n; bits > MaxResultBits {
					return Result{}, resultTooLarge("shl", bits)
				}
				return Number("shl", args[0].MulPow2(uint(n))), nil
			},
		},
		{
			Name: "shr", Arity: 2, Usage: "shr x n",
			Description: "x / 2^n truncated toward zero.",
			Apply: func(args []bigint.Int, _ Options) (Result, error) {
				n, err := count("shr", args[1])
				if err != nil {
					return Result{}, err
				}
				n = min(n, uint64(args[0].BitLen()))
				return Number("shr", args[0].DivPow2(uint(n))), nil
			},
		},
		{
			Name: "pow", Arity: 2, Usage: "pow x e",
			Description: "x raised to the non-negative power e.",
			Apply: func(args []bigint.Int, _ Options) (Result, error) {
				e, err := count("pow", args[1])
				if err != nil {
					return Result{}, err
				}
				if bl := uint64(args[0].BitLen()); bl > 1 && e > 0 {
					if e > MaxResultBits || (bl-1)*e > MaxResultBits {
						return Result{}, resultTooLarge("pow", (bl-1)*min(e, MaxResultBits))
					}
				}
				return Number("pow", args[0].Pow(uint(e))), nil
			},
		},
		{
			Name: "cmp", Arity: 2, Usage: "cmp x y",
			Description: "-1, 0 or 1 as x is below, equal to or above y (NaN ranks highest).",
			Apply: func(args []bigint.Int, _ Options) (Result, error) {
				return Number("cmp", bigint.FromInt64(int64(args[0].Cmp(args[1])))), nil
			},
		},
	}
}

// count converts a shift or exponent operand to a native count.
func count(op string, v bigint.Int) (uint64, error) {
	if v.Sign() < 0 || !v.IsFinite() {
		return 0, apperrors.ArithmeticError{Op: op, Message: fmt.Sprintf("count must be a non-negative finite integer, got %s", v)}
	}
	n, err := v.Uint64()
	if err != nil {
		return 0, apperrors.ArithmeticError{Op: op, Message: "count does not fit in 64 bits"}
	}
	return n, nil
}

func resultTooLarge(op string, bits uint64) error {
	return apperrors.ValidationError{
		Field:   op,
		Message: fmt.Sprintf("result would need about %d bits, limit is %d", bits, MaxResultBits),
	}
}
