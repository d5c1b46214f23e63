package bigint

import (
	"errors"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/infinite/internal/errors"
)

func TestDivideScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		x, y       Int
		whole, rem Int
	}{
		{"10 / 5", FromInt64(10), FromInt64(5), FromInt64(2), Zero()},
		{"-11 / 5", FromInt64(-11), FromInt64(5), FromInt64(-2), One()},
		{"11 / -5", FromInt64(11), FromInt64(-5), FromInt64(-2), One()},
		{"-11 / -5", FromInt64(-11), FromInt64(-5), FromInt64(2), One()},
		{"divide by one", FromInt64(-77), One(), FromInt64(-77), Zero()},
		{"divide by minus one", FromInt64(77), FromInt64(-1), FromInt64(-77), Zero()},
		{"equal magnitudes", FromInt64(-9), FromInt64(9), FromInt64(-1), Zero()},
		{"smaller dividend", FromInt64(-3), FromInt64(8), Zero(), FromInt64(3)},
		{"zero dividend", Zero(), FromInt64(8), Zero(), Zero()},
		{"common trailing zeros", FromInt64(3 << 40), FromInt64(5 << 33), FromInt64(76), FromInt64(4 << 33)},
		{"by zero", FromInt64(4), Zero(), NaN(), NaN()},
		{"zero by zero", Zero(), Zero(), NaN(), NaN()},
		{"NaN dividend", NaN(), FromInt64(2), NaN(), NaN()},
		{"NaN divisor", FromInt64(2), NaN(), NaN(), NaN()},
		{"Inf by Inf", PosInf(), NegInf(), NaN(), NaN()},
		{"+Inf by -2", PosInf(), FromInt64(-2), NegInf(), NaN()},
		{"-Inf by -2", NegInf(), FromInt64(-2), PosInf(), NaN()},
		{"finite by Inf", FromInt64(-7), PosInf(), Zero(), FromInt64(7)},
		{"finite by -Inf", FromInt64(7), NegInf(), Zero(), FromInt64(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := tt.x.Divide(tt.y)
			if !q.Whole.Equal(tt.whole) || !q.Remainder.Equal(tt.rem) {
				t.Errorf("Divide = (%s), want (%s r %s)", q, tt.whole, tt.rem)
			}
			if got := tt.x.DivideDropRemainder(tt.y); !got.Equal(tt.whole) {
				t.Errorf("DivideDropRemainder = %s", got)
			}
			if got := tt.x.DivideReturnRemainder(tt.y); !got.Equal(tt.rem) {
				t.Errorf("DivideReturnRemainder = %s", got)
			}
		})
	}
}

func TestDivideStrategiesAgree(t *testing.T) {
	t.Parallel()
	x := mustParse("123456789012345678901234567890123456789")
	ys := []Int{
		FromInt64(7),
		FromInt64(1 << 40),
		mustParse("98765432109876543210"),
		mustParse("-123456789012345678901"),
		mustParse("1234567890123456789012345678901234567"),
	}
	for _, y := range ys {
		want := x.DivideWith(y, StrategyLongDivision)
		for _, s := range []Strategy{StrategyAuto, StrategyNative, StrategyBinarySearch} {
			if got := x.DivideWith(y, s); !got.Equal(want) {
				t.Errorf("%s / %s with %s = %s, long division gives %s", x, y, s, got, want)
			}
		}
	}
}

func TestDivideExact(t *testing.T) {
	t.Parallel()
	got, err := FromInt64(-84).DivideExact(FromInt64(7))
	if err != nil || !got.Equal(FromInt64(-12)) {
		t.Fatalf("DivideExact(-84, 7) = %s, %v", got, err)
	}
	_, err = FromInt64(85).DivideExact(FromInt64(7))
	var arithErr apperrors.ArithmeticError
	if !errors.As(err, &arithErr) {
		t.Fatalf("expected ArithmeticError, got %v", err)
	}
	if got, err := PosInf().DivideExact(FromInt64(3)); err != nil || !got.Equal(PosInf()) {
		t.Errorf("DivideExact(+Inf, 3) = %s, %v", got, err)
	}
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()
	for _, s := range append([]Strategy{StrategyAuto}, Strategies...) {
		got, err := ParseStrategy(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStrategy(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStrategy("fft"); err == nil {
		t.Error("unknown strategy must fail")
	}
}

// TestDivideIdentity_PropertyBased checks every strategy against math/big:
// the whole part truncates toward zero and the remainder is |x mod y|, so
// x = y·q + sign(x)·r with 0 <= r < |y|.
func TestDivideIdentity_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	for _, s := range append([]Strategy{StrategyAuto}, Strategies...) {
		properties.Property(s.String()+" division matches math/big", prop.ForAll(
			func(x, y Int) bool {
				if y.IsZero() {
					return x.DivideWith(y, s).Whole.IsNaN()
				}
				q := x.DivideWith(y, s)
				bq, br := new(big.Int).QuoRem(toBig(x), toBig(y), new(big.Int))
				if toBig(q.Whole).Cmp(bq) != 0 || toBig(q.Remainder).Cmp(br.Abs(br)) != 0 {
					t.Logf("%s / %s: got %s, want %s r %s", x, y, q, bq, br)
					return false
				}
				signed := q.Remainder
				if x.Sign() < 0 {
					signed = signed.Neg()
				}
				return y.Mul(q.Whole).Add(signed).Equal(x)
			},
			genInt(), genInt(),
		))
	}

	properties.TestingRun(t)
}

func FuzzDivideIdentity(f *testing.F) {
	f.Add(int64(10), int64(5))
	f.Add(int64(-11), int64(5))
	f.Add(int64(1<<62), int64(3))
	f.Add(int64(-1<<63), int64(-1))
	f.Add(int64(0), int64(0))

	f.Fuzz(func(t *testing.T, a, b int64) {
		x, y := FromInt64(a), FromInt64(b)
		q := x.Divide(y)
		if b == 0 {
			if !q.Whole.IsNaN() || !q.Remainder.IsNaN() {
				t.Fatalf("%d / 0 = %s, want NaN", a, q)
			}
			return
		}
		bq, br := new(big.Int).QuoRem(big.NewInt(a), big.NewInt(b), new(big.Int))
		if toBig(q.Whole).Cmp(bq) != 0 || toBig(q.Remainder).Cmp(br.Abs(br)) != 0 {
			t.Fatalf("%d / %d = %s, want %s r %s", a, b, q, bq, br)
		}
	})
}
