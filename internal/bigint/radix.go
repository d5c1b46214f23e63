package bigint

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	apperrors "github.com/agbru/infinite/internal/errors"
)

const (
	// MinRadix and MaxRadix bound the radices accepted by Text and Parse.
	MinRadix = 1
	MaxRadix = 62

	// MaxTextLength is the largest rendering, in bytes, that Text produces.
	MaxTextLength = math.MaxInt32

	// Glyphs used for the non-finite values in every radix.
	GlyphPosInf = "∞"
	GlyphNegInf = "-∞"
	GlyphNaN    = "∉ℤ"

	digitAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// stringTailDigits is how many trailing decimal digits String keeps for
	// values that do not fit in 64 bits.
	stringTailDigits = 19
	stringTailModulus = 10_000_000_000_000_000_000
	ellipsis          = "…"
)

func checkRadix(radix int) error {
	if radix < MinRadix || radix > MaxRadix {
		return apperrors.FormatError{Radix: radix, Message: fmt.Sprintf("radix must be between %d and %d", MinRadix, MaxRadix)}
	}
	return nil
}

// textBuffer accumulates output and refuses to grow past limit.
type textBuffer struct {
	buf   []byte
	limit int
}

func (b *textBuffer) appendByte(c byte) error {
	if len(b.buf) >= b.limit {
		return apperrors.CapacityError{Needed: len(b.buf) + 1, Limit: b.limit}
	}
	b.buf = append(b.buf, c)
	return nil
}

func (b *textBuffer) appendString(s string) error {
	if len(b.buf)+len(s) > b.limit {
		return apperrors.CapacityError{Needed: len(b.buf) + len(s), Limit: b.limit}
	}
	b.buf = append(b.buf, s...)
	return nil
}

// reserve fails unless n digits (plus a sign when signed) fit under the
// limit, and grows buf to hold them.
func (b *textBuffer) reserve(n uint64, signed bool) error {
	if signed {
		n++
	}
	room := uint64(b.limit - len(b.buf))
	if n > room {
		needed := math.MaxInt
		if n <= uint64(math.MaxInt-len(b.buf)) {
			needed = len(b.buf) + int(n)
		}
		return apperrors.CapacityError{Needed: needed, Limit: b.limit}
	}
	b.buf = slices.Grow(b.buf, int(n))
	return nil
}

func (b *textBuffer) reverse() {
	for i, j := 0, len(b.buf)-1; i < j; i, j = i+1, j-1 {
		b.buf[i], b.buf[j] = b.buf[j], b.buf[i]
	}
}

// Text renders x in the given radix using the digits 0-9, A-Z, a-z.
// Non-finite values render as ∞, -∞ and ∉ℤ. Radix 1 is unary and only
// supports values that fit in an int64. A rendering longer than
// MaxTextLength fails with a CapacityError.
func (x Int) Text(radix int) (string, error) {
	return x.text(radix, MaxTextLength)
}

func (x Int) text(radix, limit int) (string, error) {
	if err := checkRadix(radix); err != nil {
		return "", err
	}
	b := &textBuffer{limit: limit}
	var err error
	switch {
	case x.kind != KindFinite:
		err = b.appendString(x.glyph())
	case x.IsZero():
		err = b.appendByte('0')
	case radix == 1:
		err = x.appendUnary(b)
	case radix == 2 || radix == 4 || radix == 16:
		err = x.appendPow2(b, radix)
	default:
		err = x.appendDivided(b, radix)
	}
	if err != nil {
		return "", err
	}
	return string(b.buf), nil
}

func (x Int) glyph() string {
	switch x.kind {
	case KindPosInf:
		return GlyphPosInf
	case KindNegInf:
		return GlyphNegInf
	}
	return GlyphNaN
}

func (x Int) appendUnary(b *textBuffer) error {
	v, err := x.Int64()
	if err != nil {
		return apperrors.ArithmeticError{Op: "Text", Message: "unary rendering needs a value that fits in int64"}
	}
	count := uint64(v)
	if v < 0 {
		count = ^count + 1
	}
	if err := b.reserve(count, v < 0); err != nil {
		return err
	}
	if v < 0 {
		b.buf = append(b.buf, '-')
	}
	for ; count > 0; count-- {
		b.buf = append(b.buf, '1')
	}
	return nil
}

// appendPow2 renders each word independently; every word but the most
// significant is left-padded to the fixed number of digits per word.
func (x Int) appendPow2(b *textBuffer, radix int) error {
	if x.neg {
		if err := b.appendByte('-'); err != nil {
			return err
		}
	}
	shift := uint(1)
	for 1<<shift != radix {
		shift++
	}
	perWord := wordBits / int(shift)
	mask := uint32(radix - 1)
	mag := x.abs()
	for i := len(mag) - 1; i >= 0; i-- {
		w := mag[i]
		start := perWord - 1
		if i == len(mag)-1 {
			for start > 0 && w>>(uint(start)*shift)&mask == 0 {
				start--
			}
		}
		for d := start; d >= 0; d-- {
			if err := b.appendByte(digitAlphabet[w>>(uint(d)*shift)&mask]); err != nil {
				return err
			}
		}
	}
	return nil
}

// appendDivided produces digits least significant first by repeated division
// by the radix, then reverses them.
func (x Int) appendDivided(b *textBuffer, radix int) error {
	r := nat{uint32(radix)}
	q := x.abs()
	for !q.isZero() {
		var rem nat
		q, rem = divmod(q, r, StrategyAuto)
		if err := b.appendByte(digitAlphabet[rem[0]]); err != nil {
			return err
		}
	}
	if x.neg {
		if err := b.appendByte('-'); err != nil {
			return err
		}
	}
	b.reverse()
	return nil
}

// String renders x in base 10 for logs and debugging. Values that fit in 64
// bits are exact; larger ones show the sign, an ellipsis and the last 19
// digits.
func (x Int) String() string {
	if x.kind != KindFinite {
		return x.glyph()
	}
	sign := ""
	if x.neg {
		sign = "-"
	}
	mag := x.abs()
	if v, ok := mag.uint64(); ok {
		return sign + strconv.FormatUint(v, 10)
	}
	return fmt.Sprintf("%s%s%0*d", sign, ellipsis, stringTailDigits, mag.modUint64(stringTailModulus))
}

// Parse reads an integer written in the given radix. It accepts an optional
// sign, the glyphs ∞, -∞ and ∉ℤ, and the aliases NaN, Inf and Infinity in
// any letter case. Letters are case-insensitive up to radix 36. In radix 1
// the value is the count of '1' digits, and "0" is zero.
func Parse(s string, radix int) (Int, error) {
	if err := checkRadix(radix); err != nil {
		return nan, err
	}
	if s == "" {
		return nan, apperrors.FormatError{Input: s, Radix: radix, Message: "empty input"}
	}
	if v, ok := parseNonFinite(s); ok {
		return v, nil
	}
	body := s
	neg := false
	switch body[0] {
	case '-':
		neg = true
		body = body[1:]
	case '+':
		body = body[1:]
	}
	if body == "" {
		return nan, apperrors.FormatError{Input: s, Radix: radix, Message: "no digits"}
	}
	if radix == 1 {
		return parseUnary(s, body, neg)
	}
	mag := nat{0}
	for i := 0; i < len(body); i++ {
		d, ok := digitValue(body[i], radix)
		if !ok {
			r, _ := utf8.DecodeRuneInString(body[i:])
			return nan, apperrors.FormatError{Input: s, Radix: radix, Message: fmt.Sprintf("invalid digit %q", r)}
		}
		mag = mag.mulAddWord(mag, uint32(radix), d)
	}
	return finite(neg, mag), nil
}

func parseNonFinite(s string) (Int, bool) {
	switch s {
	case GlyphPosInf, "+" + GlyphPosInf:
		return posInf, true
	case GlyphNegInf:
		return negInf, true
	case GlyphNaN:
		return nan, true
	}
	switch strings.ToLower(s) {
	case "nan":
		return nan, true
	case "inf", "+inf", "infinity", "+infinity":
		return posInf, true
	case "-inf", "-infinity":
		return negInf, true
	}
	return Int{}, false
}

func parseUnary(s, body string, neg bool) (Int, error) {
	if body == "0" {
		return zero, nil
	}
	if strings.Trim(body, "1") != "" {
		return nan, apperrors.FormatError{Input: s, Radix: 1, Message: "unary digits must all be '1'"}
	}
	n := int64(len(body))
	if neg {
		n = -n
	}
	return FromInt64(n), nil
}

// digitValue maps a digit character to its value in the given radix.
func digitValue(c byte, radix int) (uint32, bool) {
	var d int
	switch {
	case '0' <= c && c <= '9':
		d = int(c - '0')
	case 'A' <= c && c <= 'Z':
		d = int(c-'A') + 10
	case 'a' <= c && c <= 'z':
		if radix <= 36 {
			d = int(c-'a') + 10
		} else {
			d = int(c-'a') + 36
		}
	default:
		return 0, false
	}
	if d >= radix {
		return 0, false
	}
	return uint32(d), true
}

// MarshalText implements encoding.TextMarshaler using base 10.
func (x Int) MarshalText() ([]byte, error) {
	s, err := x.Text(10)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using base 10.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := Parse(string(text), 10)
	if err != nil {
		return err
	}
	*x = v
	return nil
}
