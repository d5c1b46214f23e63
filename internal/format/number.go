package format

import "strings"

// FormatNumberString inserts a comma between every group of three digits
// of a decimal string, keeping an optional leading sign.
func FormatNumberString(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.Grow(len(sign) + len(s) + len(s)/3)
	b.WriteString(sign)
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Truncate shortens s to at most limit runes, keeping the head and tail
// around an ellipsis. A limit below 8 disables truncation.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if limit < 8 || len(r) <= limit {
		return s
	}
	keep := (limit - 3) / 2
	return string(r[:keep]) + "..." + string(r[len(r)-keep:])
}
