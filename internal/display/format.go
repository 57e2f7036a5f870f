package display

import (
	"fmt"
	"strconv"
)

// WithComma formats n with thousands separators, e.g. 1234567 as "1,234,567".
func WithComma(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return sign + string(out)
}

// WithSuffix abbreviates n with a K or M suffix, truncated to one decimal
// place. Values below one thousand, and negative values, are formatted with
// WithComma.
func WithSuffix(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n/100_000)/10)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n/100)/10)
	default:
		return WithComma(n)
	}
}
