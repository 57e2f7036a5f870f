// Package timeparse turns dates and ages given on the command line into
// GitHub search qualifiers.
package timeparse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

var ageUnits = map[string]time.Duration{
	"h":      time.Hour,
	"d":      day,
	"day":    day,
	"days":   day,
	"w":      7 * day,
	"week":   7 * day,
	"weeks":  7 * day,
	"mo":     30 * day,
	"month":  30 * day,
	"months": 30 * day,
	"y":      365 * day,
	"year":   365 * day,
	"years":  365 * day,
}

// ParseAge parses an age such as "12h", "3d", "2weeks", "6mo", or "1y".
// Months are 30 days and years 365.
func ParseAge(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty age")
	}

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("invalid age %q: missing number", s)
	}
	if i == len(s) {
		return 0, fmt.Errorf("invalid age %q: missing unit", s)
	}

	n, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid age %q: %w", s, err)
	}

	unit, ok := ageUnits[strings.ToLower(strings.TrimSpace(s[i:]))]
	if !ok {
		return 0, fmt.Errorf("invalid age %q: unknown unit %q", s, s[i:])
	}
	if n > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("invalid age %q: value too large", s)
	}

	return time.Duration(n) * unit, nil
}
