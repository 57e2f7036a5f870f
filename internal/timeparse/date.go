package timeparse

import (
	"fmt"
	"time"
)

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
}

// ParseDate parses a date given on the command line. Dates without a zone
// are taken to be UTC. Accepted forms are YYYY-MM-DD, YYYY-MM-DD HH:MM:SS,
// and RFC 3339.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM:SS, or RFC3339)", s)
}
