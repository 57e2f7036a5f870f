package timeparse

import (
	"fmt"
	"time"
)

// Since returns a search qualifier matching values of field at or after t,
// e.g. "created:>=2024-01-02T03:04:05Z".
func Since(field string, t time.Time) string {
	return fmt.Sprintf("%s:>=%s", field, t.UTC().Format(time.RFC3339))
}

// Within returns a search qualifier matching values of field no older than
// age at now.
func Within(field string, age time.Duration, now time.Time) string {
	return Since(field, now.Add(-age))
}
