package measurement

import (
	"fmt"
	"time"
)

// Accepted timestamp layouts, tried in order. Offsets are honoured and the
// result is always converted to UTC; a bare date means midnight UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO 8601 timestamp string and normalises it to
// UTC. An empty string is an error; callers treat absence and presence of
// a bound differently and must not conflate them here.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrInvalidTimestamp)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}
