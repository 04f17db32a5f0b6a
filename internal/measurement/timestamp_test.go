package measurement

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			"utc with Z",
			"2025-02-18T15:00:00Z",
			time.Date(2025, 2, 18, 15, 0, 0, 0, time.UTC),
		},
		{
			"positive offset normalised to utc",
			"2025-02-18T16:00:00+01:00",
			time.Date(2025, 2, 18, 15, 0, 0, 0, time.UTC),
		},
		{
			"negative offset normalised to utc",
			"2025-02-18T10:00:00-05:00",
			time.Date(2025, 2, 18, 15, 0, 0, 0, time.UTC),
		},
		{
			"fractional seconds",
			"2025-02-18T15:00:00.250Z",
			time.Date(2025, 2, 18, 15, 0, 0, 250_000_000, time.UTC),
		},
		{
			"no zone means utc",
			"2025-02-18T15:00:00",
			time.Date(2025, 2, 18, 15, 0, 0, 0, time.UTC),
		},
		{
			"bare date is midnight utc",
			"2025-02-18",
			time.Date(2025, 2, 18, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q): %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("result not in UTC: %v", got.Location())
			}
		})
	}
}

func TestParseTimestampInvalid(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "18/02/2025", "2025-13-01T00:00:00Z"} {
		_, err := ParseTimestamp(input)
		if !errors.Is(err, ErrInvalidTimestamp) {
			t.Errorf("ParseTimestamp(%q): expected ErrInvalidTimestamp, got %v", input, err)
		}
	}
}
