package measurement

import "errors"

var (
	// ErrInvalidTimestamp indicates a timestamp string that could not be
	// parsed as an ISO 8601 instant.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrNonFiniteValue indicates a reading whose value is NaN or infinite.
	ErrNonFiniteValue = errors.New("non-finite measurement value")

	// ErrEmptyBatch indicates a store request carrying no readings.
	ErrEmptyBatch = errors.New("empty measurement batch")
)
