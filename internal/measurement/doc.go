// Package measurement provides storage, retrieval, and statistics for
// sensor readings.
//
// Readings arrive in batches, are normalised to UTC, and are persisted
// atomically. Retrieval is windowed and always oldest-first. On top of
// raw retrieval the package computes per-window statistics (mean,
// population variance, mean ± 2σ thresholds) and tags or extracts the
// readings outside the thresholds.
//
// The Service type is the facade the API and the MQTT ingester share. It
// resolves sensors through the inventory chain before reading or writing,
// so addressing errors surface exactly as the hierarchy defines them, and
// it optionally mirrors stored readings to a time-series backend.
package measurement
