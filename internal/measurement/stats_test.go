package measurement

import (
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func readingsFrom(values ...float64) []Measurement {
	base := time.Date(2025, 2, 18, 10, 0, 0, 0, time.UTC)
	readings := make([]Measurement, len(values))
	for i, v := range values {
		readings[i] = Measurement{
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Value:     v,
		}
	}
	return readings
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(readingsFrom(1, 1, 1, 100), nil, nil)

	if !almostEqual(stats.Mean, 25.75) {
		t.Errorf("mean: got %v, want 25.75", stats.Mean)
	}
	if !almostEqual(stats.Variance, 1837.6875) {
		t.Errorf("variance: got %v, want 1837.6875", stats.Variance)
	}

	sigma := math.Sqrt(1837.6875)
	if !almostEqual(stats.UpperThreshold, 25.75+2*sigma) {
		t.Errorf("upper threshold: got %v, want %v", stats.UpperThreshold, 25.75+2*sigma)
	}
	if !almostEqual(stats.LowerThreshold, 25.75-2*sigma) {
		t.Errorf("lower threshold: got %v, want %v", stats.LowerThreshold, 25.75-2*sigma)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, nil, nil)
	if stats.Mean != 0 || stats.Variance != 0 || stats.UpperThreshold != 0 || stats.LowerThreshold != 0 {
		t.Errorf("empty input should yield all-zero stats, got %+v", stats)
	}
}

func TestComputeStatsSingleReading(t *testing.T) {
	stats := ComputeStats(readingsFrom(42), nil, nil)
	if !almostEqual(stats.Mean, 42) || !almostEqual(stats.Variance, 0) {
		t.Errorf("single reading: got mean=%v variance=%v", stats.Mean, stats.Variance)
	}
	if !almostEqual(stats.UpperThreshold, 42) || !almostEqual(stats.LowerThreshold, 42) {
		t.Errorf("thresholds should collapse onto the mean, got %+v", stats)
	}
}

func TestComputeStatsWindowEcho(t *testing.T) {
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	stats := ComputeStats(readingsFrom(1, 2, 3), &from, &to)
	if stats.StartDate == nil || !stats.StartDate.Equal(from) {
		t.Errorf("startDate not echoed: %v", stats.StartDate)
	}
	if stats.EndDate == nil || !stats.EndDate.Equal(to) {
		t.Errorf("endDate not echoed: %v", stats.EndDate)
	}
}

func TestTagOutliers(t *testing.T) {
	// A wide spread of 1s dragged by a single 100: the deviation is large
	// enough that nothing crosses two sigma.
	readings := readingsFrom(1, 1, 1, 100)
	TagOutliers(readings, ComputeStats(readings, nil, nil))
	for _, m := range readings {
		if m.IsOutlier {
			t.Errorf("value %v wrongly tagged as outlier", m.Value)
		}
	}

	// A tight cluster makes the stray reading cross the threshold.
	readings = readingsFrom(10, 10, 10, 10, 10, 10, 10, 100)
	TagOutliers(readings, ComputeStats(readings, nil, nil))
	for i, m := range readings {
		wantOutlier := m.Value == 100
		if m.IsOutlier != wantOutlier {
			t.Errorf("reading %d (value %v): isOutlier=%v, want %v", i, m.Value, m.IsOutlier, wantOutlier)
		}
	}
}

func TestTagOutliersThresholdBoundary(t *testing.T) {
	// A reading exactly on a threshold is not an outlier.
	readings := readingsFrom(42)
	stats := ComputeStats(readings, nil, nil)
	TagOutliers(readings, stats)
	if readings[0].IsOutlier {
		t.Error("reading on the threshold tagged as outlier")
	}
}

func TestExtractOutliers(t *testing.T) {
	readings := readingsFrom(10, 10, 10, 10, 10, 10, 10, 100)
	TagOutliers(readings, ComputeStats(readings, nil, nil))

	outliers := ExtractOutliers(readings)
	if len(outliers) != 1 {
		t.Fatalf("expected 1 outlier, got %d", len(outliers))
	}
	if outliers[0].Value != 100 {
		t.Errorf("outlier value: got %v, want 100", outliers[0].Value)
	}

	if got := ExtractOutliers(readingsFrom(1, 2, 3)); got != nil {
		t.Errorf("expected nil for untagged readings, got %v", got)
	}
}
