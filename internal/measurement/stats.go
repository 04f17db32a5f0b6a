package measurement

import (
	"math"
	"time"
)

// outlierSigma is the threshold width in standard deviations.
const outlierSigma = 2.0

// ComputeStats calculates mean, population variance, and the outlier
// thresholds at mean ± 2σ over the given readings. An empty input yields
// all-zero statistics.
func ComputeStats(readings []Measurement, from, to *time.Time) Stats {
	stats := Stats{StartDate: from, EndDate: to}
	if len(readings) == 0 {
		return stats
	}

	var sum float64
	for _, m := range readings {
		sum += m.Value
	}
	mean := sum / float64(len(readings))

	var sqDiff float64
	for _, m := range readings {
		d := m.Value - mean
		sqDiff += d * d
	}
	variance := sqDiff / float64(len(readings))
	sigma := math.Sqrt(variance)

	stats.Mean = mean
	stats.Variance = variance
	stats.UpperThreshold = mean + outlierSigma*sigma
	stats.LowerThreshold = mean - outlierSigma*sigma
	return stats
}

// TagOutliers marks each reading strictly outside the thresholds. Readings
// exactly on a threshold are not outliers.
func TagOutliers(readings []Measurement, stats Stats) {
	for i := range readings {
		readings[i].IsOutlier = readings[i].Value < stats.LowerThreshold ||
			readings[i].Value > stats.UpperThreshold
	}
}

// ExtractOutliers returns only the readings tagged as outliers.
func ExtractOutliers(readings []Measurement) []Measurement {
	var outliers []Measurement
	for _, m := range readings {
		if m.IsOutlier {
			outliers = append(outliers, m)
		}
	}
	return outliers
}
