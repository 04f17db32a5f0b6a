package measurement

import "time"

// Measurement is a single timestamped sensor reading. Timestamps are
// normalised to UTC before storage and stay UTC throughout.
type Measurement struct {
	ID        int64     `json:"-"`
	SensorID  int64     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	Value     float64   `json:"value"`
	IsOutlier bool      `json:"isOutlier,omitempty"`
}

// Stats is the statistical summary of a set of readings. Thresholds sit
// two standard deviations either side of the mean; variance is the
// population variance.
type Stats struct {
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	Mean           float64    `json:"mean"`
	Variance       float64    `json:"variance"`
	UpperThreshold float64    `json:"upperThreshold"`
	LowerThreshold float64    `json:"lowerThreshold"`
}

// SensorSeries is the per-sensor result envelope. A sensor with no
// readings in the requested window carries only its MAC address; when
// readings exist the stats are always present and the measurement list is
// omitted if the requested view leaves it empty.
type SensorSeries struct {
	SensorMacAddress string        `json:"sensorMacAddress"`
	Stats            *Stats        `json:"stats,omitempty"`
	Measurements     []Measurement `json:"measurements,omitempty"`
}

// Window is an optional inclusive time range. Nil bounds are open.
type Window struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}
	if w.To != nil && t.After(*w.To) {
		return false
	}
	return true
}
