package measurement

import (
	"context"
	"fmt"

	"github.com/geocontrol/geocontrol-core/internal/infrastructure/logging"
	"github.com/geocontrol/geocontrol-core/internal/inventory"
)

// view selects which parts of the per-sensor envelope a query returns.
type view int

const (
	viewMeasurements view = iota
	viewStats
	viewOutliers
)

// Mirror receives a copy of every stored reading. Mirror failures are
// logged and never fail the primary write.
type Mirror interface {
	WriteMeasurement(ctx context.Context, networkCode, gatewayMac, sensorMac string, m Measurement) error
}

// Service is the query and ingestion facade over the measurement store.
// It resolves the ownership chain through the inventory before touching
// readings, computes statistics, and fans network-wide queries out across
// the network's sensors.
type Service struct {
	inventory inventory.Repository
	store     Repository
	mirror    Mirror
	logger    *logging.Logger
}

// NewService creates a measurement service. mirror may be nil.
func NewService(inv inventory.Repository, store Repository, mirror Mirror, logger *logging.Logger) *Service {
	return &Service{
		inventory: inv,
		store:     store,
		mirror:    mirror,
		logger:    logger,
	}
}

// Record stores a batch of readings for a sensor addressed by its full
// chain. The chain resolves first, so a wrong network or gateway fails
// with that link's not-found error before anything is written.
func (s *Service) Record(ctx context.Context, networkCode, gatewayMac, sensorMac string, readings []Measurement) error {
	sensorID, err := s.inventory.ResolveSensorID(ctx, networkCode, gatewayMac, sensorMac)
	if err != nil {
		return err
	}
	if err := s.store.Store(ctx, sensorID, readings); err != nil {
		return err
	}

	if s.mirror != nil {
		for _, m := range readings {
			if err := s.mirror.WriteMeasurement(ctx, networkCode, gatewayMac, sensorMac, m); err != nil {
				s.logger.Warn("measurement mirror write failed",
					"sensor", sensorMac, "error", err)
				break
			}
		}
	}
	return nil
}

// SensorSeries returns a sensor's readings in the window together with
// their statistics, each reading tagged as outlier or not.
func (s *Service) SensorSeries(ctx context.Context, networkCode, gatewayMac, sensorMac string, window Window) (*SensorSeries, error) {
	return s.sensorView(ctx, networkCode, gatewayMac, sensorMac, window, viewMeasurements)
}

// SensorStats returns only the statistics of a sensor's window.
func (s *Service) SensorStats(ctx context.Context, networkCode, gatewayMac, sensorMac string, window Window) (*SensorSeries, error) {
	return s.sensorView(ctx, networkCode, gatewayMac, sensorMac, window, viewStats)
}

// SensorOutliers returns statistics plus only the readings outside the
// two-sigma thresholds.
func (s *Service) SensorOutliers(ctx context.Context, networkCode, gatewayMac, sensorMac string, window Window) (*SensorSeries, error) {
	return s.sensorView(ctx, networkCode, gatewayMac, sensorMac, window, viewOutliers)
}

func (s *Service) sensorView(ctx context.Context, networkCode, gatewayMac, sensorMac string, window Window, v view) (*SensorSeries, error) {
	sensorID, err := s.inventory.ResolveSensorID(ctx, networkCode, gatewayMac, sensorMac)
	if err != nil {
		return nil, err
	}
	readings, err := s.store.ListBySensor(ctx, sensorID, window)
	if err != nil {
		return nil, fmt.Errorf("listing measurements for %s: %w", sensorMac, err)
	}
	series := buildSeries(sensorMac, readings, window, v)
	return &series, nil
}

// NetworkSeries returns one envelope per sensor in the network, readings
// plus statistics. sensorMacs narrows the set and fixes the result order;
// duplicates collapse to their first occurrence and MACs not in the
// network are silently dropped. An empty filter means every sensor.
func (s *Service) NetworkSeries(ctx context.Context, networkCode string, sensorMacs []string, window Window) ([]SensorSeries, error) {
	return s.networkView(ctx, networkCode, sensorMacs, window, viewMeasurements)
}

// NetworkStats is NetworkSeries restricted to statistics.
func (s *Service) NetworkStats(ctx context.Context, networkCode string, sensorMacs []string, window Window) ([]SensorSeries, error) {
	return s.networkView(ctx, networkCode, sensorMacs, window, viewStats)
}

// NetworkOutliers is NetworkSeries restricted to outlier readings.
func (s *Service) NetworkOutliers(ctx context.Context, networkCode string, sensorMacs []string, window Window) ([]SensorSeries, error) {
	return s.networkView(ctx, networkCode, sensorMacs, window, viewOutliers)
}

func (s *Service) networkView(ctx context.Context, networkCode string, sensorMacs []string, window Window, v view) ([]SensorSeries, error) {
	sensors, err := s.inventory.ListNetworkSensors(ctx, networkCode)
	if err != nil {
		return nil, err
	}

	// With a filter the result follows the filter's order, duplicates
	// collapsed to their first occurrence; without one, the network's
	// natural sensor enumeration.
	selected := sensors
	if len(sensorMacs) > 0 {
		byMac := make(map[string]inventory.Sensor, len(sensors))
		for _, sensor := range sensors {
			byMac[sensor.MacAddress] = sensor
		}
		seen := make(map[string]struct{}, len(sensorMacs))
		selected = make([]inventory.Sensor, 0, len(sensorMacs))
		for _, mac := range sensorMacs {
			if _, dup := seen[mac]; dup {
				continue
			}
			seen[mac] = struct{}{}
			sensor, ok := byMac[mac]
			if !ok {
				continue
			}
			selected = append(selected, sensor)
		}
	}

	results := []SensorSeries{}
	for _, sensor := range selected {
		readings, err := s.store.ListBySensor(ctx, sensor.ID, window)
		if err != nil {
			return nil, fmt.Errorf("listing measurements for %s: %w", sensor.MacAddress, err)
		}
		results = append(results, buildSeries(sensor.MacAddress, readings, window, v))
	}
	return results, nil
}

// buildSeries assembles the per-sensor envelope. No readings in the
// window means a bare envelope with just the MAC; otherwise stats are
// always present and the reading list depends on the view.
func buildSeries(sensorMac string, readings []Measurement, window Window, v view) SensorSeries {
	series := SensorSeries{SensorMacAddress: sensorMac}
	if len(readings) == 0 {
		return series
	}

	stats := ComputeStats(readings, window.From, window.To)
	TagOutliers(readings, stats)
	series.Stats = &stats

	switch v {
	case viewMeasurements:
		series.Measurements = readings
	case viewOutliers:
		series.Measurements = ExtractOutliers(readings)
	}
	return series
}
