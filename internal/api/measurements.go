package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/geocontrol/geocontrol-core/internal/measurement"
)

// measurementItem is one reading in a POST body. The timestamp is a string
// so malformed values are reported per item, and Value is a pointer so a
// missing value is distinguishable from zero.
type measurementItem struct {
	CreatedAt string   `json:"createdAt"`
	Value     *float64 `json:"value"`
}

// parseWindow reads the optional startDate and endDate query parameters.
// A parameter that is present but unparsable is a client error; absence
// leaves that bound open.
func parseWindow(r *http.Request) (measurement.Window, error) {
	var window measurement.Window

	if raw := r.URL.Query().Get("startDate"); raw != "" {
		t, err := measurement.ParseTimestamp(raw)
		if err != nil {
			return window, fmt.Errorf("startDate: %w", err)
		}
		window.From = &t
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		t, err := measurement.ParseTimestamp(raw)
		if err != nil {
			return window, fmt.Errorf("endDate: %w", err)
		}
		window.To = &t
	}
	return window, nil
}

// parseSensorMacs reads the sensorMacs query parameter. Both repeated
// parameters and comma-separated lists are accepted.
func parseSensorMacs(r *http.Request) []string {
	var macs []string
	for _, raw := range r.URL.Query()["sensorMacs"] {
		for _, mac := range strings.Split(raw, ",") {
			mac = strings.TrimSpace(mac)
			if mac != "" {
				macs = append(macs, mac)
			}
		}
	}
	return macs
}

// writeMeasurementError maps measurement errors onto HTTP responses,
// falling back to the topology mapping for chain errors.
func (s *Server) writeMeasurementError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, measurement.ErrInvalidTimestamp),
		errors.Is(err, measurement.ErrNonFiniteValue),
		errors.Is(err, measurement.ErrEmptyBatch):
		writeBadRequest(w, err.Error())
	default:
		s.writeTopologyError(w, r, err)
	}
}

// handleNetworkMeasurements returns readings plus statistics for every
// selected sensor in the network.
//
// Query parameters:
//   - sensorMacs: restrict to these sensors (repeatable or comma-separated)
//   - startDate, endDate: inclusive ISO 8601 window bounds
func (s *Server) handleNetworkMeasurements(w http.ResponseWriter, r *http.Request) {
	s.serveNetworkQuery(w, r, s.measurements.NetworkSeries)
}

// handleNetworkStats returns only statistics for every selected sensor.
func (s *Server) handleNetworkStats(w http.ResponseWriter, r *http.Request) {
	s.serveNetworkQuery(w, r, s.measurements.NetworkStats)
}

// handleNetworkOutliers returns statistics plus outlier readings for every
// selected sensor.
func (s *Server) handleNetworkOutliers(w http.ResponseWriter, r *http.Request) {
	s.serveNetworkQuery(w, r, s.measurements.NetworkOutliers)
}

type networkQueryFunc func(ctx context.Context, networkCode string, sensorMacs []string, window measurement.Window) ([]measurement.SensorSeries, error)

func (s *Server) serveNetworkQuery(w http.ResponseWriter, r *http.Request, query networkQueryFunc) {
	window, err := parseWindow(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	results, err := query(r.Context(), chi.URLParam(r, "code"), parseSensorMacs(r), window)
	if err != nil {
		s.writeMeasurementError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// handleSensorMeasurements returns one sensor's readings plus statistics.
func (s *Server) handleSensorMeasurements(w http.ResponseWriter, r *http.Request) {
	s.serveSensorQuery(w, r, s.measurements.SensorSeries)
}

// handleSensorStats returns only one sensor's statistics.
func (s *Server) handleSensorStats(w http.ResponseWriter, r *http.Request) {
	s.serveSensorQuery(w, r, s.measurements.SensorStats)
}

// handleSensorOutliers returns one sensor's statistics plus outliers.
func (s *Server) handleSensorOutliers(w http.ResponseWriter, r *http.Request) {
	s.serveSensorQuery(w, r, s.measurements.SensorOutliers)
}

type sensorQueryFunc func(ctx context.Context, networkCode, gatewayMac, sensorMac string, window measurement.Window) (*measurement.SensorSeries, error)

func (s *Server) serveSensorQuery(w http.ResponseWriter, r *http.Request, query sensorQueryFunc) {
	window, err := parseWindow(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	series, err := query(r.Context(),
		chi.URLParam(r, "code"), chi.URLParam(r, "gatewayMac"), chi.URLParam(r, "sensorMac"), window)
	if err != nil {
		s.writeMeasurementError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// handleStoreMeasurements ingests a batch of readings for one sensor.
// The body is a JSON array of {createdAt, value}; the whole batch is
// stored atomically or rejected entirely.
func (s *Server) handleStoreMeasurements(w http.ResponseWriter, r *http.Request) {
	var items []measurementItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if len(items) == 0 {
		writeBadRequest(w, "measurement batch is empty")
		return
	}

	readings := make([]measurement.Measurement, 0, len(items))
	for i, item := range items {
		if item.Value == nil {
			writeBadRequest(w, fmt.Sprintf("measurement %d: value is required", i))
			return
		}
		createdAt, err := measurement.ParseTimestamp(item.CreatedAt)
		if err != nil {
			writeBadRequest(w, fmt.Sprintf("measurement %d: %s", i, err))
			return
		}
		readings = append(readings, measurement.Measurement{
			CreatedAt: createdAt,
			Value:     *item.Value,
		})
	}

	err := s.measurements.Record(r.Context(),
		chi.URLParam(r, "code"), chi.URLParam(r, "gatewayMac"), chi.URLParam(r, "sensorMac"), readings)
	if err != nil {
		s.writeMeasurementError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
