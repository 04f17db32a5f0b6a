package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/geocontrol/geocontrol-core/internal/audit"
	"github.com/geocontrol/geocontrol-core/internal/inventory"
)

// handleListSensors returns the sensors of a gateway.
func (s *Server) handleListSensors(w http.ResponseWriter, r *http.Request) {
	sensors, err := s.inventory.ListSensors(r.Context(),
		chi.URLParam(r, "code"), chi.URLParam(r, "gatewayMac"))
	if err != nil {
		s.writeTopologyError(w, r, err)
		return
	}
	if sensors == nil {
		sensors = []inventory.Sensor{}
	}
	writeJSON(w, http.StatusOK, sensors)
}

// handleGetSensor returns a single sensor addressed by its full chain.
func (s *Server) handleGetSensor(w http.ResponseWriter, r *http.Request) {
	sensor, err := s.inventory.GetSensor(r.Context(),
		chi.URLParam(r, "code"), chi.URLParam(r, "gatewayMac"), chi.URLParam(r, "sensorMac"))
	if err != nil {
		s.writeTopologyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sensor)
}

// handleCreateSensor creates a sensor under a gateway.
func (s *Server) handleCreateSensor(w http.ResponseWriter, r *http.Request) {
	var sensor inventory.Sensor
	if err := json.NewDecoder(r.Body).Decode(&sensor); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := inventory.ValidateSensor(&sensor); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	err := s.inventory.CreateSensor(r.Context(),
		chi.URLParam(r, "code"), chi.URLParam(r, "gatewayMac"), &sensor)
	if err != nil {
		s.writeTopologyError(w, r, err)
		return
	}
	s.recordAudit(r, audit.ActionCreate, audit.EntitySensor, sensor.MacAddress,
		map[string]any{"network": chi.URLParam(r, "code"), "gateway": chi.URLParam(r, "gatewayMac")})
	writeJSON(w, http.StatusCreated, sensor)
}

// handleUpdateSensor partially updates a sensor. A new MAC re-runs the
// shared identity guard.
func (s *Server) handleUpdateSensor(w http.ResponseWriter, r *http.Request) {
	var upd inventory.SensorUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if upd.MacAddress != nil {
		if err := inventory.ValidateMac(*upd.MacAddress); err != nil {
			writeBadRequest(w, err.Error())
			return
		}
	}

	sensor, err := s.inventory.UpdateSensor(r.Context(),
		chi.URLParam(r, "code"), chi.URLParam(r, "gatewayMac"), chi.URLParam(r, "sensorMac"), upd)
	if err != nil {
		s.writeTopologyError(w, r, err)
		return
	}
	s.recordAudit(r, audit.ActionUpdate, audit.EntitySensor, sensor.MacAddress,
		map[string]any{"network": chi.URLParam(r, "code"), "gateway": chi.URLParam(r, "gatewayMac")})
	writeJSON(w, http.StatusOK, sensor)
}

// handleDeleteSensor removes a sensor and its measurements.
func (s *Server) handleDeleteSensor(w http.ResponseWriter, r *http.Request) {
	err := s.inventory.DeleteSensor(r.Context(),
		chi.URLParam(r, "code"), chi.URLParam(r, "gatewayMac"), chi.URLParam(r, "sensorMac"))
	if err != nil {
		s.writeTopologyError(w, r, err)
		return
	}
	s.recordAudit(r, audit.ActionDelete, audit.EntitySensor, chi.URLParam(r, "sensorMac"),
		map[string]any{"network": chi.URLParam(r, "code"), "gateway": chi.URLParam(r, "gatewayMac")})
	w.WriteHeader(http.StatusNoContent)
}
