package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/geocontrol/geocontrol-core/internal/audit"
	"github.com/geocontrol/geocontrol-core/internal/inventory"
)

// handleListGateways returns the gateways of a network.
func (s *Server) handleListGateways(w http.ResponseWriter, r *http.Request) {
	gateways, err := s.inventory.ListGateways(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.writeTopologyError(w, r, err)
		return
	}
	if gateways == nil {
		gateways = []inventory.Gateway{}
	}
	writeJSON(w, http.StatusOK, gateways)
}

// handleGetGateway returns a single gateway with nested sensors.
func (s *Server) handleGetGateway(w http.ResponseWriter, r *http.Request) {
	gateway, err := s.inventory.GetGateway(r.Context(),
		chi.URLParam(r, "code"), chi.URLParam(r, "gatewayMac"))
	if err != nil {
		s.writeTopologyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gateway)
}

// handleCreateGateway creates a gateway under a network.
func (s *Server) handleCreateGateway(w http.ResponseWriter, r *http.Request) {
	var gateway inventory.Gateway
	if err := json.NewDecoder(r.Body).Decode(&gateway); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := inventory.ValidateGateway(&gateway); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.inventory.CreateGateway(r.Context(), chi.URLParam(r, "code"), &gateway); err != nil {
		s.writeTopologyError(w, r, err)
		return
	}
	s.recordAudit(r, audit.ActionCreate, audit.EntityGateway, gateway.MacAddress,
		map[string]any{"network": chi.URLParam(r, "code")})
	writeJSON(w, http.StatusCreated, gateway)
}

// handleUpdateGateway partially updates a gateway. A new MAC re-runs the
// shared identity guard.
func (s *Server) handleUpdateGateway(w http.ResponseWriter, r *http.Request) {
	var upd inventory.GatewayUpdate
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

	gateway, err := s.inventory.UpdateGateway(r.Context(),
		chi.URLParam(r, "code"), chi.URLParam(r, "gatewayMac"), upd)
	if err != nil {
		s.writeTopologyError(w, r, err)
		return
	}
	s.recordAudit(r, audit.ActionUpdate, audit.EntityGateway, gateway.MacAddress,
		map[string]any{"network": chi.URLParam(r, "code")})
	writeJSON(w, http.StatusOK, gateway)
}

// handleDeleteGateway removes a gateway and its sensors.
func (s *Server) handleDeleteGateway(w http.ResponseWriter, r *http.Request) {
	err := s.inventory.DeleteGateway(r.Context(),
		chi.URLParam(r, "code"), chi.URLParam(r, "gatewayMac"))
	if err != nil {
		s.writeTopologyError(w, r, err)
		return
	}
	s.recordAudit(r, audit.ActionDelete, audit.EntityGateway, chi.URLParam(r, "gatewayMac"),
		map[string]any{"network": chi.URLParam(r, "code")})
	w.WriteHeader(http.StatusNoContent)
}
