package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/geocontrol/geocontrol-core/internal/audit"
	"github.com/geocontrol/geocontrol-core/internal/inventory"
)

// handleListNetworks returns all networks with nested gateways and sensors.
func (s *Server) handleListNetworks(w http.ResponseWriter, r *http.Request) {
	networks, err := s.inventory.ListNetworks(r.Context())
	if err != nil {
		s.writeTopologyError(w, r, err)
		return
	}
	if networks == nil {
		networks = []inventory.Network{}
	}
	writeJSON(w, http.StatusOK, networks)
}

// handleGetNetwork returns a single network by code.
func (s *Server) handleGetNetwork(w http.ResponseWriter, r *http.Request) {
	network, err := s.inventory.GetNetwork(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.writeTopologyError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, network)
}

// handleCreateNetwork creates a new network.
func (s *Server) handleCreateNetwork(w http.ResponseWriter, r *http.Request) {
	var network inventory.Network
	if err := json.NewDecoder(r.Body).Decode(&network); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if err := inventory.ValidateNetwork(&network); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.inventory.CreateNetwork(r.Context(), &network); err != nil {
		s.writeTopologyError(w, r, err)
		return
	}
	s.recordAudit(r, audit.ActionCreate, audit.EntityNetwork, network.Code, nil)
	writeJSON(w, http.StatusCreated, network)
}

// handleUpdateNetwork partially updates a network. A new code re-runs the
// availability guard.
func (s *Server) handleUpdateNetwork(w http.ResponseWriter, r *http.Request) {
	var upd inventory.NetworkUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if upd.Code != nil {
		if err := inventory.ValidateCode(*upd.Code); err != nil {
			writeBadRequest(w, err.Error())
			return
		}
	}

	network, err := s.inventory.UpdateNetwork(r.Context(), chi.URLParam(r, "code"), upd)
	if err != nil {
		s.writeTopologyError(w, r, err)
		return
	}
	s.recordAudit(r, audit.ActionUpdate, audit.EntityNetwork, network.Code, nil)
	writeJSON(w, http.StatusOK, network)
}

// handleDeleteNetwork removes a network and everything under it.
func (s *Server) handleDeleteNetwork(w http.ResponseWriter, r *http.Request) {
	if err := s.inventory.DeleteNetwork(r.Context(), chi.URLParam(r, "code")); err != nil {
		s.writeTopologyError(w, r, err)
		return
	}
	s.recordAudit(r, audit.ActionDelete, audit.EntityNetwork, chi.URLParam(r, "code"), nil)
	w.WriteHeader(http.StatusNoContent)
}
