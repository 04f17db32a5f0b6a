package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/geocontrol/geocontrol-core/internal/inventory"
)

// writeTopologyError maps inventory errors onto HTTP responses. Not-found
// messages name the failing link of the addressing chain so callers can
// tell a missing network from a missing gateway or sensor.
func (s *Server) writeTopologyError(w http.ResponseWriter, r *http.Request, err error) {
	code := chi.URLParam(r, "code")
	gatewayMac := chi.URLParam(r, "gatewayMac")
	sensorMac := chi.URLParam(r, "sensorMac")

	switch {
	case errors.Is(err, inventory.ErrNetworkNotFound):
		writeNotFound(w, fmt.Sprintf("network '%s' not found", code))
	case errors.Is(err, inventory.ErrGatewayNotFound):
		writeNotFound(w, fmt.Sprintf("gateway '%s' not found in network '%s'", gatewayMac, code))
	case errors.Is(err, inventory.ErrSensorNotFound):
		writeNotFound(w, fmt.Sprintf("sensor '%s' not found under gateway '%s' in network '%s'", sensorMac, gatewayMac, code))
	case errors.Is(err, inventory.ErrNetworkCodeInUse):
		writeConflict(w, "network code already in use")
	case errors.Is(err, inventory.ErrMacInUse):
		writeConflict(w, "mac address already in use by a gateway or sensor")
	case errors.Is(err, inventory.ErrInvalidCode), errors.Is(err, inventory.ErrInvalidMac):
		writeBadRequest(w, err.Error())
	default:
		s.logger.Error("topology operation failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", r.Context().Value(ctxKeyRequestID),
		)
		writeInternalError(w, "internal server error")
	}
}
