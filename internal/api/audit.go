package api

import (
	"net/http"
	"strconv"

	"github.com/geocontrol/geocontrol-core/internal/audit"
)

// recordAudit writes an activity entry after a successful mutation.
//
// The audit trail is best-effort: a failed write is logged and the
// request that triggered it still succeeds. When no audit repository is
// configured the call is a no-op.
func (s *Server) recordAudit(r *http.Request, action, entityType, entityID string, details map[string]any) {
	if s.audits == nil {
		return
	}

	entry := audit.Entry{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Source:     "api",
		Details:    details,
	}
	if claims := claimsFrom(r.Context()); claims != nil {
		entry.UserID = claims.Subject
	}

	if err := s.audits.Create(r.Context(), &entry); err != nil {
		s.logger.Error("audit write failed",
			"action", action, "entity_type", entityType, "entity_id", entityID, "error", err)
	}
}

// handleListAudit returns the activity trail, most recent first.
//
// Query parameters: action, entityType, entityId, limit, offset.
func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	if s.audits == nil {
		writeNotFound(w, "audit trail is not enabled")
		return
	}

	q := r.URL.Query()
	filter := audit.Filter{
		Action:     q.Get("action"),
		EntityType: q.Get("entityType"),
		EntityID:   q.Get("entityId"),
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeBadRequest(w, "limit must be an integer")
			return
		}
		filter.Limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeBadRequest(w, "offset must be an integer")
			return
		}
		filter.Offset = n
	}

	result, err := s.audits.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("listing audit entries", "error", err)
		writeInternalError(w, "failed to list audit entries")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
