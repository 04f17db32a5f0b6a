package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/geocontrol/geocontrol-core/internal/audit"
	"github.com/geocontrol/geocontrol-core/internal/auth"
)

// createUserRequest is the request body for POST /users.
type createUserRequest struct {
	Username string    `json:"username"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
}

// updateUserRequest is the request body for PATCH /users/{id}.
// Both fields are optional; omitted fields are left unchanged.
type updateUserRequest struct {
	Role     *auth.Role `json:"role,omitempty"`
	Password *string    `json:"password,omitempty"`
}

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// handleListUsers returns all user accounts.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		writeInternalError(w, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users, "count": len(users)})
}

// handleGetUser returns a single user account by ID.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeNotFound(w, "user not found")
			return
		}
		writeInternalError(w, "failed to get user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleCreateUser creates a new user account.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if !auth.IsValidUsername(req.Username) {
		writeBadRequest(w, "invalid username")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeBadRequest(w, "password must be at least 8 characters")
		return
	}
	if !auth.IsValidUserRole(req.Role) {
		writeBadRequest(w, "role must be one of viewer, operator, admin")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		writeInternalError(w, "failed to create user")
		return
	}

	user := &auth.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, auth.ErrUsernameExists) {
			writeConflict(w, "username already exists")
			return
		}
		writeInternalError(w, "failed to create user")
		return
	}

	s.recordAudit(r, audit.ActionCreate, audit.EntityUser, user.ID,
		map[string]any{"username": user.Username, "role": string(user.Role)})
	writeJSON(w, http.StatusCreated, user)
}

// handleUpdateUser changes a user's role and/or password.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Role == nil && req.Password == nil {
		writeBadRequest(w, "nothing to update")
		return
	}

	if req.Role != nil {
		if !auth.IsValidUserRole(*req.Role) {
			writeBadRequest(w, "role must be one of viewer, operator, admin")
			return
		}
		if err := s.users.UpdateRole(r.Context(), id, *req.Role); err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				writeNotFound(w, "user not found")
				return
			}
			writeInternalError(w, "failed to update user")
			return
		}
	}

	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			writeBadRequest(w, "password must be at least 8 characters")
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			s.logger.Error("failed to hash password", "error", err)
			writeInternalError(w, "failed to update user")
			return
		}
		if err := s.users.UpdatePassword(r.Context(), id, hash); err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				writeNotFound(w, "user not found")
				return
			}
			writeInternalError(w, "failed to update user")
			return
		}
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		writeInternalError(w, "failed to load user")
		return
	}
	s.recordAudit(r, audit.ActionUpdate, audit.EntityUser, id, nil)
	writeJSON(w, http.StatusOK, user)
}

// handleDeleteUser removes a user account. Deleting your own account is
// refused so an installation cannot lock out its last admin mid-session.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if claims := claimsFrom(r.Context()); claims != nil && claims.Subject == id {
		writeForbidden(w, "cannot delete own account")
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeNotFound(w, "user not found")
			return
		}
		writeInternalError(w, "failed to delete user")
		return
	}

	s.recordAudit(r, audit.ActionDelete, audit.EntityUser, id, nil)
	w.WriteHeader(http.StatusNoContent)
}
