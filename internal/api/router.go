package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/geocontrol/geocontrol-core/internal/auth"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		// Auth endpoints (no auth required)
		r.Post("/auth/login", s.handleLogin)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/auth/me", s.handleMe)

			// Activity trail (admin only)
			r.With(s.requirePermission(auth.PermUserManage)).Get("/audit", s.handleListAudit)

			// User management (admin only)
			r.Route("/users", func(r chi.Router) {
				r.Use(s.requirePermission(auth.PermUserManage))
				r.Get("/", s.handleListUsers)
				r.Post("/", s.handleCreateUser)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetUser)
					r.Patch("/", s.handleUpdateUser)
					r.Delete("/", s.handleDeleteUser)
				})
			})

			// Topology endpoints
			r.Route("/networks", func(r chi.Router) {
				r.With(s.requirePermission(auth.PermTopologyRead)).Get("/", s.handleListNetworks)
				r.With(s.requirePermission(auth.PermTopologyManage)).Post("/", s.handleCreateNetwork)

				r.Route("/{code}", func(r chi.Router) {
					r.With(s.requirePermission(auth.PermTopologyRead)).Get("/", s.handleGetNetwork)
					r.With(s.requirePermission(auth.PermTopologyManage)).Patch("/", s.handleUpdateNetwork)
					r.With(s.requirePermission(auth.PermTopologyManage)).Delete("/", s.handleDeleteNetwork)

					// Network-wide measurement queries
					r.Group(func(r chi.Router) {
						r.Use(s.requirePermission(auth.PermMeasurementRead))
						r.Get("/measurements", s.handleNetworkMeasurements)
						r.Get("/stats", s.handleNetworkStats)
						r.Get("/outliers", s.handleNetworkOutliers)
					})

					r.Route("/gateways", func(r chi.Router) {
						r.With(s.requirePermission(auth.PermTopologyRead)).Get("/", s.handleListGateways)
						r.With(s.requirePermission(auth.PermTopologyManage)).Post("/", s.handleCreateGateway)

						r.Route("/{gatewayMac}", func(r chi.Router) {
							r.With(s.requirePermission(auth.PermTopologyRead)).Get("/", s.handleGetGateway)
							r.With(s.requirePermission(auth.PermTopologyManage)).Patch("/", s.handleUpdateGateway)
							r.With(s.requirePermission(auth.PermTopologyManage)).Delete("/", s.handleDeleteGateway)

							r.Route("/sensors", func(r chi.Router) {
								r.With(s.requirePermission(auth.PermTopologyRead)).Get("/", s.handleListSensors)
								r.With(s.requirePermission(auth.PermTopologyManage)).Post("/", s.handleCreateSensor)

								r.Route("/{sensorMac}", func(r chi.Router) {
									r.With(s.requirePermission(auth.PermTopologyRead)).Get("/", s.handleGetSensor)
									r.With(s.requirePermission(auth.PermTopologyManage)).Patch("/", s.handleUpdateSensor)
									r.With(s.requirePermission(auth.PermTopologyManage)).Delete("/", s.handleDeleteSensor)

									// Per-sensor measurement endpoints
									r.With(s.requirePermission(auth.PermMeasurementRead)).Get("/measurements", s.handleSensorMeasurements)
									r.With(s.requirePermission(auth.PermMeasurementWrite)).Post("/measurements", s.handleStoreMeasurements)
									r.With(s.requirePermission(auth.PermMeasurementRead)).Get("/stats", s.handleSensorStats)
									r.With(s.requirePermission(auth.PermMeasurementRead)).Get("/outliers", s.handleSensorOutliers)
								})
							})
						})
					})
				})
			})
		})
	})

	return r
}

// handleHealth returns the server health status. When the database handle
// is wired it is pinged too, so load balancers see storage failures.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.HealthCheck(ctx); err != nil {
			s.logger.Error("database health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status":  "degraded",
				"version": s.version,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  status,
		"version": s.version,
	})
}
