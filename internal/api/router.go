// Package api exposes the HTTP surface consumed by the What2do mobile app:
// group and profile management, the activity catalog, and the suggestion
// endpoints backed by the recommendation engine.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JN-EPHEC/what2do-backend/internal/auth"
	"github.com/JN-EPHEC/what2do-backend/internal/middleware"
	"github.com/JN-EPHEC/what2do-backend/internal/service"
	"github.com/JN-EPHEC/what2do-backend/internal/storage"
)

// Handler bundles the dependencies shared by all route handlers.
type Handler struct {
	store       storage.Store
	recommender *service.Recommender
	validate    *validator.Validate
}

// NewRouter builds the service's HTTP handler. A nil jwtManager disables
// authentication on mutating routes (local development).
func NewRouter(store storage.Store, recommender *service.Recommender, jwtManager *auth.JWTManager) http.Handler {
	h := &Handler{
		store:       store,
		recommender: recommender,
		validate:    validator.New(),
	}

	requireAuth := func(next http.Handler) http.Handler { return next }
	if jwtManager != nil {
		requireAuth = middleware.RequireAuth(jwtManager)
	}

	r := chi.NewRouter()
	if jwtManager != nil {
		// Must run before the request logger so authenticated reads carry
		// their user_id in the request log.
		r.Use(middleware.OptionalAuth(jwtManager))
	}
	r.Use(middleware.RequestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/groups", h.listGroups)
		r.Get("/groups/{groupID}", h.getGroup)
		r.Get("/groups/{groupID}/suggestions", h.getGroupSuggestions)
		r.Get("/profiles/{userID}", h.getProfile)
		r.Get("/activities", h.listActivities)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/groups", h.createGroup)
			r.Put("/groups/{groupID}", h.updateGroup)
			r.Put("/profiles/{userID}", h.putProfile)
			r.Post("/activities", h.createActivity)
			r.Post("/groups/{groupID}/suggestions/refresh", h.refreshGroupSuggestions)
		})
	})

	return r
}
