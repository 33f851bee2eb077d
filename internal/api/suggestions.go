package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JN-EPHEC/what2do-backend/internal/models"
)

// getGroupSuggestions serves the lookup path: the persisted suggestion record
// resolved to full activity records, computing it first if the group has
// never been scored. Mirroring what the app has always shown, failures
// collapse to an empty list; diagnostics go to the logs.
func (h *Handler) getGroupSuggestions(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	activities := h.recommender.GroupSuggestionsOrEmpty(r.Context(), groupID)
	if activities == nil {
		activities = []models.Activity{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"activities": activities})
}

// refreshGroupSuggestions forces a fresh recommendation run and returns the
// ranked suggestions with scores and matched tags.
func (h *Handler) refreshGroupSuggestions(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	suggestions := h.recommender.SuggestionsOrEmpty(r.Context(), groupID)
	if suggestions == nil {
		suggestions = []models.ScoredSuggestion{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}
