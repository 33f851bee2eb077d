package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JN-EPHEC/what2do-backend/internal/models"
	"github.com/JN-EPHEC/what2do-backend/internal/storage"
)

type profileRequest struct {
	// Interests may be empty: a user can clear their profile.
	Interests []string `json:"interests" validate:"omitempty,dive,required"`
}

func (h *Handler) putProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req profileRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	profile := &models.Profile{
		UserID:    userID,
		Interests: req.Interests,
	}
	if err := h.store.PutProfile(r.Context(), profile); err != nil {
		slog.Error("PutProfile failed", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	profile, err := h.store.GetProfile(r.Context(), userID)
	if errors.Is(err, storage.ErrProfileNotFound) {
		respondError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		slog.Error("GetProfile failed", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
