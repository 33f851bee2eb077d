package api

import (
	"log/slog"
	"net/http"

	"github.com/JN-EPHEC/what2do-backend/internal/models"
)

type activityRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       string   `json:"price" validate:"required,oneof=Gratuit Payant"`
	Location    string   `json:"location"`
	Interests   []string `json:"interests" validate:"omitempty,dive,required"`
	Image       string   `json:"image"`
	IsNew       bool     `json:"isNew"`
	Date        string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *Handler) createActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	activity := &models.Activity{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Location:    req.Location,
		Interests:   req.Interests,
		Image:       req.Image,
		IsNew:       req.IsNew,
		Date:        req.Date,
	}
	if err := h.store.CreateActivity(r.Context(), activity); err != nil {
		slog.Error("CreateActivity failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create activity")
		return
	}

	slog.Info("Activity created", "activity_id", activity.ID, "title", activity.Title)
	respondJSON(w, http.StatusCreated, activity)
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.store.ListActivities(r.Context())
	if err != nil {
		slog.Error("ListActivities failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list activities")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"activities": activities})
}
