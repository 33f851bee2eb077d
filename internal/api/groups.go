package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JN-EPHEC/what2do-backend/internal/models"
	"github.com/JN-EPHEC/what2do-backend/internal/storage"
)

type groupRequest struct {
	Name    string   `json:"name" validate:"required"`
	Members []string `json:"members" validate:"required,min=1,dive,required"`
	City    string   `json:"city"`
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	group := &models.Group{
		Name:    req.Name,
		Members: req.Members,
		City:    req.City,
	}
	if err := h.store.CreateGroup(r.Context(), group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create group")
		return
	}

	slog.Info("Group created", "group_id", group.ID, "members", len(group.Members))
	respondJSON(w, http.StatusCreated, group)
}

func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	group, err := h.store.GetGroup(r.Context(), groupID)
	if errors.Is(err, storage.ErrGroupNotFound) {
		respondError(w, http.StatusNotFound, "group not found")
		return
	}
	if err != nil {
		slog.Error("GetGroup failed", "group_id", groupID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to get group")
		return
	}

	respondJSON(w, http.StatusOK, group)
}

func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.store.ListGroups(r.Context())
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list groups")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (h *Handler) updateGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	var req groupRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	group := &models.Group{
		ID:      groupID,
		Name:    req.Name,
		Members: req.Members,
		City:    req.City,
	}
	err := h.store.UpdateGroup(r.Context(), group)
	if errors.Is(err, storage.ErrGroupNotFound) {
		respondError(w, http.StatusNotFound, "group not found")
		return
	}
	if err != nil {
		slog.Error("UpdateGroup failed", "group_id", groupID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to update group")
		return
	}

	updated, err := h.store.GetGroup(r.Context(), groupID)
	if err != nil {
		slog.Error("Failed to fetch updated group", "group_id", groupID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to get group")
		return
	}

	slog.Info("Group updated", "group_id", groupID)
	respondJSON(w, http.StatusOK, updated)
}
