package triage

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"health-triage/internal/platform/web"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type analyseRequest struct {
	Symptoms []int `json:"symptoms"`
}

func (h *Handler) Analyse(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req analyseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	result, err := h.svc.Analyse(r.Context(), userID, req.Symptoms)
	switch {
	case errors.Is(err, ErrNoSymptoms):
		web.Error(w, http.StatusBadRequest, "Invalid input data")
		return
	case errors.Is(err, ErrPatientDataMissing):
		web.Error(w, http.StatusNotFound, "Cannot analyse symptoms without user health data")
		return
	case err != nil:
		web.Error(w, http.StatusInternalServerError, "Failed to analyse symptoms")
		return
	}

	web.JSON(w, http.StatusOK, result)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	records, err := h.svc.History(r.Context(), userID)
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch symptom history")
		return
	}

	web.JSON(w, http.StatusOK, records)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/users/{userID}/symptoms/analyse", h.Analyse)
	r.Get("/users/{userID}/symptoms/history", h.History)
}
