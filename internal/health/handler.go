package health

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"health-triage/internal/platform/web"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var metrics Metrics
	if err := json.NewDecoder(r.Body).Decode(&metrics); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	metrics.UserID = userID

	if err := h.repo.Upsert(r.Context(), &metrics); err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to add/update health metrics")
		return
	}

	web.JSON(w, http.StatusOK, map[string]any{
		"message": "Health metrics updated successfully",
		"data":    metrics,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	metrics, err := h.repo.Get(r.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		web.Error(w, http.StatusNotFound, "No health metrics found for this user")
		return
	}
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch health metrics")
		return
	}

	web.JSON(w, http.StatusOK, metrics)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	entries, err := h.repo.History(r.Context(), userID, Period(r.URL.Query().Get("period")))
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch health history")
		return
	}

	web.JSON(w, http.StatusOK, entries)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/users/{userID}/health", h.Save)
	r.Get("/users/{userID}/health", h.Get)
	r.Put("/users/{userID}/health", h.Save)
	r.Get("/users/{userID}/history", h.History)
}
