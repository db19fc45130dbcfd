package medical

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

type saveRequest struct {
	Medical   *Info      `json:"medical"`
	Lifestyle *Lifestyle `json:"lifestyle"`
}

// payload tolerates both request shapes the frontend uses: medical
// fields at the top level (add) or nested under "medical" (update).
func decodePayload(r *http.Request) (*Info, *Lifestyle, error) {
	var req struct {
		Info
		saveRequest
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, nil, err
	}

	info := req.Info
	if req.Medical != nil {
		info = *req.Medical
	}
	lifestyle := &Lifestyle{}
	if req.saveRequest.Lifestyle != nil {
		lifestyle = req.saveRequest.Lifestyle
	}
	return &info, lifestyle, nil
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	info, lifestyle, err := decodePayload(r)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if err := h.repo.Add(r.Context(), userID, info, lifestyle); err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to add medical information")
		return
	}

	web.JSON(w, http.StatusCreated, map[string]string{"message": "Medical information added successfully"})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	info, lifestyle, err := decodePayload(r)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if err := h.repo.Update(r.Context(), userID, info, lifestyle); err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to update medical information")
		return
	}

	web.JSON(w, http.StatusOK, map[string]string{"message": "Medical information updated successfully"})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	record, err := h.repo.Get(r.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		web.Error(w, http.StatusNotFound, "Medical information not found")
		return
	}
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch medical information")
		return
	}

	web.JSON(w, http.StatusOK, record)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/users/{userID}/medical", h.Add)
	r.Put("/users/{userID}/medical", h.Update)
	r.Get("/users/{userID}/medical", h.Get)
}
