package report

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"health-triage/internal/platform/web"
	"health-triage/internal/triage"
)

type Handler struct {
	svc       *Service
	triageSvc triage.Service
}

func NewHandler(svc *Service, triageSvc triage.Service) *Handler {
	return &Handler{svc: svc, triageSvc: triageSvc}
}

// LatestReport renders the user's most recent analysis as a PDF.
func (h *Handler) LatestReport(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	record, err := h.triageSvc.Latest(r.Context(), userID)
	if errors.Is(err, triage.ErrNotFound) {
		web.Error(w, http.StatusNotFound, "No analysis found for this user")
		return
	}
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch analysis")
		return
	}

	pdfData, err := h.svc.RenderPDF(record)
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="analysis_%s.pdf"`, record.ID))
	w.Write(pdfData)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/users/{userID}/symptoms/report", h.LatestReport)
}
