package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

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

type profileRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"dob"`
	Gender      string `json:"gender"`
	Country     string `json:"country"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		web.Error(w, http.StatusBadRequest, "Required fields are missing")
		return
	}

	profile := &Profile{
		ID:          userID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Gender:      req.Gender,
		Country:     req.Country,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			web.Error(w, http.StatusBadRequest, "Invalid date of birth")
			return
		}
		profile.DateOfBirth = &dob
	}

	if err := h.svc.SaveProfile(r.Context(), profile); err != nil {
		if errors.Is(err, ErrNotFound) {
			web.Error(w, http.StatusNotFound, "User not found")
			return
		}
		web.Error(w, http.StatusInternalServerError, "Failed to save user profile")
		return
	}

	web.JSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"userId":  userID,
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	profile, err := h.svc.GetProfile(r.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		web.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch user profile")
		return
	}

	web.JSON(w, http.StatusOK, profile)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		web.Error(w, http.StatusBadRequest, "Both current password and new password are required")
		return
	}

	err = h.svc.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, ErrNotFound):
		web.Error(w, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, ErrPasswordIncorrect):
		web.Error(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	case err != nil:
		web.Error(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	web.JSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req deleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		web.Error(w, http.StatusBadRequest, "Password is required for account deletion")
		return
	}

	err = h.svc.DeleteAccount(r.Context(), userID, req.Password)
	switch {
	case errors.Is(err, ErrNotFound):
		web.Error(w, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, ErrPasswordIncorrect):
		web.Error(w, http.StatusUnauthorized, "Invalid password")
		return
	case err != nil:
		web.Error(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	web.JSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/users/{userID}/profile", h.SaveProfile)
	r.Get("/users/{userID}/profile", h.GetProfile)
	r.Put("/users/{userID}/profile", h.SaveProfile)
	r.Put("/users/{userID}/password", h.ChangePassword)
	r.Delete("/users/{userID}", h.DeleteAccount)
}
