package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"health-triage/internal/platform/web"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		web.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	account, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if errors.Is(err, ErrEmailTaken) {
		web.Error(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	web.JSON(w, http.StatusCreated, map[string]any{
		"message": "Registration successful",
		"user":    account,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	account, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		web.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	web.JSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    account,
	})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		web.Error(w, http.StatusBadRequest, "Email and new password are required")
		return
	}

	err := h.svc.ResetPassword(r.Context(), req.Email, req.Password)
	if errors.Is(err, ErrUserNotFound) {
		web.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Password reset failed")
		return
	}

	web.JSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/forgotpassword", h.ForgotPassword)
}
