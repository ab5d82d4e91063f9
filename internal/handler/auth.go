// Package handler is the HTTP layer: it decodes request bodies, calls the
// service layer, and writes JSON responses. No business rules live here.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/devconnector/internal/auth"
	"github.com/sakif/devconnector/internal/service"
)

// AuthHandler serves the authentication endpoints:
//
//	POST /api/users → register, returns {token}
//	POST /api/auth  → login, returns {token}
//	GET  /api/auth  → current user (private)
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// tokenResponse is the success body for register and login.
type tokenResponse struct {
	Token string `json:"token"`
}

// registerRequest is the POST /api/users body.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister registers a new account.
//
// HTTP: POST /api/users (public)
// Body: {"name": ..., "email": ..., "password": ...}
// 200 → {"token": "..."}; validation and duplicate-email failures → 400.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid register JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorList{Errors: []fieldError{
			{Msg: "Invalid JSON body"},
		}})
		return
	}

	token, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// loginRequest is the POST /api/auth body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin authenticates an existing account.
//
// HTTP: POST /api/auth (public)
// 200 → {"token": "..."}; unknown email and wrong password both → 400 with
// the identical "Invalid Credentials" body.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorList{Errors: []fieldError{
			{Msg: "Invalid JSON body"},
		}})
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// HandleMe returns the authenticated user's record, sans password hash.
//
// HTTP: GET /api/auth (private — RequireAuth puts the userID in context)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Unreachable on a RequireAuth route, but guard anyway.
		writeJSON(w, http.StatusUnauthorized, messageBody{Msg: "Token Verification failed"})
		return
	}

	user, err := h.svc.GetCurrentUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("current user lookup failed", slog.String("userID", userID))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
