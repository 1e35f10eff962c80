package handler

import (
	"log/slog"
	"net/http"

	"github.com/tastebase/tastebase/internal/auth"
	"github.com/tastebase/tastebase/internal/handler/dto"
	"github.com/tastebase/tastebase/internal/service"
)

// AuthHandler handles signup, login and password recovery endpoints.
type AuthHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *service.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger}
}

// Signup handles POST /api/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", codeBadRequest)
		return
	}

	userID, err := h.users.Signup(r.Context(), service.SignupInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.SignupResponse{
		Message: "User registered successfully",
		UserID:  userID,
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", codeBadRequest)
		return
	}

	session, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		AccessToken: session.AccessToken,
		UserID:      session.UserID,
	})
}

// ValidateToken handles GET /api/validate_token.
// Runs behind the auth middleware, so reaching it means the token is valid.
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	callerID := auth.UserIDFromContext(r.Context())

	user, err := h.users.Profile(r.Context(), callerID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ValidateTokenResponse{
		Valid: true,
		User:  dto.FromUser(user),
	})
}

// ForgotPassword handles POST /api/forgot_password.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", codeBadRequest)
		return
	}

	if err := h.users.ForgotPassword(r.Context(), req.Email); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{
		Message: "Password reset email sent",
	})
}
