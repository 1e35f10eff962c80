package handler

import (
	"log/slog"
	"net/http"

	"github.com/tastebase/tastebase/internal/auth"
	"github.com/tastebase/tastebase/internal/handler/dto"
	"github.com/tastebase/tastebase/internal/service"
)

// UserHandler handles profile and account endpoints for the caller.
type UserHandler struct {
	users         *service.UserService
	logger        *slog.Logger
	maxUploadSize int64
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger, maxUploadSize int64) *UserHandler {
	return &UserHandler{
		users:         users,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

// Profile handles GET /api/profile.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	callerID := auth.UserIDFromContext(r.Context())

	user, err := h.users.Profile(r.Context(), callerID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromUser(user))
}

// UpdateProfile handles PUT /api/update_profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", codeBadRequest)
		return
	}

	callerID := auth.UserIDFromContext(r.Context())
	user, err := h.users.UpdateProfile(r.Context(), callerID, req.Name, req.Username)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromUser(user))
}

// UploadProfilePic handles POST /api/upload_profile_pic.
// Expects a multipart form with a "file" field.
func (h *UserHandler) UploadProfilePic(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeMultipartError(w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields: file", codeBadRequest)
		return
	}
	defer file.Close()

	callerID := auth.UserIDFromContext(r.Context())
	img := service.NewImageUpload(
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)

	url, err := h.users.UploadProfilePicture(r.Context(), callerID, img)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UploadResponse{
		Message: "Profile picture updated",
		URL:     url,
	})
}

// ChangePassword handles POST /api/change_password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	h.setPassword(w, r, "Password changed successfully")
}

// ResetPassword handles POST /api/reset_password.
// Same credential update as ChangePassword; the caller authenticates
// with the recovery token issued by the forgot-password email.
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	h.setPassword(w, r, "Password reset successfully")
}

func (h *UserHandler) setPassword(w http.ResponseWriter, r *http.Request, successMsg string) {
	var req dto.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", codeBadRequest)
		return
	}

	callerID := auth.UserIDFromContext(r.Context())
	if err := h.users.ChangePassword(r.Context(), callerID, req.NewPassword); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: successMsg})
}

// Contact handles POST /api/contact.
func (h *UserHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", codeBadRequest)
		return
	}

	callerID := auth.UserIDFromContext(r.Context())
	if err := h.users.Contact(r.Context(), callerID, req.Subject, req.Message); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MessageResponse{Message: "Message received"})
}
