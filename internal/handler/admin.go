package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tastebase/tastebase/internal/handler/dto"
	"github.com/tastebase/tastebase/internal/service"
)

// AdminHandler handles moderation endpoints.
// All routes are gated by the admin middleware.
type AdminHandler struct {
	admin  *service.AdminService
	logger *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

// GetAllUsers handles GET /api/get_all_users.
func (h *AdminHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromUsers(users))
}

// GetUser handles GET /api/get_user/{id}.
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.admin.GetUser(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromUser(user))
}

// RemoveUser handles DELETE /api/remove_user/{id}.
func (h *AdminHandler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.admin.RemoveUser(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "User removed"})
}

// SearchUser handles POST /api/search_user.
func (h *AdminHandler) SearchUser(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", codeBadRequest)
		return
	}

	users, err := h.admin.SearchUsers(r.Context(), req.Username)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromUsers(users))
}

// GetContactMessages handles GET /api/get_contact_messages.
func (h *AdminHandler) GetContactMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.admin.ListContactMessages(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromContactMessages(msgs))
}

// RemoveContact handles DELETE /api/remove_contact/{id}.
func (h *AdminHandler) RemoveContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.admin.RemoveContactMessage(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Contact message removed"})
}

// GetReportMessages handles GET /api/get_report_messages.
func (h *AdminHandler) GetReportMessages(w http.ResponseWriter, r *http.Request) {
	reports, err := h.admin.ListReports(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromReports(reports))
}

// RemoveReport handles DELETE /api/remove_report/{id}.
func (h *AdminHandler) RemoveReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.admin.RemoveReport(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Report removed"})
}
