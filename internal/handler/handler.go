// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tastebase/tastebase/internal/gateway"
	"github.com/tastebase/tastebase/internal/handler/dto"
	"github.com/tastebase/tastebase/internal/middleware"
	"github.com/tastebase/tastebase/internal/service"
)

// Error codes returned in the response body.
const (
	codeBadRequest      = "BAD_REQUEST"
	codeUnauthorized    = "UNAUTHORIZED"
	codeForbidden       = "FORBIDDEN"
	codeNotFound        = "NOT_FOUND"
	codeInternal        = "INTERNAL_ERROR"
	codePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message, Code: code})
}

// respondServiceError maps service and gateway errors to the HTTP error
// taxonomy. Unrecognized errors become 500 and are logged with the
// request id; their internals are never leaked to the client.
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var missing *service.MissingFieldsError
	if errors.As(err, &missing) {
		msg := fmt.Sprintf("Missing required fields: %s", strings.Join(missing.Fields, ", "))
		writeError(w, http.StatusBadRequest, msg, codeBadRequest)
		return
	}

	switch {
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "Email already exists", codeBadRequest)
	case errors.Is(err, service.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, "Username already exists", codeBadRequest)
	case errors.Is(err, service.ErrRecipeNotFound):
		writeError(w, http.StatusNotFound, "Recipe not found", codeNotFound)
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found", codeNotFound)
	case errors.Is(err, service.ErrContactNotFound):
		writeError(w, http.StatusNotFound, "Contact message not found", codeNotFound)
	case errors.Is(err, service.ErrReportNotFound):
		writeError(w, http.StatusNotFound, "Report not found", codeNotFound)
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, "You are not the owner of this recipe", codeForbidden)
	case errors.Is(err, gateway.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password", codeUnauthorized)
	case errors.Is(err, gateway.ErrSignUpRejected):
		writeError(w, http.StatusBadRequest, "Signup rejected: "+gatewayDetail(err), codeBadRequest)
	case errors.Is(err, gateway.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found", codeNotFound)
	default:
		logger.Error("request failed",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "Internal server error", codeInternal)
	}
}

// gatewayDetail strips the sentinel prefix from a wrapped gateway error,
// leaving only the upstream detail.
func gatewayDetail(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// decodeJSON decodes a JSON request body into v.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeMultipartError maps multipart parse failures. A body over the
// configured upload limit gets 413; anything else is a malformed form.
func writeMultipartError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large") {
		writeError(w, http.StatusRequestEntityTooLarge, "Uploaded file too large", codePayloadTooLarge)
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid multipart form", codeBadRequest)
}

// NotFound handles unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found", codeNotFound)
}

// MethodNotAllowed handles requests with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
}
