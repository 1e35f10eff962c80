package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tastebase/tastebase/internal/gateway"
	"github.com/tastebase/tastebase/internal/handler/dto"
	"github.com/tastebase/tastebase/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing fields",
			err:        &service.MissingFieldsError{Fields: []string{"title", "instructions"}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "email taken",
			err:        service.ErrEmailTaken,
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "username taken",
			err:        service.ErrUsernameTaken,
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "recipe not found",
			err:        service.ErrRecipeNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "user not found",
			err:        service.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "not owner",
			err:        service.ErrNotOwner,
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name:       "wrapped not owner",
			err:        fmt.Errorf("update recipe: %w", service.ErrNotOwner),
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name:       "invalid credentials",
			err:        fmt.Errorf("%w: bad login", gateway.ErrInvalidCredentials),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "signup rejected",
			err:        fmt.Errorf("%w: password too weak", gateway.ErrSignUpRejected),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "unknown error",
			err:        errors.New("pool exhausted"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/test", nil)

			respondServiceError(rec, req, discardLogger(), tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
			if body.Error == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestRespondServiceErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)

	respondServiceError(rec, req, discardLogger(), errors.New("dial tcp 10.0.0.3:5432: connection refused"))

	var body dto.ErrorResponse
	json.NewDecoder(rec.Body).Decode(&body)
	if body.Error != "Internal server error" {
		t.Errorf("error = %q, internals leaked", body.Error)
	}
}

func TestMissingFieldsMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/create_recipe", nil)

	respondServiceError(rec, req, discardLogger(), &service.MissingFieldsError{Fields: []string{"title", "ingredients"}})

	var body dto.ErrorResponse
	json.NewDecoder(rec.Body).Decode(&body)
	want := "Missing required fields: title, ingredients"
	if body.Error != want {
		t.Errorf("error = %q, want %q", body.Error, want)
	}
}
