package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tastebase/tastebase/internal/auth"
	"github.com/tastebase/tastebase/internal/model"
	"github.com/tastebase/tastebase/internal/repository"
)

// UserFinder loads a user row by id. Implemented by the repository.
type UserFinder interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// AdminConfig holds dependencies for the admin gate.
type AdminConfig struct {
	Logger *slog.Logger
	Users  UserFinder
}

// RequireAdmin gates a route group on the caller's is_admin flag.
// The flag is read fresh from the store on every request. The gate fails
// closed: if the user row cannot be loaded for any reason other than it
// not existing, the request is rejected with 401, not allowed through.
func RequireAdmin(cfg AdminConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := auth.IdentityFromContext(r.Context())
			if identity == nil {
				writeAdminError(w, http.StatusUnauthorized, "Token is missing", "UNAUTHORIZED")
				return
			}

			user, err := cfg.Users.GetUserByID(r.Context(), identity.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					// Valid token but no profile row: not an admin.
					writeAdminError(w, http.StatusForbidden, "Admin access required", "FORBIDDEN")
					return
				}

				cfg.Logger.Error("admin check failed",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("user_id", identity.UserID),
					slog.String("error", err.Error()),
				)
				writeAdminError(w, http.StatusUnauthorized, "Unable to verify admin access", "UNAUTHORIZED")
				return
			}

			if !user.IsAdmin {
				writeAdminError(w, http.StatusForbidden, "Admin access required", "FORBIDDEN")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAdminError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  code,
	})
}
