package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tastebase/tastebase/internal/auth"
	"github.com/tastebase/tastebase/internal/gateway"
	"github.com/tastebase/tastebase/internal/model"
)

// TokenVerifier resolves a bearer token to a caller identity.
// Implemented by the gateway client.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*model.Identity, error)
}

// AuthConfig holds dependencies for the auth middleware.
type AuthConfig struct {
	Logger   *slog.Logger
	Verifier TokenVerifier
}

// Auth authenticates requests via a Bearer token in the Authorization
// header. The token is verified against the gateway on every request;
// verification results are never cached, so a revoked token is rejected
// immediately. Requests with a missing or malformed header are rejected
// without contacting the gateway at all.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r)
			if !ok {
				writeAuthError(w, "Token is missing", "")
				return
			}

			identity, err := cfg.Verifier.VerifyToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, gateway.ErrInvalidToken) {
					cfg.Logger.Warn("token rejected",
						slog.String("request_id", GetRequestID(r.Context())),
						slog.String("error", err.Error()),
					)
					writeAuthError(w, "Invalid token", err.Error())
					return
				}

				// Gateway unreachable or misbehaving. Fail closed.
				cfg.Logger.Error("token verification failed",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("error", err.Error()),
				)
				writeAuthError(w, "Invalid token", err.Error())
				return
			}

			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the token out of the Authorization header.
// Returns false when the header is absent or not in Bearer form.
func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// writeAuthError writes a 401 JSON error. The details field carries the
// gateway's diagnostic message and is never used for flow control.
func writeAuthError(w http.ResponseWriter, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	body := map[string]string{
		"error": message,
		"code":  "UNAUTHORIZED",
	}
	if details != "" {
		body["details"] = details
	}
	json.NewEncoder(w).Encode(body)
}
