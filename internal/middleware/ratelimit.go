package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/tastebase/tastebase/internal/cache"
)

// RateLimitConfig holds dependencies for the credential-endpoint limiter.
type RateLimitConfig struct {
	Logger  *slog.Logger
	Cache   *cache.Cache
	Enabled bool
	RPS     int
	Burst   int
}

// RateLimitAuth limits unauthenticated credential endpoints (signup,
// login, password recovery) per client IP. Other routes are not limited.
// Redis failures fail open inside the cache layer, so a degraded Redis
// never blocks logins.
func RateLimitAuth(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled || cfg.Cache == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)

			result, err := cfg.Cache.CheckIPRateLimit(r.Context(), ip, cfg.RPS, cfg.Burst)
			if err != nil {
				// Should not happen (the cache fails open), but never
				// block a login on limiter trouble.
				cfg.Logger.Warn("rate limit check failed",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				cfg.Logger.Warn("rate limit exceeded",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("path", r.URL.Path),
				)
				writeRateLimitError(w, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP, preferring the RealIP middleware's
// rewrite of RemoteAddr.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeRateLimitError(w http.ResponseWriter, result *cache.RateLimitResult) {
	w.Header().Set("Content-Type", "application/json")
	if result.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
	}
	w.WriteHeader(http.StatusTooManyRequests)
	json.NewEncoder(w).Encode(map[string]string{
		"error": "Too many requests",
		"code":  "RATE_LIMITED",
	})
}
