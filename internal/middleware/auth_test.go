package middleware

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tastebase/tastebase/internal/auth"
	"github.com/tastebase/tastebase/internal/gateway"
	"github.com/tastebase/tastebase/internal/model"
)

type fakeVerifier struct {
	identity *model.Identity
	err      error
	calls    int
}

func (f *fakeVerifier) VerifyToken(ctx context.Context, token string) (*model.Identity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthMalformedHeaderSkipsVerifier(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc123"},
		{"no token", "Bearer "},
		{"bare token", "sometoken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{}
			mw := Auth(AuthConfig{Logger: discardLogger(), Verifier: verifier})

			handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be reached")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if verifier.calls != 0 {
				t.Errorf("verifier called %d times, want 0", verifier.calls)
			}
		})
	}
}

func TestAuthValidToken(t *testing.T) {
	verifier := &fakeVerifier{identity: &model.Identity{UserID: "user-1", Email: "a@b.com"}}
	mw := Auth(AuthConfig{Logger: discardLogger(), Verifier: verifier})

	var gotID string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = auth.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotID != "user-1" {
		t.Errorf("caller id = %q, want %q", gotID, "user-1")
	}
	if verifier.calls != 1 {
		t.Errorf("verifier called %d times, want 1", verifier.calls)
	}
}

func TestAuthRejectedToken(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"invalid token", fmt.Errorf("%w: token expired", gateway.ErrInvalidToken)},
		{"gateway down", fmt.Errorf("gateway verify call failed: connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{err: tt.err}
			mw := Auth(AuthConfig{Logger: discardLogger(), Verifier: verifier})

			handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be reached")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
			req.Header.Set("Authorization", "Bearer bad-token")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
		})
	}
}

func TestAuthVerifiesEveryRequest(t *testing.T) {
	verifier := &fakeVerifier{identity: &model.Identity{UserID: "user-1"}}
	mw := Auth(AuthConfig{Logger: discardLogger(), Verifier: verifier})

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer same-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}

	// No caching: same token, three verifications.
	if verifier.calls != 3 {
		t.Errorf("verifier called %d times, want 3", verifier.calls)
	}
}
