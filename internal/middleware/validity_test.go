package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tastebase/tastebase/internal/gateway"
	"github.com/tastebase/tastebase/internal/model"
)

func validateTokenChain(verifier *fakeVerifier) http.Handler {
	authed := Auth(AuthConfig{Logger: discardLogger(), Verifier: verifier})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]bool{"valid": true})
		}),
	)
	return ValidityEnvelope(authed)
}

func TestValidityEnvelopeExpiredToken(t *testing.T) {
	verifier := &fakeVerifier{err: fmt.Errorf("%w: token is expired", gateway.ErrInvalidToken)}
	handler := validateTokenChain(verifier)

	req := httptest.NewRequest(http.MethodGet, "/api/validate_token", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	valid, ok := body["valid"].(bool)
	if !ok || valid {
		t.Errorf("valid = %v, want false", body["valid"])
	}
	if body["error"] == "" || body["error"] == nil {
		t.Error("error field missing from envelope")
	}
}

func TestValidityEnvelopeMissingToken(t *testing.T) {
	verifier := &fakeVerifier{}
	handler := validateTokenChain(verifier)

	req := httptest.NewRequest(http.MethodGet, "/api/validate_token", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body map[string]any
	json.Unmarshal(rec.Body.Bytes(), &body)
	if valid, ok := body["valid"].(bool); !ok || valid {
		t.Errorf("valid = %v, want false", body["valid"])
	}
	if verifier.calls != 0 {
		t.Errorf("verifier called %d times, want 0", verifier.calls)
	}
}

func TestValidityEnvelopePassesThroughSuccess(t *testing.T) {
	verifier := &fakeVerifier{identity: &model.Identity{UserID: "user-1"}}
	handler := validateTokenChain(verifier)

	req := httptest.NewRequest(http.MethodGet, "/api/validate_token", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !body["valid"] {
		t.Error("valid = false, want true")
	}
}
