package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tastebase/tastebase/internal/metrics"
)

func TestMetricsExposition(t *testing.T) {
	recorder := metrics.NewInMemory()
	recorder.IncRecipeCreated()
	recorder.IncRecipeCreated()
	recorder.IncRecipeCacheHit()
	recorder.IncOwnershipDenied()

	h := NewMetricsHandler(recorder)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"tastebase_recipes_created_total 2",
		"tastebase_recipe_cache_hits_total 1",
		"tastebase_recipe_cache_misses_total 0",
		"tastebase_ownership_denied_total 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestMetricsNilSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
