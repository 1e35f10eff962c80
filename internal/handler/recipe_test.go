package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return body, mw.FormDataContentType()
}

func TestCreateRejectsOversizedUpload(t *testing.T) {
	h := NewRecipeHandler(nil, discardLogger(), 10)

	body, contentType := multipartBody(t, map[string]string{
		"title": strings.Repeat("x", 1<<20),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/create_recipe", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestParseRecipeFormWithinLimit(t *testing.T) {
	h := NewRecipeHandler(nil, discardLogger(), 1<<20)

	body, contentType := multipartBody(t, map[string]string{
		"title":        "Pho",
		"ingredients":  "noodles,broth",
		"instructions": "Simmer.",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/create_recipe", body)
	req.Header.Set("Content-Type", contentType)

	form, img, err := h.parseRecipeForm(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("parseRecipeForm() error = %v", err)
	}
	if img != nil {
		t.Error("img should be nil when no file is attached")
	}
	if form.title != "Pho" {
		t.Errorf("title = %q, want Pho", form.title)
	}
	if len(form.ingredients) != 2 {
		t.Errorf("ingredients = %v, want 2 items", form.ingredients)
	}
}

func TestParseIngredients(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"json array", `["noodles","broth","lime"]`, []string{"noodles", "broth", "lime"}},
		{"json array with spaces", `["noodles", " broth "]`, []string{"noodles", "broth"}},
		{"comma separated", "noodles,broth,lime", []string{"noodles", "broth", "lime"}},
		{"comma with spaces", "noodles, broth , lime", []string{"noodles", "broth", "lime"}},
		{"trailing comma", "noodles,broth,", []string{"noodles", "broth"}},
		{"single item", "noodles", []string{"noodles"}},
		{"malformed json falls back", `["noodles",`, []string{`["noodles"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseIngredients(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseIngredients(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
