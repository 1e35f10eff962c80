package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadProfilePicRejectsOversizedUpload(t *testing.T) {
	h := NewUserHandler(nil, discardLogger(), 10)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "avatar.png")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(strings.Repeat("x", 1<<20))); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload_profile_pic", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.UploadProfilePic(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestUploadProfilePicMissingFile(t *testing.T) {
	h := NewUserHandler(nil, discardLogger(), 1<<20)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	mw.WriteField("unrelated", "value")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload_profile_pic", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.UploadProfilePic(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
