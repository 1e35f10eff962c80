package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
)

type fakePutter struct {
	bucket string
	object string
	opts   minio.PutObjectOptions
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.bucket = bucketName
	f.object = objectName
	f.opts = opts
	return minio.UploadInfo{}, f.err
}

func (f *fakePutter) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	f.bucket = bucketName
	f.object = objectName
	return f.err
}

func TestUpload(t *testing.T) {
	putter := &fakePutter{}
	u := &Uploader{client: putter, bucket: "tastebase", publicBaseURL: "https://media.example.com"}

	url, err := u.Upload(context.Background(), "recipes/r1.jpg", strings.NewReader("img"), 3, "image/jpeg")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	want := "https://media.example.com/tastebase/recipes/r1.jpg"
	if url != want {
		t.Errorf("url = %q, want %q", url, want)
	}
	if putter.bucket != "tastebase" || putter.object != "recipes/r1.jpg" {
		t.Errorf("put to %s/%s", putter.bucket, putter.object)
	}
	if putter.opts.ContentType != "image/jpeg" {
		t.Errorf("content type = %q, want image/jpeg", putter.opts.ContentType)
	}
}

func TestUploadDefaultsContentType(t *testing.T) {
	putter := &fakePutter{}
	u := &Uploader{client: putter, bucket: "tastebase", publicBaseURL: "https://media.example.com"}

	if _, err := u.Upload(context.Background(), "o", strings.NewReader("x"), 1, ""); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if putter.opts.ContentType != defaultContentType {
		t.Errorf("content type = %q, want %q", putter.opts.ContentType, defaultContentType)
	}
}

func TestObjectName(t *testing.T) {
	u := &Uploader{bucket: "tastebase", publicBaseURL: "https://media.example.com"}

	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{"own url", "https://media.example.com/tastebase/recipes/r1.jpg", "recipes/r1.jpg", true},
		{"nested object", "https://media.example.com/tastebase/avatars/u1-abc.png", "avatars/u1-abc.png", true},
		{"foreign host", "https://other.example.com/tastebase/recipes/r1.jpg", "", false},
		{"wrong bucket", "https://media.example.com/other/recipes/r1.jpg", "", false},
		{"bare prefix", "https://media.example.com/tastebase/", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := u.ObjectName(tt.url)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ObjectName(%q) = (%q, %v), want (%q, %v)", tt.url, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	putter := &fakePutter{}
	u := &Uploader{client: putter, bucket: "tastebase", publicBaseURL: "https://media.example.com"}

	if err := u.Remove(context.Background(), "recipes/r1.jpg"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if putter.bucket != "tastebase" || putter.object != "recipes/r1.jpg" {
		t.Errorf("removed %s/%s", putter.bucket, putter.object)
	}
}

func TestUploadError(t *testing.T) {
	putter := &fakePutter{err: errors.New("bucket unavailable")}
	u := &Uploader{client: putter, bucket: "tastebase", publicBaseURL: "https://media.example.com"}

	if _, err := u.Upload(context.Background(), "o", strings.NewReader("x"), 1, "image/png"); err == nil {
		t.Fatal("Upload() should propagate client error")
	}
}
