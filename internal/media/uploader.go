// Package media provides the client for S3-compatible media storage.
// Image transcoding and CDN delivery are owned by the storage service;
// this package only uploads objects and derives public URLs.
package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultContentType = "application/octet-stream"

// objectPutter is the subset of the minio client the uploader needs.
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// Config holds configuration for the media uploader.
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// Uploader stores uploaded images in an S3-compatible bucket.
// Safe for concurrent use.
type Uploader struct {
	client        objectPutter
	bucket        string
	publicBaseURL string
}

// New creates a new Uploader.
func New(cfg Config) (*Uploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media client: %w", err)
	}

	return &Uploader{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload stores an object and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = defaultContentType
	}

	_, err := u.client.PutObject(ctx, u.bucket, objectName, reader, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return u.publicBaseURL + "/" + u.bucket + "/" + objectName, nil
}

// ObjectName extracts the bucket-relative object name from a public URL
// previously returned by Upload. Returns false for URLs this uploader
// did not produce, so externally-hosted images are never deleted.
func (u *Uploader) ObjectName(url string) (string, bool) {
	prefix := u.publicBaseURL + "/" + u.bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(url, prefix)
	if name == "" {
		return "", false
	}
	return name, true
}

// Remove deletes an object from the bucket.
func (u *Uploader) Remove(ctx context.Context, objectName string) error {
	err := u.client.RemoveObject(ctx, u.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return nil
}
