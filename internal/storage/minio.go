// Package storage provides object storage for user-uploaded media.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"ripple/internal/config"
	"ripple/internal/middleware"
	"ripple/internal/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaStore uploads post media to an S3-compatible bucket and hands back
// public URLs.
type MediaStore struct {
	client     *minio.Client
	bucket     string
	publicHost string
}

var allowedContentTypes = map[string]string{
	"image/jpeg": models.MediaTypeImage,
	"image/png":  models.MediaTypeImage,
	"image/gif":  models.MediaTypeImage,
	"image/webp": models.MediaTypeImage,
}

// NewMediaStore connects to the configured object store and makes sure the
// bucket exists.
func NewMediaStore(ctx context.Context, cfg *config.Config) (*MediaStore, error) {
	client, err := minio.New(cfg.MediaEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MediaAccessKey, cfg.MediaSecretKey, ""),
		Secure: cfg.MediaUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to object storage: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MediaBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check media bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MediaBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create media bucket: %w", err)
		}
		middleware.Logger.Info("Media bucket created", "bucket", cfg.MediaBucket)
	}

	publicHost := cfg.MediaPublicHost
	if publicHost == "" {
		scheme := "http"
		if cfg.MediaUseSSL {
			scheme = "https"
		}
		publicHost = fmt.Sprintf("%s://%s", scheme, cfg.MediaEndpoint)
	}

	return &MediaStore{
		client:     client,
		bucket:     cfg.MediaBucket,
		publicHost: strings.TrimRight(publicHost, "/"),
	}, nil
}

// Upload stores the media object under a fresh UUID name and returns its
// public URL together with the resolved media type.
func (s *MediaStore) Upload(ctx context.Context, r io.Reader, size int64, filename, contentType string) (url string, mediaType string, err error) {
	mediaType, ok := allowedContentTypes[strings.ToLower(contentType)]
	if !ok {
		return "", "", models.NewValidationError("Unsupported media type")
	}

	objectName := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	if _, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", "", models.NewInternalError(fmt.Errorf("media upload failed: %w", err))
	}

	return fmt.Sprintf("%s/%s/%s", s.publicHost, s.bucket, objectName), mediaType, nil
}

// Remove deletes a previously uploaded object by its public URL. Unknown
// URLs are ignored so orphan cleanup stays idempotent.
func (s *MediaStore) Remove(ctx context.Context, url string) error {
	prefix := fmt.Sprintf("%s/%s/", s.publicHost, s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	objectName := strings.TrimPrefix(url, prefix)
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return models.NewInternalError(fmt.Errorf("media delete failed: %w", err))
	}
	return nil
}
