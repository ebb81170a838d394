// Package storage provides the blob store collaborator for video and image files.
package storage

import (
	"context"
	"fmt"
	"log"
	"path"
	"path/filepath"

	"cliptide/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Kind classifies stored objects; it becomes the object key prefix.
type Kind string

const (
	KindVideo     Kind = "videos"
	KindThumbnail Kind = "thumbnails"
	KindImage     Kind = "images"
)

// Store is the blob store collaborator. Given a local file it returns a hosted
// URL plus the object key needed for later removal.
type Store interface {
	Upload(ctx context.Context, localPath, contentType string, kind Kind) (url, key string, err error)
	Remove(ctx context.Context, key string, kind Kind) error
}

// MinioStore implements Store on a MinIO (S3-compatible) backend.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore connects to MinIO and ensures the configured bucket exists.
func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client error: %w", err)
	}

	s := &MinioStore{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: cfg.MinioPublicURL,
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket error: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket error: %w", err)
		}
	}

	return s, nil
}

// Upload stores the local file under a fresh uuid-based key and returns its
// public URL and key.
func (s *MinioStore) Upload(ctx context.Context, localPath, contentType string, kind Kind) (string, string, error) {
	key := path.Join(string(kind), uuid.New().String()+filepath.Ext(localPath))

	_, err := s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("upload %s: %w", kind, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), key, nil
}

// Remove deletes a stored object. Callers treat failures as best-effort; the
// owning record is already gone when Remove runs.
func (s *MinioStore) Remove(ctx context.Context, key string, kind Kind) error {
	if key == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		log.Printf("Failed to delete %s object %s: %v", kind, key, err)
		return err
	}
	return nil
}
