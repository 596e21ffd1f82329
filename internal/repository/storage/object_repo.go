// Package storage holds object storage for receipt and statement images.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectRepository defines the interface for object storage operations.
type ObjectRepository interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// ReceiptObjectPath creates a unique object path for a receipt image.
func ReceiptObjectPath(userID, ext string) string {
	return path.Join("receipts", userID, uuid.New().String()+ext)
}

// StatementObjectPath creates a unique object path for an uploaded statement.
func StatementObjectPath(userID, ext string) string {
	return path.Join("statements", userID, uuid.New().String()+ext)
}

// MinIOObjectRepository implements ObjectRepository using MinIO.
type MinIOObjectRepository struct {
	client     *minio.Client
	bucketName string
}

// NewMinIOObjectRepository creates a new MinIO object repository.
func NewMinIOObjectRepository(cfg config.MinIOConfig) (*MinIOObjectRepository, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	repo := &MinIOObjectRepository{
		client:     client,
		bucketName: cfg.BucketName,
	}

	if err := repo.ensureBucket(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

// ensureBucket creates the bucket if it doesn't exist. Receipts hold
// financial data, so the bucket stays private; access goes through
// presigned URLs only.
func (r *MinIOObjectRepository) ensureBucket(ctx context.Context) error {
	exists, err := r.client.BucketExists(ctx, r.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := r.client.MakeBucket(ctx, r.bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Upload uploads data to MinIO storage and returns the object path.
func (r *MinIOObjectRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	opts := minio.PutObjectOptions{
		ContentType: contentType,
	}

	// If size is unknown, read all data into memory.
	if size < 0 {
		buf, err := io.ReadAll(data)
		if err != nil {
			return "", fmt.Errorf("failed to read data: %w", err)
		}
		size = int64(len(buf))
		data = bytes.NewReader(buf)
	}

	if _, err := r.client.PutObject(ctx, r.bucketName, objectPath, data, size, opts); err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	return objectPath, nil
}

// Delete removes an object from MinIO storage.
func (r *MinIOObjectRepository) Delete(ctx context.Context, objectPath string) error {
	if err := r.client.RemoveObject(ctx, r.bucketName, objectPath, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// GeneratePresignedURL generates a presigned URL for temporary access.
func (r *MinIOObjectRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	presignedURL, err := r.client.PresignedGetObject(ctx, r.bucketName, objectPath, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return presignedURL.String(), nil
}

// NoOpObjectRepository is used when no storage backend is configured.
// Uploads succeed without persisting; receipts are still extracted, the
// original image is just not retained.
type NoOpObjectRepository struct{}

func (NoOpObjectRepository) Upload(_ context.Context, objectPath string, data io.Reader, _ string, _ int64) (string, error) {
	_, err := io.Copy(io.Discard, data)
	return objectPath, err
}

func (NoOpObjectRepository) Delete(context.Context, string) error { return nil }

func (NoOpObjectRepository) GeneratePresignedURL(context.Context, string, time.Duration) (string, error) {
	return "", nil
}
