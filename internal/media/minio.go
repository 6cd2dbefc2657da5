package media

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultContentType = "application/octet-stream"

// ObjectClient is the subset of the MinIO client used by MinioStore.
type ObjectClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioStore keeps files in an S3-compatible bucket, keyed by relative path.
type MinioStore struct {
	client ObjectClient
	bucket string
}

// NewMinioStore connects to an S3-compatible endpoint.
func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return NewMinioStoreWithClient(client, bucket), nil
}

// NewMinioStoreWithClient wraps an existing client.
func NewMinioStoreWithClient(client ObjectClient, bucket string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket}
}

func (s *MinioStore) Save(ctx context.Context, dir, filename, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = defaultContentType
	}
	key := NewPath(dir, filename)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

func (s *MinioStore) Remove(ctx context.Context, relPath string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, relPath, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", relPath, err)
	}
	return nil
}
