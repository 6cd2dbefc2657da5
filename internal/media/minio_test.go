package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockObjectClient struct {
	mock.Mock
}

func (m *mockObjectClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *mockObjectClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Error(0)
}

func TestMinioStore_Save(t *testing.T) {
	client := new(mockObjectClient)
	client.On("PutObject", mock.Anything, "media",
		mock.MatchedBy(func(key string) bool { return strings.HasPrefix(key, "realty_images/") && strings.HasSuffix(key, ".webp") }),
		mock.Anything, int64(4),
		minio.PutObjectOptions{ContentType: "image/webp"},
	).Return(minio.UploadInfo{}, nil)

	s := NewMinioStoreWithClient(client, "media")
	key, err := s.Save(context.Background(), "realty_images", "x.webp", "image/webp", []byte("webp"))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "realty_images/"))
	client.AssertExpectations(t)
}

func TestMinioStore_SaveDefaultsContentType(t *testing.T) {
	client := new(mockObjectClient)
	client.On("PutObject", mock.Anything, "media", mock.Anything, mock.Anything, int64(1),
		minio.PutObjectOptions{ContentType: defaultContentType},
	).Return(minio.UploadInfo{}, errors.New("bucket gone"))

	s := NewMinioStoreWithClient(client, "media")
	_, err := s.Save(context.Background(), "d", "f", "", []byte("x"))

	assert.ErrorContains(t, err, "bucket gone")
}

func TestMinioStore_Remove(t *testing.T) {
	client := new(mockObjectClient)
	client.On("RemoveObject", mock.Anything, "media", "gallery_images/a.png", minio.RemoveObjectOptions{}).Return(nil)

	s := NewMinioStoreWithClient(client, "media")
	require.NoError(t, s.Remove(context.Background(), "gallery_images/a.png"))
	client.AssertExpectations(t)
}
