package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"z2b/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

var _ storage.Store = (*MockStore)(nil)

func (m *MockStore) Upload(ctx context.Context, bucket, key string, file io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, bucket, key, file, contentType)
	return args.String(0), args.Error(1)
}

func TestUploadService(t *testing.T) {
	store := new(MockStore)
	svc := NewUploadService(store)
	body := strings.NewReader("data")

	store.On("Upload", mock.Anything, "content-media",
		mock.MatchedBy(func(key string) bool { return strings.HasSuffix(key, ".mp4") }),
		body, "video/mp4").
		Return("https://cdn.example.com/content-media/x.mp4", nil)

	url, err := svc.Upload(context.Background(), "content-media", "clip.MP4", "video/mp4", body)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/content-media/x.mp4", url)
	store.AssertExpectations(t)

	_, err = svc.Upload(context.Background(), "avatars", "a.png", "image/png", body)
	assert.ErrorIs(t, err, ErrInvalidBucket)
}
