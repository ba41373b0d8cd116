package service

import (
	"context"
	"errors"
	"io"
	"time"

	"z2b/internal/domain"
	"z2b/pkg/storage"
)

var ErrInvalidBucket = errors.New("bucket must be one of workshop-media, workshop-thumbnails, content-media, content-thumbnails")

type UploadService struct {
	store storage.Store
	now   func() time.Time
}

func NewUploadService(store storage.Store) *UploadService {
	return &UploadService{store: store, now: time.Now}
}

// Upload stores file under a generated "{unix-millis}-{random}.{ext}" name and returns its
// public URL.
func (s *UploadService) Upload(ctx context.Context, bucket, filename, contentType string, file io.Reader) (string, error) {
	if !validBucket(bucket) {
		return "", ErrInvalidBucket
	}
	key, err := storage.ObjectName(filename, s.now())
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.store.Upload(ctx, bucket, key, file, contentType)
}

func validBucket(b string) bool {
	for _, v := range domain.Buckets {
		if v == b {
			return true
		}
	}
	return false
}
