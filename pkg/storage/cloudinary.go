package storage

import (
	"context"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// CloudinaryStore maps buckets to Cloudinary folders.
type CloudinaryStore struct {
	cloudName string
	uploader  *uploader.API
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cloudName: cloudName, uploader: up}, nil
}

func (c *CloudinaryStore) Upload(ctx context.Context, bucket, key string, file io.Reader, contentType string) (string, error) {
	result, err := c.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:       bucket,
		PublicID:     strings.TrimSuffix(key, extOf(key)),
		ResourceType: resourceType(contentType),
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

// resourceType picks the Cloudinary resource type for a MIME type. PDFs and audio go
// through "raw"/"video" the way Cloudinary expects them.
func resourceType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"), strings.HasPrefix(contentType, "audio/"):
		return "video"
	default:
		return "raw"
	}
}

func extOf(key string) string {
	if i := strings.LastIndex(key, "."); i >= 0 {
		return key[i:]
	}
	return ""
}
