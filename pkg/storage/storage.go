// Package storage uploads media files to an S3-compatible store or Cloudinary.
package storage

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Store puts an object into a named bucket and returns its public URL.
type Store interface {
	Upload(ctx context.Context, bucket, key string, file io.Reader, contentType string) (string, error)
}

type Config struct {
	Driver string

	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3UseSSL          bool

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func New(cfg Config) (Store, error) {
	switch cfg.Driver {
	case "s3", "":
		return NewS3Store(cfg)
	case "cloudinary":
		return NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

const nameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// ObjectName builds "{unix-millis}-{random}.{ext}" from the uploaded file's name.
func ObjectName(filename string, now time.Time) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = nameAlphabet[int(b)%len(nameAlphabet)]
	}
	name := fmt.Sprintf("%d-%s", now.UnixMilli(), buf)
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."); ext != "" {
		name += "." + ext
	}
	return name, nil
}
