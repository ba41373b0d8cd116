package storage

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1718000000123)

	name, err := ObjectName("Intro Session.MP4", now)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^1718000000123-[a-z0-9]{8}\.mp4$`), name)

	other, err := ObjectName("Intro Session.MP4", now)
	require.NoError(t, err)
	assert.NotEqual(t, name, other)

	bare, err := ObjectName("README", now)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^1718000000123-[a-z0-9]{8}$`), bare)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(Config{Driver: "ftp"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestS3Store_PublicURL(t *testing.T) {
	minio, err := NewS3Store(Config{S3Region: "us-east-1", S3Endpoint: "http://localhost:9000", S3UseSSL: false})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/content-media/a.mp4", minio.PublicURL("content-media", "a.mp4"))

	aws, err := NewS3Store(Config{S3Region: "af-south-1"})
	require.NoError(t, err)
	assert.Equal(t, "https://content-media.s3.af-south-1.amazonaws.com/a.mp4", aws.PublicURL("content-media", "a.mp4"))
}

func TestResourceType(t *testing.T) {
	assert.Equal(t, "image", resourceType("image/png"))
	assert.Equal(t, "video", resourceType("video/mp4"))
	assert.Equal(t, "video", resourceType("audio/mpeg"))
	assert.Equal(t, "raw", resourceType("application/pdf"))
}
