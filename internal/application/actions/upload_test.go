package actions

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posadmin/backoffice/internal/infrastructure/storage"
)

func TestUploadImageReturnsPublicURL(t *testing.T) {
	uploader := NewUploader(storage.NewStubImageStore(), nil)

	outcome := uploader.UploadImage(context.Background(), "logo.png", "image/png", []byte{0x89, 0x50, 0x4E, 0x47})
	require.Equal(t, TypeSuccess, outcome.Type)
	assert.True(t, strings.HasPrefix(outcome.Data.URL, "https://storage.example.com/images/"))
	assert.True(t, strings.HasSuffix(outcome.Data.URL, ".png"))
}

func TestUploadImageRejectsEmptyFile(t *testing.T) {
	uploader := NewUploader(storage.NewStubImageStore(), nil)
	outcome := uploader.UploadImage(context.Background(), "logo.png", "image/png", nil)
	assert.Equal(t, TypeError, outcome.Type)
}

func TestUploadImageRejectsOversizedFile(t *testing.T) {
	uploader := NewUploader(storage.NewStubImageStore(), nil)
	outcome := uploader.UploadImage(context.Background(), "big.png", "image/png", make([]byte, MaxImageSize+1))
	assert.Equal(t, TypeError, outcome.Type)
	assert.Contains(t, outcome.Message, "size limit")
}

func TestUploadImageRejectsUnsupportedType(t *testing.T) {
	uploader := NewUploader(storage.NewStubImageStore(), nil)
	outcome := uploader.UploadImage(context.Background(), "doc.pdf", "application/pdf", []byte("%PDF"))
	assert.Equal(t, TypeError, outcome.Type)
}

func TestUploadImageFallsBackToFilenameExtension(t *testing.T) {
	uploader := NewUploader(storage.NewStubImageStore(), nil)
	outcome := uploader.UploadImage(context.Background(), "photo.jpeg", "application/octet-stream", []byte{0xFF, 0xD8})
	require.Equal(t, TypeSuccess, outcome.Type)
	assert.True(t, strings.HasSuffix(outcome.Data.URL, ".jpeg"))
}
