package actions

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/posadmin/backoffice/internal/infrastructure/storage"
)

// MaxImageSize caps uploaded images at 5 MiB.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadResult carries the public URL of a stored image.
type UploadResult struct {
	URL string `json:"url"`
}

// Uploader stores form images in object storage and hands back public URLs
// for the entity image fields.
type Uploader struct {
	store  storage.ImageStore
	logger *zap.Logger
}

// NewUploader builds the image upload operation.
func NewUploader(store storage.ImageStore, logger *zap.Logger) *Uploader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Uploader{store: store, logger: logger}
}

// UploadImage validates and stores one image, returning its public URL.
// Keys are uuid-based so uploads never collide or overwrite.
func (u *Uploader) UploadImage(ctx context.Context, filename, contentType string, data []byte) Outcome[UploadResult] {
	if len(data) == 0 {
		return Failure[UploadResult]("The uploaded file is empty", nil)
	}
	if len(data) > MaxImageSize {
		return Failure[UploadResult]("The image exceeds the 5 MB size limit", nil)
	}

	ext, ok := imageExtensions[strings.ToLower(contentType)]
	if !ok {
		// Fall back to the filename extension for browsers that send a
		// generic content type.
		ext = strings.ToLower(path.Ext(filename))
		if ext != ".png" && ext != ".jpg" && ext != ".jpeg" && ext != ".webp" && ext != ".gif" {
			return Failure[UploadResult]("Only PNG, JPEG, WebP and GIF images are supported", nil)
		}
	}

	key := "images/" + uuid.NewString() + ext
	url, err := u.store.Upload(ctx, key, data, contentType)
	if err != nil {
		u.logger.Warn("Image upload failed", zap.String("key", key), zap.Error(err))
		return Failure[UploadResult](MsgSomethingWrong, err)
	}

	return Success(UploadResult{URL: url}, "Image uploaded successfully")
}
