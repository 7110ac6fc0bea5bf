package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/posadmin/backoffice/internal/application/actions"
)

// UploadHandler accepts multipart image uploads for entity image fields.
type UploadHandler struct {
	uploader *actions.Uploader
}

// NewUploadHandler builds the upload handler.
func NewUploadHandler(uploader *actions.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// Image handles POST /uploads/image. Expects a multipart form with an
// "image" file part; responds with the stored object's public URL.
func (h *UploadHandler) Image(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		writeBadRequest(c, "No image file was uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		writeBadRequest(c, "The uploaded image could not be read")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, actions.MaxImageSize+1))
	if err != nil {
		writeBadRequest(c, "The uploaded image could not be read")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	writeOutcome(c, h.uploader.UploadImage(c.Request.Context(), fileHeader.Filename, contentType, data))
}
