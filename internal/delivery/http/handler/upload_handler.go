package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portoo/portoo-backend/internal/apperr"
	"github.com/portoo/portoo-backend/internal/usecase/upload"
)

// multipartOverhead covers form fields and part headers around the file itself.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	uploadUseCase *upload.UploadUseCase
}

func NewUploadHandler(uploadUseCase *upload.UploadUseCase) *UploadHandler {
	return &UploadHandler{
		uploadUseCase: uploadUseCase,
	}
}

// Upload handles POST /api/upload (multipart: file, bucket, path, optional transform)
func (h *UploadHandler) Upload(c *gin.Context) {
	limit := h.uploadUseCase.MaxBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, apperr.New(http.StatusRequestEntityTooLarge, fmt.Sprintf("File is too large (max %d MB)", limit>>20), err))
			return
		}
		badRequest(c, "File, bucket, and path are required")
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, apperr.Internal("Failed to read uploaded file", err))
		return
	}
	defer f.Close()

	result, err := h.uploadUseCase.Upload(c.Request.Context(), &upload.Request{
		Bucket:    c.PostForm("bucket"),
		Path:      c.PostForm("path"),
		Size:      fh.Size,
		Body:      f,
		Transform: c.PostForm("transform"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     result.URL,
		"path":    result.Path,
	})
}
