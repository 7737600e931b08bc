package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/infrastructure/storage"
)

// ObjectReader serves objects held by a local store
type ObjectReader interface {
	Get(bucket domain.Bucket, key string) (storage.Object, bool)
}

// FileHandler serves uploads when STORAGE_TYPE=memory
type FileHandler struct {
	objects ObjectReader
}

func NewFileHandler(objects ObjectReader) *FileHandler {
	return &FileHandler{objects: objects}
}

// Serve handles GET /files/:bucket/*key
func (h *FileHandler) Serve(c *gin.Context) {
	bucket, err := domain.ParseBucket(c.Param("bucket"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	obj, ok := h.objects.Get(bucket, strings.TrimPrefix(c.Param("key"), "/"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, obj.ContentType, obj.Data)
}
