package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/portoo/portoo-backend/internal/apperr"
	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/portoo/portoo-backend/internal/media"
)

const (
	DefaultMaxBytes = 10 << 20

	sniffBytes = 3072
)

// ObjectStore is the object storage backend behind uploads
type ObjectStore interface {
	Upload(ctx context.Context, bucket domain.Bucket, key string, r io.Reader, contentType string) error
	PublicURL(bucket domain.Bucket, key string) string
}

type Request struct {
	Bucket      string
	Path        string
	Size        int64
	ContentType string
	Body        io.Reader
	// Transform optionally names a media preset ("profile" or "cover") applied before storing.
	Transform string
}

type Result struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

type UploadUseCase struct {
	store    ObjectStore
	maxBytes int64
	log      *logger.Logger
}

func NewUploadUseCase(store ObjectStore, maxBytes int64, log *logger.Logger) *UploadUseCase {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &UploadUseCase{
		store:    store,
		maxBytes: maxBytes,
		log:      log.With("usecase", "upload"),
	}
}

func (uc *UploadUseCase) MaxBytes() int64 {
	return uc.maxBytes
}

// Upload validates the target and stores the file, returning its public URL.
func (uc *UploadUseCase) Upload(ctx context.Context, req *Request) (*Result, error) {
	if req.Body == nil || req.Bucket == "" || req.Path == "" {
		return nil, apperr.BadRequest("File, bucket, and path are required", nil)
	}
	bucket, err := domain.ParseBucket(req.Bucket)
	if err != nil {
		return nil, apperr.Invalid(err)
	}
	if !domain.ValidObjectPath(req.Path) {
		return nil, apperr.Invalid(domain.ErrInvalidPath)
	}
	if req.Size <= 0 {
		return nil, apperr.Invalid(domain.ErrEmptyFile)
	}
	if req.Size > uc.maxBytes {
		return nil, apperr.New(http.StatusRequestEntityTooLarge, fmt.Sprintf("%s (max %d MB)", domain.UserMessage(domain.ErrFileTooLarge), uc.maxBytes>>20), domain.ErrFileTooLarge)
	}

	body := req.Body
	key := req.Path
	contentType := req.ContentType
	if req.Transform != "" {
		opts, ok := media.Preset(req.Transform)
		if !ok {
			return nil, apperr.BadRequest("Invalid transform", nil)
		}
		out, err := media.CropAndResize(io.LimitReader(req.Body, uc.maxBytes), opts)
		if err != nil {
			if errors.Is(err, media.ErrUnreadableImage) {
				return nil, apperr.BadRequest("Unable to read selected image.", err)
			}
			uc.log.Error("Image transform failed", "path", req.Path, "error", err)
			return nil, apperr.Internal("Failed to process image", err)
		}
		body = bytes.NewReader(out)
		key = media.OptimizedName(req.Path)
		contentType = "image/jpeg"
	}
	if contentType == "" {
		contentType = contentTypeFor(key)
	}
	if contentType == "application/octet-stream" {
		contentType, body, err = sniff(body)
		if err != nil {
			uc.log.Error("Upload read failed", "path", key, "error", err)
			return nil, apperr.Internal("Failed to upload file", err)
		}
	}

	if err := uc.store.Upload(ctx, bucket, key, body, contentType); err != nil {
		uc.log.Error("Upload error", "bucket", bucket, "path", key, "error", err)
		return nil, apperr.Internal("Failed to upload file", err)
	}

	return &Result{URL: uc.store.PublicURL(bucket, key), Path: key}, nil
}

// sniff detects the content type from the first bytes of r and returns a reader
// that still yields the whole body.
func sniff(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffBytes)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]
	return mimetype.Detect(head).String(), io.MultiReader(bytes.NewReader(head), r), nil
}

func contentTypeFor(key string) string {
	s := strings.ToLower(key)
	switch {
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".jpg"), strings.HasSuffix(s, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(s, ".webp"):
		return "image/webp"
	case strings.HasSuffix(s, ".gif"):
		return "image/gif"
	case strings.HasSuffix(s, ".pdf"):
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
