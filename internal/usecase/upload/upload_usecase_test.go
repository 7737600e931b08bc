package upload

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/portoo/portoo-backend/internal/apperr"
	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/portoo/portoo-backend/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase() (*UploadUseCase, *storage.MemoryStore) {
	store := storage.NewMemoryStore("https://files.test")
	return NewUploadUseCase(store, 1<<20, logger.NewNop()), store
}

func TestUploadStoresFile(t *testing.T) {
	uc, store := newUseCase()

	res, err := uc.Upload(context.Background(), &Request{
		Bucket: "resumes",
		Path:   "1712345678901-cv.pdf",
		Size:   4,
		Body:   strings.NewReader("%PDF"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://files.test/resumes/1712345678901-cv.pdf", res.URL)
	assert.Equal(t, "1712345678901-cv.pdf", res.Path)

	obj, ok := store.Get(domain.BucketResumes, "1712345678901-cv.pdf")
	require.True(t, ok)
	assert.Equal(t, "application/pdf", obj.ContentType)
}

func TestUploadRejections(t *testing.T) {
	uc, _ := newUseCase()
	body := func() *strings.Reader { return strings.NewReader("x") }

	cases := []struct {
		name   string
		req    Request
		status int
		msg    string
	}{
		{"missing path", Request{Bucket: "resumes", Size: 1, Body: body()}, http.StatusBadRequest, "File, bucket, and path are required"},
		{"unknown bucket", Request{Bucket: "avatars", Path: "a.png", Size: 1, Body: body()}, http.StatusBadRequest, "Invalid bucket"},
		{"traversal", Request{Bucket: "resumes", Path: "../etc/passwd", Size: 1, Body: body()}, http.StatusBadRequest, "Invalid path"},
		{"empty file", Request{Bucket: "resumes", Path: "a.pdf", Size: 0, Body: body()}, http.StatusBadRequest, "Cannot upload empty file."},
		{"too large", Request{Bucket: "resumes", Path: "a.pdf", Size: 2 << 20, Body: body()}, http.StatusRequestEntityTooLarge, "File is too large (max 1 MB)"},
		{"bad transform", Request{Bucket: "project-images", Path: "a.png", Size: 1, Body: body(), Transform: "banner"}, http.StatusBadRequest, "Invalid transform"},
		{"corrupt image", Request{Bucket: "project-images", Path: "a.png", Size: 1, Body: body(), Transform: "cover"}, http.StatusBadRequest, "Unable to read selected image."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Upload(context.Background(), &tc.req)
			require.Error(t, err)
			ae := apperr.From(err)
			assert.Equal(t, tc.status, ae.Status)
			assert.Equal(t, tc.msg, ae.Message)
		})
	}
}

func TestUploadTransformsImages(t *testing.T) {
	uc, store := newUseCase()

	img := image.NewRGBA(image.Rect(0, 0, 300, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 300; x++ {
			img.Set(x, y, color.RGBA{B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	res, err := uc.Upload(context.Background(), &Request{
		Bucket:    "profile-photos",
		Path:      "1712345678901-me.png",
		Size:      int64(buf.Len()),
		Body:      &buf,
		Transform: "profile",
	})
	require.NoError(t, err)
	assert.Equal(t, "1712345678901-me-optimized.jpg", res.Path)

	obj, ok := store.Get(domain.BucketProfilePhotos, res.Path)
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", obj.ContentType)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(obj.Data))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 800, cfg.Height)
}

func TestUploadSniffsUnknownExtensions(t *testing.T) {
	uc, store := newUseCase()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	raw := buf.Bytes()

	res, err := uc.Upload(context.Background(), &Request{
		Bucket: "project-images",
		Path:   "1712345678901-screenshot",
		Size:   int64(len(raw)),
		Body:   bytes.NewReader(raw),
	})
	require.NoError(t, err)

	obj, ok := store.Get(domain.BucketProjectImages, res.Path)
	require.True(t, ok)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, raw, obj.Data, "sniffing must not consume the body")
}
