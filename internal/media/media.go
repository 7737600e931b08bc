package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"
	"path"
	"strings"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const DefaultQuality = 90

var (
	ErrUnreadableImage = errors.New("unreadable image")
	ErrInvalidOptions  = errors.New("invalid image transform options")
)

// Options describes the target frame of a crop-and-resize
type Options struct {
	AspectRatio float64
	Width       int
	Height      int
	Quality     int
}

var (
	// ProfilePhoto is a square 800x800 avatar
	ProfilePhoto = Options{AspectRatio: 1, Width: 800, Height: 800, Quality: DefaultQuality}
	// ProjectCover is a 16:9 1600x900 cover image
	ProjectCover = Options{AspectRatio: 16.0 / 9.0, Width: 1600, Height: 900, Quality: DefaultQuality}
)

// Preset resolves a named preset ("profile" or "cover").
func Preset(name string) (Options, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "profile", "profile-photo", "avatar":
		return ProfilePhoto, true
	case "cover", "project-cover":
		return ProjectCover, true
	}
	return Options{}, false
}

func (o Options) validate() error {
	if o.AspectRatio <= 0 || math.IsNaN(o.AspectRatio) || math.IsInf(o.AspectRatio, 0) {
		return fmt.Errorf("%w: aspect ratio %v", ErrInvalidOptions, o.AspectRatio)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidOptions, o.Width, o.Height)
	}
	return nil
}

// CenterCrop returns the largest rectangle of the given aspect ratio centered in bounds.
func CenterCrop(bounds image.Rectangle, aspectRatio float64) image.Rectangle {
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	if w == 0 || h == 0 {
		return bounds
	}

	cropW, cropH := w, h
	sourceRatio := w / h
	switch {
	case sourceRatio > aspectRatio:
		cropW = h * aspectRatio
	case sourceRatio < aspectRatio:
		cropH = w / aspectRatio
	}

	cw := int(math.Round(cropW))
	ch := int(math.Round(cropH))
	x0 := bounds.Min.X + (bounds.Dx()-cw)/2
	y0 := bounds.Min.Y + (bounds.Dy()-ch)/2
	return image.Rect(x0, y0, x0+cw, y0+ch)
}

// Transform center-crops img to the target aspect ratio and scales it to the target size.
func Transform(img image.Image, opts Options) (*image.RGBA, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	crop := CenterCrop(img.Bounds(), opts.AspectRatio)
	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Src, nil)
	return dst, nil
}

// CropAndResize decodes r, transforms it and re-encodes it as JPEG.
// Undecodable input yields ErrUnreadableImage.
func CropAndResize(r io.Reader, opts Options) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}

	dst, err := Transform(src, opts)
	if err != nil {
		return nil, err
	}

	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return out.Bytes(), nil
}

// OptimizedName replaces the extension of name with "-optimized.jpg".
func OptimizedName(name string) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + "-optimized.jpg"
}
