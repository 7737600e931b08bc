package submission

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/form"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/portoo/portoo-backend/internal/media"
	"github.com/portoo/portoo-backend/internal/usecase/portfolio"
)

var ErrNotAFile = errors.New("not a regular file")

// AssetError names the asset that stopped a submission
type AssetError struct {
	Asset string
	Err   error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("%s: %v", e.Asset, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// File is one pending upload
type File struct {
	Bucket   domain.Bucket
	Path     string
	Filename string
	Size     int64
	Body     io.Reader
}

type Uploader interface {
	Upload(ctx context.Context, f *File) (string, error)
}

type PortfolioWriter interface {
	CreatePortfolio(ctx context.Context, req *portfolio.CreatePortfolioRequest) (*portfolio.CreateResult, error)
	UpdatePortfolio(ctx context.Context, username string, req *portfolio.UpdatePortfolioRequest) (*domain.PortfolioAggregate, error)
}

// FileSystem opens pending local files. os.DirFS and fstest.MapFS both satisfy it.
type FileSystem interface {
	Open(name string) (fs.File, error)
}

type osFS struct{}

func (osFS) Open(name string) (fs.File, error) { return os.Open(name) }

// Result of a successful submission
type Result struct {
	Username     string
	PortfolioURL string
	Uploaded     int
}

// Orchestrator turns a form store into stored files and one portfolio write.
// Uploads run one at a time and all of them finish before the write starts;
// files uploaded before a failure are left in storage.
type Orchestrator struct {
	files    FileSystem
	uploader Uploader
	writer   PortfolioWriter
	crop     bool
	now      func() time.Time
	log      *logger.Logger
}

type Option func(*Orchestrator)

// WithFileSystem replaces the local disk
func WithFileSystem(files FileSystem) Option {
	return func(o *Orchestrator) { o.files = files }
}

// WithCropping crops the profile photo and project covers to their presets before upload.
func WithCropping() Option {
	return func(o *Orchestrator) { o.crop = true }
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func NewOrchestrator(uploader Uploader, writer PortfolioWriter, log *logger.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		files:    osFS{},
		uploader: uploader,
		writer:   writer,
		now:      time.Now,
		log:      log.With("component", "submission"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type asset struct {
	label  string
	bucket domain.Bucket
	file   string
	preset *media.Options
	assign func(url string)
}

// StoragePath is the object key for a local file: "{unix_ms}-{sanitized base name}".
func StoragePath(name string, now time.Time) string {
	return domain.ObjectPath(filepath.Base(name), now)
}

// Resolve uploads every pending file of d in a fixed order (profile photo, resume,
// then per project its cover followed by its gallery slots) and returns the create
// payload with the stored URLs filled in. Files that were not replaced keep their
// existing URL. Every pending file is checked before the first upload.
func (o *Orchestrator) Resolve(ctx context.Context, d form.Data) (*portfolio.CreatePortfolioRequest, int, error) {
	req := buildRequest(d)

	var assets []asset
	var finish []func()
	if d.ProfilePhotoFile != "" {
		assets = append(assets, asset{
			label:  "profile photo",
			bucket: domain.BucketProfilePhotos,
			file:   d.ProfilePhotoFile,
			preset: &media.ProfilePhoto,
			assign: func(url string) { req.ProfilePhotoURL = url },
		})
	}
	if d.ResumeFile != "" {
		assets = append(assets, asset{
			label:  "resume",
			bucket: domain.BucketResumes,
			file:   d.ResumeFile,
			assign: func(url string) { req.ResumeURL = url },
		})
	}
	for i, p := range d.ActiveProjects() {
		target := &req.Projects[i]
		if p.CoverFile != "" {
			assets = append(assets, asset{
				label:  fmt.Sprintf("project %q cover image", p.Name),
				bucket: domain.BucketProjectImages,
				file:   p.CoverFile,
				preset: &media.ProjectCover,
				assign: func(url string) { target.CoverImageURL = url },
			})
		}
		slots := galleryURLs(p)
		for slot, file := range p.GalleryFiles {
			if file == "" || slot >= len(slots) {
				continue
			}
			slot := slot
			assets = append(assets, asset{
				label:  fmt.Sprintf("project %q gallery image %d", p.Name, slot+1),
				bucket: domain.BucketProjectImages,
				file:   file,
				assign: func(url string) { slots[slot] = url },
			})
		}
		finish = append(finish, func() { target.CarouselImages = compact(slots) })
	}

	for _, a := range assets {
		if err := o.check(a.file); err != nil {
			return nil, 0, &AssetError{Asset: a.label, Err: err}
		}
	}

	for _, a := range assets {
		url, err := o.upload(ctx, a)
		if err != nil {
			o.log.Error("Upload failed", "asset", a.label, "error", err)
			return nil, 0, &AssetError{Asset: a.label, Err: err}
		}
		a.assign(url)
	}
	for _, f := range finish {
		f()
	}
	return req, len(assets), nil
}

// Submit validates the store, resolves its files and then creates the portfolio,
// or updates it when the store is in edit mode.
func (o *Orchestrator) Submit(ctx context.Context, store *form.Store) (*Result, error) {
	d := store.Data()
	editUsername := store.EditUsername()
	if err := form.ValidateSubmit(&d, editUsername != ""); err != nil {
		return nil, err
	}

	req, uploaded, err := o.Resolve(ctx, d)
	if err != nil {
		return nil, err
	}

	if editUsername != "" {
		agg, err := o.writer.UpdatePortfolio(ctx, editUsername, UpdateFromCreate(req))
		if err != nil {
			return nil, err
		}
		o.log.Info("Portfolio updated", "username", agg.Username, "uploaded", uploaded)
		return &Result{Username: agg.Username, Uploaded: uploaded}, nil
	}

	res, err := o.writer.CreatePortfolio(ctx, req)
	if err != nil {
		return nil, err
	}
	o.log.Info("Portfolio created", "username", res.Username, "uploaded", uploaded)
	return &Result{Username: res.Username, PortfolioURL: res.PortfolioURL, Uploaded: uploaded}, nil
}

func (o *Orchestrator) check(name string) error {
	f, err := o.files.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return ErrNotAFile
	}
	if info.Size() == 0 {
		return domain.ErrEmptyFile
	}
	return nil
}

func (o *Orchestrator) upload(ctx context.Context, a asset) (string, error) {
	f, err := o.files.Open(a.file)
	if err != nil {
		return "", err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	name := filepath.Base(a.file)
	var body io.Reader = f
	size := info.Size()
	if o.crop && a.preset != nil {
		out, err := media.CropAndResize(f, *a.preset)
		if err != nil {
			return "", err
		}
		name = media.OptimizedName(name)
		body = bytes.NewReader(out)
		size = int64(len(out))
	}

	return o.uploader.Upload(ctx, &File{
		Bucket:   a.bucket,
		Path:     StoragePath(name, o.now()),
		Filename: name,
		Size:     size,
		Body:     body,
	})
}

// galleryURLs returns the stored URL of every gallery slot
func galleryURLs(p form.Project) []string {
	slots := make([]string, domain.GallerySlots)
	copy(slots, p.GalleryURLs)
	return slots
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
