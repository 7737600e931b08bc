package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/portoo/portoo-backend/internal/config"
	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
)

const uploadTimeout = 2 * time.Minute

// GCSStore writes objects to one Cloud Storage bucket per logical bucket.
type GCSStore struct {
	client        *gcs.Client
	log           *logger.Logger
	buckets       map[domain.Bucket]string
	emulatorHost  string
	publicBaseURL string
}

func NewGCSStore(ctx context.Context, cfg *config.StorageConfig, log *logger.Logger) (*GCSStore, error) {
	var opts []option.ClientOption
	emulator := strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/")
	switch {
	case emulator != "":
		_ = os.Setenv("STORAGE_EMULATOR_HOST", emulator)
		opts = append(opts, option.WithoutAuthentication())
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile), option.WithScopes(gcs.ScopeReadWrite))
	default:
		opts = append(opts, option.WithScopes(gcs.ScopeReadWrite))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	s := newGCSStore(client, cfg, log)
	s.log.Info("Object storage initialized",
		"emulator_host", s.emulatorHost,
		"public_base_url", s.publicBaseURL,
		"profile_photos_bucket", s.buckets[domain.BucketProfilePhotos],
		"project_images_bucket", s.buckets[domain.BucketProjectImages],
		"resumes_bucket", s.buckets[domain.BucketResumes],
	)
	return s, nil
}

func newGCSStore(client *gcs.Client, cfg *config.StorageConfig, log *logger.Logger) *GCSStore {
	return &GCSStore{
		client: client,
		log:    log.With("service", "GCSStore"),
		buckets: map[domain.Bucket]string{
			domain.BucketProfilePhotos: cfg.ProfilePhotosBucket,
			domain.BucketProjectImages: cfg.ProjectImagesBucket,
			domain.BucketResumes:       cfg.ResumesBucket,
		},
		emulatorHost:  strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/"),
		publicBaseURL: strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/"),
	}
}

func (s *GCSStore) bucketName(bucket domain.Bucket) (string, error) {
	name, ok := s.buckets[bucket]
	if !ok || name == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidBucket, bucket)
	}
	return name, nil
}

// Upload overwrites the object at key, like an upsert.
func (s *GCSStore) Upload(ctx context.Context, bucket domain.Bucket, key string, r io.Reader, contentType string) error {
	name, err := s.bucketName(bucket)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := s.client.Bucket(name).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=3600"
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (s *GCSStore) PublicURL(bucket domain.Bucket, key string) string {
	name, err := s.bucketName(bucket)
	if err != nil {
		return key
	}
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if s.emulatorHost != "" && s.publicBaseURL == "" {
		return fmt.Sprintf("%s/storage/v1/b/%s/o/%s?alt=media", s.emulatorHost, url.PathEscape(name), url.PathEscape(key))
	}
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, name, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", name, key)
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
