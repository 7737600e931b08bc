package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/portoo/portoo-backend/internal/domain"
)

// Object is an upload held by MemoryStore
type Object struct {
	Data        []byte
	ContentType string
}

// MemoryStore keeps uploads in memory; used for STORAGE_TYPE=memory and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	baseURL string
	objects map[string]Object
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]Object),
	}
}

func (s *MemoryStore) Upload(ctx context.Context, bucket domain.Bucket, key string, r io.Reader, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[string(bucket)+"/"+key] = Object{Data: buf.Bytes(), ContentType: contentType}
	return nil
}

func (s *MemoryStore) PublicURL(bucket domain.Bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, key)
}

// Get returns a stored object
func (s *MemoryStore) Get(bucket domain.Bucket, key string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[string(bucket)+"/"+key]
	return obj, ok
}

func (s *MemoryStore) Close() error { return nil }
