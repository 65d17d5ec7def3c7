package memory

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"quill/contexts/community-content/content-service/domain/entities"

	"github.com/google/uuid"
)

// ImageStore is an in-memory remote image store that records every call so
// tests can assert on uploads and releases.
type ImageStore struct {
	mu        sync.Mutex
	baseURL   string
	assets    map[string]string
	uploads   []string
	deletes   []string
	uploadErr error
	deleteErr error
}

func NewImageStore(baseURL string) *ImageStore {
	if baseURL == "" {
		baseURL = "memory://images"
	}
	return &ImageStore{
		baseURL: baseURL,
		assets:  make(map[string]string),
	}
}

func (s *ImageStore) Upload(_ context.Context, localPath string) (entities.ImageRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, localPath)
	if s.uploadErr != nil {
		return entities.ImageRef{}, s.uploadErr
	}
	referenceID := uuid.NewString() + filepath.Ext(localPath)
	s.assets[referenceID] = localPath
	return entities.ImageRef{
		URL:         fmt.Sprintf("%s/%s", s.baseURL, referenceID),
		ReferenceID: referenceID,
	}, nil
}

// Delete of an unknown reference is a successful no-op.
func (s *ImageStore) Delete(_ context.Context, referenceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, referenceID)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.assets, referenceID)
	return nil
}

func (s *ImageStore) DeleteMany(ctx context.Context, referenceIDs []string) error {
	for _, referenceID := range referenceIDs {
		if err := s.Delete(ctx, referenceID); err != nil {
			return err
		}
	}
	return nil
}

// FailUploads makes every later Upload return err; nil restores success.
func (s *ImageStore) FailUploads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadErr = err
}

func (s *ImageStore) FailDeletes(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteErr = err
}

func (s *ImageStore) Uploads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.uploads...)
}

func (s *ImageStore) Deletes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deletes...)
}

func (s *ImageStore) Has(referenceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.assets[referenceID]
	return ok
}
