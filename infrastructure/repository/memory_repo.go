package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"photo-analyzer-go/domain/library"
)

// MemoryRecentImageRepository implements library.Repository in process memory.
// It is used when no MongoDB URI is configured or the server is unreachable.
type MemoryRecentImageRepository struct {
	mu     sync.RWMutex
	byPath map[string]*library.RecentImage
}

// NewMemoryRecentImageRepository creates an empty in-memory repository.
func NewMemoryRecentImageRepository() *MemoryRecentImageRepository {
	return &MemoryRecentImageRepository{
		byPath: make(map[string]*library.RecentImage),
	}
}

// Upsert records an entry keyed by path. Existing entries keep their ID.
func (r *MemoryRecentImageRepository) Upsert(ctx context.Context, image *library.RecentImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := image.Clone()
	if existing, ok := r.byPath[image.Path]; ok {
		entry.ID = existing.ID
	} else if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	image.ID = entry.ID
	r.byPath[image.Path] = entry
	return nil
}

// FindRecent returns up to limit entries, newest first.
func (r *MemoryRecentImageRepository) FindRecent(ctx context.Context, limit int) ([]*library.RecentImage, error) {
	r.mu.RLock()
	images := make([]*library.RecentImage, 0, len(r.byPath))
	for _, entry := range r.byPath {
		images = append(images, entry.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(images, func(i, j int) bool {
		if images[i].OpenedAt.Equal(images[j].OpenedAt) {
			return images[i].Path < images[j].Path
		}
		return images[i].OpenedAt.After(images[j].OpenedAt)
	})

	if limit > 0 && len(images) > limit {
		images = images[:limit]
	}
	return images, nil
}

// DeleteByPath removes the entry for a path. Unknown paths are ignored.
func (r *MemoryRecentImageRepository) DeleteByPath(ctx context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byPath, path)
	return nil
}

// DeleteAll removes every entry.
func (r *MemoryRecentImageRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byPath = make(map[string]*library.RecentImage)
	return nil
}

var _ library.Repository = (*MemoryRecentImageRepository)(nil)
