package library

import (
	"context"
	"errors"
	"time"
)

// DefaultLimit is the number of entries listed when no limit is configured.
const DefaultLimit = 10

// ErrEmptyPath is returned when recording an entry without a path.
var ErrEmptyPath = errors.New("recent image path is empty")

// Service provides business logic for the recent images list.
type Service struct {
	repo  Repository
	limit int
	now   func() time.Time
}

// NewService creates a new recent images service.
func NewService(repo Repository, limit int) *Service {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Service{repo: repo, limit: limit, now: time.Now}
}

// Record stores or refreshes an entry, stamping it with the current time.
func (s *Service) Record(ctx context.Context, image *RecentImage) error {
	if image == nil || image.Path == "" {
		return ErrEmptyPath
	}
	entry := image.Clone()
	entry.OpenedAt = s.now()
	return s.repo.Upsert(ctx, entry)
}

// List returns the most recent entries up to the configured limit.
func (s *Service) List(ctx context.Context) ([]*RecentImage, error) {
	return s.repo.FindRecent(ctx, s.limit)
}

// Forget removes a single entry, e.g. when its file no longer exists.
func (s *Service) Forget(ctx context.Context, path string) error {
	return s.repo.DeleteByPath(ctx, path)
}

// Clear removes all entries.
func (s *Service) Clear(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
