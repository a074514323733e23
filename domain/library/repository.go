package library

import "context"

// Repository defines the interface for recent image persistence.
type Repository interface {
	// Upsert records an entry keyed by Path, replacing any previous entry for the same path.
	Upsert(ctx context.Context, image *RecentImage) error

	// FindRecent returns up to limit entries, most recently opened first.
	FindRecent(ctx context.Context, limit int) ([]*RecentImage, error)

	// DeleteByPath removes the entry for a path.
	DeleteByPath(ctx context.Context, path string) error

	// DeleteAll removes every entry.
	DeleteAll(ctx context.Context) error
}
