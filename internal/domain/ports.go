package domain

import (
	"context"
	"time"
)

// SourceAdapter defines the interface for a single marketplace scraper.
// Search must return an empty slice (not an error) when nothing is found;
// errors are reserved for genuine transport or parse failures.
type SourceAdapter interface {
	Name() string
	Search(ctx context.Context, query string) ([]Listing, error)
}

// TitleCleaner defines the interface for the external AI title-cleaning service
type TitleCleaner interface {
	Clean(ctx context.Context, title string) (string, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
