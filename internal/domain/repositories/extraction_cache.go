package repositories

import (
	"context"
	"time"
)

// ExtractionCache stores serialized extraction results keyed by transcript fingerprint
type ExtractionCache interface {
	// Get returns the cached value and whether it was found
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
