// Package cache provides the extraction result stores.
package cache

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-actions/internal/domain/repositories"
	ucerrors "github.com/johnquangdev/meeting-actions/internal/usecase/errors"
	"github.com/johnquangdev/meeting-actions/pkg/config"
)

// Store is an extraction cache that owns resources
type Store interface {
	repositories.ExtractionCache
	io.Closer
}

// New builds the store selected by CACHE_DRIVER. The "none" driver returns a nil
// store, which disables caching.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Cache.Driver {
	case "none":
		logger.Info("cache.disabled")
		return nil, nil
	case "memory", "":
		logger.Info("cache.memory.ready", zap.Duration("ttl", cfg.Cache.TTL))
		return NewMemoryStore(), nil
	case "redis":
		client, err := NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ucerrors.ErrCacheUnavailable, err)
		}
		logger.Info("cache.redis.ready", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Cache.TTL))
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("%w: %q", ucerrors.ErrUnknownCache, cfg.Cache.Driver)
	}
}
