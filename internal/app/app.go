// Package app wires configuration, capabilities, cache and the extraction service
// together for the binaries.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-actions/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-actions/internal/infrastructure/providers"
	"github.com/johnquangdev/meeting-actions/internal/usecase/actionitems"
	"github.com/johnquangdev/meeting-actions/pkg/config"
	"github.com/johnquangdev/meeting-actions/pkg/datetime"
	"github.com/johnquangdev/meeting-actions/pkg/metrics"
)

// App holds the long-lived dependencies of a process
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Manager
	Handles *providers.Handles
	Cache   cache.Store
	Service actionitems.Service
}

// NewLogger builds a JSON logger in production and a console logger otherwise
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	zc := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	}
	zc.Level = level
	return zc.Build()
}

// New builds every dependency. Nothing is loaded eagerly; call Warmup for that.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := metrics.NewManager()

	handles, err := providers.New(&cfg.NLP, m, logger.Named("nlp"))
	if err != nil {
		return nil, err
	}

	store, err := cache.New(ctx, cfg, logger.Named("cache"))
	if err != nil {
		return nil, err
	}

	strategy, err := actionitems.ParseStrategy(cfg.Extraction.Strategy)
	if err != nil {
		return nil, err
	}

	loc := cfg.Location()
	svc := actionitems.NewService(
		handles.Recognizer,
		handles.Parser,
		datetime.NewNaturalParser(nil, loc),
		store,
		m,
		actionitems.Config{
			DefaultStrategy: strategy,
			RosterThreshold: cfg.Extraction.RosterThreshold,
			CacheTTL:        cfg.Cache.TTL,
			Location:        loc,
		},
		logger.Named("actionitems"),
	)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
		Handles: handles,
		Cache:   store,
		Service: svc,
	}, nil
}

// Close releases the cache connection
func (a *App) Close() error {
	if a.Cache == nil {
		return nil
	}
	return a.Cache.Close()
}
