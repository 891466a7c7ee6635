package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgmiddleware "github.com/johnquangdev/meeting-actions/pkg/middleware"
	pkgvalidator "github.com/johnquangdev/meeting-actions/pkg/validator"

	"github.com/johnquangdev/meeting-actions/internal/adapter/handler"
	"github.com/johnquangdev/meeting-actions/internal/app"
	"github.com/johnquangdev/meeting-actions/pkg/config"
)

// @title           Meeting Actions API
// @version         1.0
// @description     Extracts action items (task, assignee, deadline) from meeting transcripts
// @BasePath        /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	logger.Info("Initializing dependencies",
		zap.String("ner_provider", cfg.NLP.NERProvider),
		zap.String("parser_provider", cfg.NLP.ParserProvider),
		zap.String("cache_driver", cfg.Cache.Driver),
	)
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer a.Close()

	if cfg.NLP.Warmup {
		warmCtx, cancel := context.WithTimeout(ctx, cfg.NLP.Timeout)
		a.Service.Warmup(warmCtx)
		cancel()
	}

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(pkgmiddleware.RequestID())
	e.Use(pkgmiddleware.Metrics(a.Metrics))
	e.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	actionItemsHandler := handler.NewActionItemsHandler(a.Service, logger.Named("http"))
	handler.NewRouter(cfg, a.Service, actionItemsHandler, a.Metrics).Setup(e)

	// Start server
	addr := cfg.GetServerAddr()
	go func() {
		logger.Info("Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("Server stopped gracefully")
}
