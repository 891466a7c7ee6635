package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-actions/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-actions/internal/usecase/actionitems"
	"github.com/johnquangdev/meeting-actions/pkg/config"
	"github.com/johnquangdev/meeting-actions/pkg/metrics"
)

// Router holds all handlers
type Router struct {
	cfg                *config.Config
	svc                actionitems.Service
	actionItemsHandler *ActionItems
	metrics            *metrics.Manager
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, svc actionitems.Service, actionItemsHandler *ActionItems, m *metrics.Manager) *Router {
	return &Router{
		cfg:                cfg,
		svc:                svc,
		actionItemsHandler: actionItemsHandler,
		metrics:            m,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	var logger *zap.Logger
	if rt.actionItemsHandler != nil {
		logger = rt.actionItemsHandler.logger
	}
	e.HTTPErrorHandler = HTTPErrorHandler(logger, e.DefaultHTTPErrorHandler)

	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	if rt.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(rt.metrics.Handler()))
	}

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupActionItemRoutes(v1)
}

// setupActionItemRoutes configures extraction routes
func (rt *Router) setupActionItemRoutes(g *echo.Group) {
	actionItemGroup := g.Group("/action-items")

	if rt.actionItemsHandler != nil {
		actionItemGroup.POST("/extract", rt.actionItemsHandler.Extract)
	} else {
		actionItemGroup.POST("/extract", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status. Capability states are reported without
// triggering a model load.
func (rt *Router) healthCheck(c echo.Context) error {
	environment := ""
	if rt.cfg != nil {
		environment = rt.cfg.Server.Environment
	}

	var resp interface{} = map[string]interface{}{
		"status":      "ok",
		"environment": environment,
	}
	if rt.svc != nil {
		resp = presenter.ToHealthResponse(environment, rt.svc.Capabilities())
	}
	return c.JSON(http.StatusOK, resp)
}
