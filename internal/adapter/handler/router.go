package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	minutesHandler *Minutes
	jwtManager     *jwt.Manager
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, minutesHandler *Minutes, jwtManager *jwt.Manager) *Router {
	return &Router{
		cfg:            cfg,
		minutesHandler: minutesHandler,
		jwtManager:     jwtManager,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMinutesRoutes(v1)
}

// setupMinutesRoutes configures minutes generation routes
func (rt *Router) setupMinutesRoutes(g *echo.Group) {
	minutesGroup := g.Group("/minutes")

	// Token auth outside local development
	if rt.jwtManager != nil && rt.cfg.Server.Environment != "development" {
		minutesGroup.Use(middleware.EchoAuth(rt.jwtManager))
	}

	if rt.minutesHandler != nil {
		minutesGroup.POST("", rt.minutesHandler.Generate)
		minutesGroup.POST("/from-storage", rt.minutesHandler.GenerateFromStorage)
		minutesGroup.GET("", rt.minutesHandler.List)
		minutesGroup.GET("/:id", rt.minutesHandler.Get)
		minutesGroup.GET("/:id/report", rt.minutesHandler.Report)
	} else {
		minutesGroup.POST("", rt.notImplemented)
		minutesGroup.POST("/from-storage", rt.notImplemented)
		minutesGroup.GET("", rt.notImplemented)
		minutesGroup.GET("/:id", rt.notImplemented)
		minutesGroup.GET("/:id/report", rt.notImplemented)
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

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
