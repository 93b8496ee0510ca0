// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	otelmetric "go.opentelemetry.io/otel/metric"

	authHTTP "github.com/syntorio/synthid/internal/auth/http"
	authUseCase "github.com/syntorio/synthid/internal/auth/usecase"
	"github.com/syntorio/synthid/internal/metrics"
	profilesHTTP "github.com/syntorio/synthid/internal/profiles/http"
)

// Server represents the main API HTTP server.
type Server struct {
	db     *sql.DB
	host   string
	port   int
	logger *slog.Logger
	router *gin.Engine
	server *http.Server
}

// NewServer creates a new HTTP server. The database handle is used by the
// readiness endpoint; routes must be registered via SetupRouter before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		host:   host,
		port:   port,
		logger: logger,
	}
}

// GetHandler returns the configured router, primarily for tests that mount
// the API on an httptest server. Returns nil before SetupRouter is called.
func (s *Server) GetHandler() http.Handler {
	if s.router == nil {
		return nil
	}
	return s.router
}

// RouterConfig holds the handlers and settings used to build the API router.
type RouterConfig struct {
	ProfileHandler   *profilesHTTP.ProfileHandler
	APIKeyHandler    *authHTTP.APIKeyHandler
	APIKeyUseCase    authUseCase.APIKeyUseCase
	MeterProvider    otelmetric.MeterProvider
	MetricsNamespace string
	CORSEnabled      bool
	CORSAllowOrigins string
	RateLimitRPS     float64
	RateLimitBurst   int
}

// SetupRouter builds the Gin router with all API routes and middleware.
//
// Route layout:
//   - GET  /health, GET /ready                unauthenticated probes
//   - /v1/profiles/**                         API key required, rate limited when enabled
//   - /v1/admin/api-keys/**                   API key with admin role required
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authenticated := authHTTP.AuthenticationMiddleware(cfg.APIKeyUseCase, s.logger)

	profileMiddleware := []gin.HandlerFunc{authenticated}
	if cfg.RateLimitRPS > 0 {
		profileMiddleware = append(
			profileMiddleware,
			authHTTP.RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, s.logger),
		)
	}

	v1 := router.Group("/v1")

	profileRoutes := v1.Group("/profiles", profileMiddleware...)
	profileRoutes.POST("", cfg.ProfileHandler.GenerateHandler)
	profileRoutes.GET("", cfg.ProfileHandler.ListHandler)
	profileRoutes.GET("/:id", cfg.ProfileHandler.GetHandler)
	profileRoutes.DELETE("/:id", cfg.ProfileHandler.DeleteHandler)
	profileRoutes.GET("/:id/export", cfg.ProfileHandler.ExportHandler)

	adminRoutes := v1.Group("/admin", authenticated, authHTTP.AdminRequiredMiddleware(s.logger))
	adminRoutes.POST("/api-keys", cfg.APIKeyHandler.CreateHandler)
	adminRoutes.GET("/api-keys", cfg.APIKeyHandler.ListHandler)
	adminRoutes.DELETE("/api-keys/:id", cfg.APIKeyHandler.RevokeHandler)

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, including
// database connectivity.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else if err := s.db.PingContext(c.Request.Context()); err != nil {
		s.logger.Warn("readiness check: database ping failed",
			slog.String("error", err.Error()))
		components["database"] = "error"
		ready = false
	} else {
		components["database"] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured, call SetupRouter first")
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
