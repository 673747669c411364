package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// ErrMissingService is returned when a required service is nil.
var ErrMissingService = errors.New("missing required service")

// Services holds the application services the API drives.
type Services struct {
	Query     driving.QueryService
	Documents driving.DocumentService
	Ingest    driving.IngestService
	History   driving.HistoryService
}

// Validate checks that every service is set.
func (s *Services) Validate() error {
	if s == nil {
		return ErrMissingService
	}
	switch {
	case s.Query == nil:
		return fmt.Errorf("%w: query", ErrMissingService)
	case s.Documents == nil:
		return fmt.Errorf("%w: documents", ErrMissingService)
	case s.Ingest == nil:
		return fmt.Errorf("%w: ingest", ErrMissingService)
	case s.History == nil:
		return fmt.Errorf("%w: history", ErrMissingService)
	}
	return nil
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Server provides the askdocs HTTP API.
type Server struct {
	echo     *echo.Echo
	services *Services
	metrics  *Metrics
	registry *prometheus.Registry
	config   *Config
}

// NewServer creates a new HTTP server.
// A nil config listens on the default host and port.
func NewServer(services *Services, cfg *Config) (*Server, error) {
	if err := services.Validate(); err != nil {
		return nil, err
	}
	if cfg == nil {
		defaults := domain.DefaultAppSettings()
		cfg = &Config{
			Host: defaults.Server.Host,
			Port: defaults.Server.Port,
		}
	}

	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry, services.Documents)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			logger.Info("%s %s %d %s request_id=%s",
				c.Request().Method,
				c.Request().RequestURI,
				c.Response().Status,
				time.Since(start),
				c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return nil
		}
	})
	e.Use(metrics.Middleware())
	e.Use(middleware.BodyLimit(bodyLimit))

	s := &Server{
		echo:     e,
		services: services,
		metrics:  metrics,
		registry: registry,
		config:   cfg,
	}
	s.registerRoutes()

	return s, nil
}

// bodyLimit leaves room for multipart framing around a maximum size upload.
var bodyLimit = fmt.Sprintf("%dM", domain.MaxUploadSize/(1<<20)+1)

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := s.echo.Group("/api")
	api.POST("/upload", s.handleUpload)
	api.GET("/upload/documents", s.handleListDocuments)
	api.DELETE("/upload/documents/:id", s.handleDeleteDocument)
	api.POST("/query", s.handleQuery)
	api.GET("/history", s.handleHistory)
	api.DELETE("/history", s.handleClearHistory)
}

// Handler exposes the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	logger.Info("Starting HTTP server on %s", s.Addr())
	err := s.echo.Start(s.Addr())
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Run starts the server and shuts it down when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}
