package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quantarc/option-engine/pkg/metrics"
	"github.com/quantarc/option-engine/pkg/utils/logger"
)

// Config holds the configuration for the API server
type Config struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Environment    string
	MetricsEnabled bool
}

// Server represents the API server
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	handlers   *Handlers
	log        *logger.Logger
}

// NewServer creates a new API server
func NewServer(config Config, handlers *Handlers, recorder *metrics.Recorder) *Server {
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = 10 * time.Second
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 10 * time.Second
	}

	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &Server{
		config:   config,
		router:   gin.New(),
		handlers: handlers,
		log:      logger.GetLogger("api.server"),
	}

	server.setupRoutes(recorder)

	return server
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes(recorder *metrics.Recorder) {
	s.router.Use(LoggingMiddleware())
	s.router.Use(MetricsMiddleware(recorder))
	s.router.Use(CORSMiddleware())
	s.router.Use(RecoveryMiddleware())

	if s.config.MetricsEnabled {
		s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := s.router.Group("/api/v1")
	v1.GET("/health", s.handlers.HealthCheckHandler)
	v1.POST("/pricing/price", s.handlers.PriceHandler)
	v1.POST("/simulate", s.handlers.SimulateHandler)
	v1.GET("/simulate/stream", s.handlers.StreamHandler)
}

// Router exposes the configured engine, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the API server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.log.Infof("Starting API server on %s", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop stops the API server gracefully
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		s.log.Info("Stopping API server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
