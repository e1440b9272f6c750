// Package http provides the HTTP server adapter for the application layer.
// This is a thin adapter layer that translates HTTP requests to application service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/application/service"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Services groups the application services the HTTP layer exposes
type Services struct {
	Decision     service.DecisionService
	Renewal      service.RenewalService
	Termination  service.TerminationService
	Notification service.NotificationService
	Contract     service.ContractService
	Faculty      service.FacultyService
}

// HealthChecker reports component health for the health endpoint
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	storage    port.FileStorage
	health     HealthChecker
	logger     Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(
	config ServerConfig,
	services Services,
	storage port.FileStorage,
	health HealthChecker,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	server := &Server{
		config:   config,
		router:   router,
		services: services,
		storage:  storage,
		health:   health,
		logger:   logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
	s.router.Use(corsMiddleware())
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.services, s.storage, s.health, s.logger)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	api := s.router.Group("/api")
	{
		// Renewal applications
		api.POST("/renewals", handlers.InitiateRenewal)
		api.GET("/renewals/queue", handlers.ListRenewalQueue)
		api.GET("/renewals/latest", handlers.GetLatestRenewal)
		api.GET("/renewals/:id", handlers.GetRenewal)
		api.GET("/renewals/:id/state", handlers.GetRenewalState)
		api.POST("/renewals/:id/decisions", handlers.SubmitRenewalDecision)
		api.POST("/renewals/:id/dossier", handlers.UploadDossier)
		api.POST("/renewals/:id/scores", handlers.RecordScores)
		api.GET("/renewals/:id/contract", handlers.DownloadContract)

		// Termination requests
		api.POST("/terminations", handlers.CreateTermination)
		api.GET("/terminations/queue", handlers.ListTerminationQueue)
		api.GET("/terminations/latest", handlers.GetLatestTermination)
		api.GET("/terminations/:id", handlers.GetTermination)
		api.GET("/terminations/:id/state", handlers.GetTerminationState)
		api.POST("/terminations/:id/decisions", handlers.SubmitTerminationDecision)
		api.POST("/terminations/:id/document", handlers.UploadTerminationDocument)
		api.POST("/terminations/:id/process", handlers.ProcessTermination)
		api.DELETE("/terminations/:id", handlers.CancelTermination)

		// Faculty
		api.GET("/faculty", handlers.ListFaculty)
		api.GET("/faculty/:id", handlers.GetFaculty)
		api.GET("/faculty/:id/profile", handlers.GetFacultyProfile)

		// Notifications
		api.GET("/notifications", handlers.ListNotifications)
		api.POST("/notifications/:id/read", handlers.MarkNotificationRead)
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
