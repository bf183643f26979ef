// Package httpapi provides the HTTP adapter for the application layer.
// It is a thin translation layer: requests become service calls, domain
// errors become status codes.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/da-kil/reviewflow/internal/application/service"
	"github.com/da-kil/reviewflow/internal/export"
)

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

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	service    *service.AssignmentService
	exporter   *export.AuditExporter
	logger     *zap.Logger
}

// NewServer creates a new HTTP server around the assignment service
func NewServer(config ServerConfig, svc *service.AssignmentService, exporter *export.AuditExporter, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:   config,
		router:   gin.New(),
		service:  svc,
		exporter: exporter,
		logger:   logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.service, s.exporter, s.logger)

	s.router.GET("/health", handlers.HealthCheck)

	api := s.router.Group("/api")
	{
		api.POST("/assignments", handlers.CreateAssignment)
		api.GET("/assignments/:id", handlers.GetAssignment)
		api.GET("/assignments/:id/history", handlers.GetHistory)
		api.GET("/assignments/:id/transitions", handlers.GetTransitions)
		api.GET("/assignments/:id/export", handlers.ExportAssignment)

		api.POST("/assignments/:id/start", handlers.StartWork)
		api.POST("/assignments/:id/complete-work", handlers.CompleteWork)
		api.POST("/assignments/:id/due-date", handlers.ExtendDueDate)
		api.POST("/assignments/:id/withdraw", handlers.Withdraw)
		api.POST("/assignments/:id/sections/complete", handlers.CompleteSections)
		api.POST("/assignments/:id/sections/:sectionID/complete", handlers.CompleteSection)

		api.POST("/assignments/:id/submit/employee", handlers.SubmitEmployee)
		api.POST("/assignments/:id/submit/manager", handlers.SubmitManager)

		api.POST("/assignments/:id/review/initiate", handlers.InitiateReview)
		api.POST("/assignments/:id/review/edit", handlers.EditAnswerDuringReview)
		api.POST("/assignments/:id/review/finish", handlers.FinishReview)
		api.POST("/assignments/:id/confirm/employee", handlers.ConfirmAsEmployee)
		api.POST("/assignments/:id/confirm/manager", handlers.ConfirmAsManager)
		api.POST("/assignments/:id/finalize", handlers.Finalize)
		api.POST("/assignments/:id/reopen", handlers.Reopen)

		api.POST("/assignments/:id/goals", handlers.AddGoal)
		api.POST("/assignments/:id/goals/:goalID/modifications", handlers.ModifyGoal)
		api.POST("/assignments/:id/ratings", handlers.RatePredecessorGoal)
		api.POST("/assignments/:id/ratings/:ratingID/modifications", handlers.ModifyRating)
	}
}

// Start starts the HTTP server and blocks until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", zap.String("address", addr))

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
		s.logger.Error("HTTP server error", zap.Error(err))
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
