package http

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/freightdesk/loadboard-core/internal/core/ports/driving"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	logger     *zap.Logger

	// Services
	loadService         driving.LoadService
	conversationService driving.ConversationService
	ingestService       driving.IngestService
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	APIKey         string
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8000,
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	logger *zap.Logger,
	loadService driving.LoadService,
	conversationService driving.ConversationService,
	ingestService driving.IngestService,
) *Server {
	s := &Server{
		router:              http.NewServeMux(),
		logger:              logger,
		loadService:         loadService,
		conversationService: conversationService,
		ingestService:       ingestService,
	}

	handler := s.setupRoutes(cfg)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes and the middleware chain
func (s *Server) setupRoutes(cfg Config) http.Handler {
	auth := NewAuthMiddleware(cfg.APIKey)

	// Liveness endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /webhook/test", s.handleWebhookTest)

	// Load endpoints
	s.router.Handle("GET /loads",
		auth.Require(http.HandlerFunc(s.handleListLoads)))
	s.router.Handle("POST /loads",
		auth.Require(http.HandlerFunc(s.handleCreateLoad)))
	s.router.Handle("GET /loads/{id}",
		auth.Require(http.HandlerFunc(s.handleGetLoad)))
	s.router.Handle("PUT /loads/{id}",
		auth.Require(http.HandlerFunc(s.handleReplaceLoad)))
	s.router.Handle("DELETE /loads/{id}",
		auth.Require(http.HandlerFunc(s.handleDeleteLoad)))

	// Conversation endpoints
	s.router.Handle("GET /conversations",
		auth.Require(http.HandlerFunc(s.handleListConversations)))
	s.router.Handle("POST /conversations",
		auth.Require(http.HandlerFunc(s.handleCreateConversation)))
	s.router.Handle("GET /conversations/{id}",
		auth.Require(http.HandlerFunc(s.handleGetConversation)))
	s.router.Handle("DELETE /conversations/{id}",
		auth.Require(http.HandlerFunc(s.handleDeleteConversation)))

	// Webhook ingestion
	s.router.Handle("POST /webhook/extraction",
		auth.Require(http.HandlerFunc(s.handleWebhookExtraction)))

	// Outermost first: recovery wraps logging wraps CORS wraps routing
	var handler http.Handler = s.router
	handler = NewCORSMiddleware(cfg.AllowedOrigins).Handler(handler)
	handler = NewLoggingMiddleware(s.logger).Handler(handler)
	handler = NewRecoveryMiddleware(s.logger).Handler(handler)
	return handler
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		s.logger.Info("starting server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	<-stop
	s.logger.Info("shutting down server")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
