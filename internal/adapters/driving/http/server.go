package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/fincoach/internal/core/ports/driven"
	"github.com/custodia-labs/fincoach/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	handler    http.Handler
	version    string
	logger     *slog.Logger

	// Services
	chatService         driving.ChatService
	conversationService driving.ConversationService // optional

	// Infrastructure
	documents   driven.DocumentStore
	db          Pinger // PostgreSQL health check (optional)
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
	Logger         *slog.Logger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	chatService driving.ChatService,
	conversationService driving.ConversationService, // can be nil
	documents driven.DocumentStore,
	db Pinger, // can be nil
	redisClient Pinger, // can be nil
) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:              http.NewServeMux(),
		version:             cfg.Version,
		logger:              logger,
		chatService:         chatService,
		conversationService: conversationService,
		documents:           documents,
		db:                  db,
		redisClient:         redisClient,
	}

	s.setupRoutes()

	// Outermost first: request ID, logging, recovery, CORS
	s.handler = NewRequestIDMiddleware().Handler(
		NewLoggingMiddleware(logger).Handler(
			NewRecoveryMiddleware(logger).Handler(
				NewCORSMiddleware(cfg.AllowedOrigins).Handler(s.router))))

	// The completion call has no client timeout, so no WriteTimeout either.
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health endpoints
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)

	// Chat accepts every method so non-POST requests get the documented 405 body
	s.router.HandleFunc("/api/chat", s.handleChat)

	if s.conversationService != nil {
		s.router.HandleFunc("POST /api/conversations", s.handleCreateConversation)
		s.router.HandleFunc("GET /api/conversations/{id}", s.handleGetConversation)
		s.router.HandleFunc("PUT /api/conversations/{id}", s.handleReplaceConversation)
		s.router.HandleFunc("DELETE /api/conversations/{id}", s.handleDeleteConversation)
		s.router.HandleFunc("POST /api/conversations/{id}/messages", s.handleAppendMessages)
	}
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
