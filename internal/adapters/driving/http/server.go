package http

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/docquery-labs/docquery-core/internal/core/ports/driving"
)

// EngineFactory creates an engine instance for one subject. Each subject
// (token identity) gets its own engine so concurrent users never share a
// document session.
type EngineFactory func() (driving.EngineService, error)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	logger     *zap.Logger
	version    string

	authService    driving.AuthService
	newEngine      EngineFactory
	maxUploadBytes int64

	mu      sync.Mutex
	engines map[string]driving.EngineService
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
	MaxUploadBytes int64
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		MaxUploadBytes: 10 << 20,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   180 * time.Second,
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	newEngine EngineFactory,
	logger *zap.Logger,
) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultConfig().MaxUploadBytes
	}

	s := &Server{
		router:         http.NewServeMux(),
		logger:         logger,
		version:        cfg.Version,
		authService:    authService,
		newEngine:      newEngine,
		maxUploadBytes: cfg.MaxUploadBytes,
		engines:        make(map[string]driving.EngineService),
	}

	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = DefaultConfig().ReadTimeout
	}
	// Generation can take minutes on local models, so the write timeout is
	// much longer than the read timeout.
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = DefaultConfig().WriteTimeout
	}

	var handler http.Handler = s.router
	handler = NewCORSMiddleware(cfg.AllowedOrigins).Handler(handler)
	handler = NewLoggingMiddleware(logger).Handler(handler)
	handler = NewRecoveryMiddleware(logger).Handler(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	// Document conversation endpoints (authenticated)
	s.router.Handle("POST /api/v1/documents",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUploadDocument)))
	s.router.Handle("POST /api/v1/ask",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleAsk)))
	s.router.Handle("GET /api/v1/history",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleHistory)))
	s.router.Handle("GET /api/v1/models",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleModels)))
}

// engineFor returns the engine owned by the subject, creating it on first
// use. Engines are kept for the process lifetime; a re-login with the same
// subject resumes the same session.
func (s *Server) engineFor(subject string) (driving.EngineService, error) {
	if subject == "" {
		subject = defaultSubject
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if engine, ok := s.engines[subject]; ok {
		return engine, nil
	}
	engine, err := s.newEngine()
	if err != nil {
		return nil, err
	}
	s.engines[subject] = engine
	return engine, nil
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("starting server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

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

// Router exposes the route handler, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}
