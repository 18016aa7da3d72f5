package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/codecafelab/content-service/internal/auth"
	"github.com/codecafelab/content-service/internal/config"
	"github.com/codecafelab/content-service/internal/content"
	"github.com/codecafelab/content-service/internal/httpx"
	"github.com/codecafelab/content-service/internal/shortlink"
)

// Handlers bundles the HTTP handlers the server routes to.
type Handlers struct {
	Content   *content.Handler
	ShortLink *shortlink.Handler
	Auth      *auth.Handler
}

// Server represents the HTTP server with all dependencies.
type Server struct {
	config        *config.Config
	logger        *slog.Logger
	handlers      Handlers
	authenticator *auth.Authenticator
	server        *http.Server
}

// New creates a new Server instance.
func New(cfg *config.Config, logger *slog.Logger, handlers Handlers, authenticator *auth.Authenticator) *Server {
	return &Server{
		config:        cfg,
		logger:        logger,
		handlers:      handlers,
		authenticator: authenticator,
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	mux := s.setupRoutes()
	handler := s.applyMiddleware(mux)
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Server.Host, s.config.Server.Port),
		Handler:      handler,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("starting http server",
			"addr", s.server.Addr,
			"env", s.config.App.Environment,
		)
		serverErrors <- s.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		s.logger.Info("received shutdown signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			if closeErr := s.server.Close(); closeErr != nil {
				return fmt.Errorf("failed to close server: %w", closeErr)
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		s.logger.Info("server stopped gracefully")
		return nil
	}
}

// setupRoutes configures all HTTP routes. Write endpoints for content
// sit behind the admin bearer token; reads and the redirect are public.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := auth.Middleware(s.authenticator)
	protected := func(h http.HandlerFunc) http.Handler { return requireAuth(h) }

	mux.HandleFunc("GET /x/health", s.healthCheckHandler)

	mux.HandleFunc("POST /api/auth/login", s.handlers.Auth.Login)

	mux.HandleFunc("GET /api/content/{kind}", s.handlers.Content.List)
	mux.HandleFunc("GET /api/content/{kind}/published", s.handlers.Content.ListPublished)
	mux.HandleFunc("GET /api/content/{kind}/featured", s.handlers.Content.ListFeatured)
	mux.HandleFunc("GET /api/content/{kind}/slug/{slug}", s.handlers.Content.GetBySlug)
	mux.HandleFunc("GET /api/content/{kind}/{id}", s.handlers.Content.GetByID)
	mux.HandleFunc("POST /api/content/{kind}/{id}/count", s.handlers.Content.Increment)
	mux.Handle("POST /api/content/{kind}", protected(s.handlers.Content.Create))
	mux.Handle("PUT /api/content/{kind}/{id}", protected(s.handlers.Content.Update))
	mux.Handle("DELETE /api/content/{kind}/{id}", protected(s.handlers.Content.Delete))

	mux.Handle("POST /api/shortlinks", protected(s.handlers.ShortLink.Shorten))
	mux.HandleFunc("GET /s/{hash}", s.handlers.ShortLink.Redirect)

	return mux
}

// applyMiddleware wraps the handler with middleware in the correct order.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	return httpx.Chain(
		httpx.Recovery(s.logger),
		httpx.RequestID,
		httpx.Logger(s.logger),
		httpx.CORS(nil),
	)(handler)
}

// healthCheckHandler handles health check requests.
func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": s.config.App.ServiceName,
		"version": s.config.App.ServiceVersion,
	})
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	s.logger.Info("shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("shutdown timeout exceeded, forcing close")
			return s.server.Close()
		}
		return err
	}

	return nil
}
