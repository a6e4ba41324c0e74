package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/myflix/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler registers a group of endpoints on a [Router].
type Handler interface {
	Register(r Router)
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Server is the development backend.
type Server struct {
	config shared.ServerConfig
	logger *log.Logger
	store  *Store
	router *BasicRouter
}

// New builds a server with a seeded catalog and the full API mounted.
func New(config shared.ServerConfig, logger *log.Logger) (*Server, error) {
	if config.Secret == "" {
		return nil, shared.ErrMissingConfig
	}
	if config.TTL.Duration <= 0 {
		config.TTL.Duration = 7 * 24 * time.Hour
	}

	store := NewStore(SeedMovies())
	issuer := NewTokenIssuer([]byte(config.Secret), config.TTL.Duration)

	router := NewBasicRouter()
	router.Use(Recover(logger), Logging(logger))
	router.Handler(NewAPIHandler(store, issuer, logger))

	return &Server{config: config, logger: logger, store: store, router: router}, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store returns the server's data store.
func (s *Server) Store() *Store {
	return s.store
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev backend listening", "addr", srv.Addr, "movies", len(s.store.Movies()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down dev backend")
		return srv.Shutdown(shutdownCtx)
	}
}
