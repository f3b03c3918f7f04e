// Package server implements the hexmap tile service.
//
// Routes:
//
//	GET /api/tile         map tile or whole sector as PNG, JPEG or SVG
//	GET /api/coordinates  sector + hex to global coordinates, as JSON
//	GET /api/version      build information
//	GET /healthz          liveness probe
//
// Tiles go through a [pipeline.Runner], so the configured tile cache is
// shared by every request.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/travellermap/hexmap/pkg/pipeline"
	"github.com/travellermap/hexmap/pkg/sector"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// requestTimeout bounds a single render.
const requestTimeout = 30 * time.Second

// Config configures a Server.
type Config struct {
	Addr     string
	Provider sector.Provider
	Runner   *pipeline.Runner
	Logger   *log.Logger
	// Defaults are applied to every tile request before the query.
	Defaults pipeline.Options
}

// Server serves map tiles over HTTP.
type Server struct {
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New builds a server. A nil Runner renders without a cache.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, cfg.Logger)
	}
	if cfg.Provider == nil {
		cfg.Provider = sector.NewMemoryProvider()
	}
	s := &Server{cfg: cfg, logger: cfg.Logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.With(middleware.Timeout(requestTimeout)).Get("/tile", s.handleTile)
		r.Get("/coordinates", s.handleCoordinates)
		r.Get("/version", s.handleVersion)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
