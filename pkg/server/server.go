// Package server exposes the tiling pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz                                 liveness check
//	POST /api/v1/tilings                          compute and store a tiling
//	GET  /api/v1/tilings/{id}                     fetch a stored tiling
//	GET  /api/v1/tilings/{id}/render/{format}     render a stored tiling
//	GET  /api/v1/render/{format}?width=&height=   compute and render in one call
//
// Stored tilings live in the runner's cache under [cache.Keyer.RecordKey]
// and expire after the record TTL. Errors are returned as JSON objects with
// "code" and "error" fields; INVALID_* codes map to 400, NOT_FOUND codes
// to 404 and UNSUPPORTED to 501. POST /api/v1/tilings answers 501 when the
// runner has no cache, since the stored tiling could never be fetched.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/roomtile/pkg/cache"
	"github.com/matzehuels/roomtile/pkg/pipeline"
)

const (
	// DefaultMaxCells bounds the room area a single request may ask for.
	DefaultMaxCells = 1 << 20

	// DefaultMaxPaletteLen bounds the number of tile sizes a request may
	// ask for. Every size costs one spiral pass over the room.
	DefaultMaxPaletteLen = 16

	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Server serves the tiling API.
type Server struct {
	runner     *pipeline.Runner
	logger     *log.Logger
	recordTTL  time.Duration
	maxCells   int
	maxPalette int
	render    pipeline.Options
}

// Option configures a Server.
type Option func(*Server)

// WithRecordTTL sets how long stored tilings are kept.
func WithRecordTTL(ttl time.Duration) Option { return func(s *Server) { s.recordTTL = ttl } }

// WithMaxCells sets the largest accepted room area (height × width).
func WithMaxCells(n int) Option { return func(s *Server) { s.maxCells = n } }

// WithMaxPaletteLen sets the largest accepted palette length.
func WithMaxPaletteLen(n int) Option { return func(s *Server) { s.maxPalette = n } }

// WithRenderDefaults sets the cell size, DPI and colors used for rendering.
// Only those fields of opts are read.
func WithRenderDefaults(opts pipeline.Options) Option {
	return func(s *Server) {
		s.render.CellSize = opts.CellSize
		s.render.DPI = opts.DPI
		s.render.Colors = opts.Colors
	}
}

// New creates a server around a pipeline runner. A nil logger uses the
// runner's logger.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner:     runner,
		logger:     logger,
		recordTTL:  cache.TTLRecord,
		maxCells:   DefaultMaxCells,
		maxPalette: DefaultMaxPaletteLen,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tilings", s.handleCreateTiling)
		r.Get("/tilings/{id}", s.handleGetTiling)
		r.Get("/tilings/{id}/render/{format}", s.handleRenderTiling)
		r.Get("/render/{format}", s.handleRender)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errNotFound("no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
