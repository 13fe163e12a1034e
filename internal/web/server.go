// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the movie grid page and its JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/pdiddy/movie-grid/internal/grid"
	"github.com/pdiddy/movie-grid/internal/metrics"
	"github.com/pdiddy/movie-grid/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// ShutdownTimeout bounds graceful shutdown once the run context ends.
var ShutdownTimeout = 5 * time.Second

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	cfg      types.ServerConfig
	state    *grid.State
	options  grid.Options
	metrics  *metrics.Metrics
	logger   *zap.Logger
	renderer *Renderer
	version  string
}

// NewServer wires the grid state and options into a Server. m and logger
// may be nil.
func NewServer(cfg types.ServerConfig, state *grid.State, opts grid.Options, m *metrics.Metrics, logger *zap.Logger, version string) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("template sub-FS: %w", err)
	}
	renderer, err := NewRenderer(templateSub)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:      cfg,
		state:    state,
		options:  opts,
		metrics:  m,
		logger:   logger,
		renderer: renderer,
		version:  version,
	}, nil
}

// Handler returns the routed handler with the middleware stack applied.
func (s *Server) Handler() http.Handler {
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("static sub-FS: %v", err))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(securityHeaders)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, s.logger, &APIError{Code: "not_found", Status: http.StatusNotFound, Message: "no route for " + req.URL.Path})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, s.logger, &APIError{Code: "method_not_allowed", Status: http.StatusMethodNotAllowed, Message: req.Method + " not allowed on " + req.URL.Path})
	})

	r.Get("/", s.handleIndex)

	r.Route("/api", func(r chi.Router) {
		if len(s.cfg.AllowedOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: s.cfg.AllowedOrigins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
				ExposedHeaders: []string{"X-Request-ID"},
				MaxAge:         300,
			}))
		}
		r.Get("/grid-options", s.handleGridOptions)
		r.Get("/rows", s.handleRows)
		r.Post("/search", s.handleSearch)
		r.Post("/rows/{imdbID}/action", s.handleRowAction)
		r.Get("/status", s.handleStatus)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

// requestLogger logs one line per request after it completes.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// securityHeaders allows scripts and styles from the AG Grid CDN only.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; script-src 'self' "+gridCDN+"; style-src 'self' 'unsafe-inline' "+gridCDN+"; img-src 'self' data:")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("movie grid listening", zap.String("url", "http://"+s.cfg.Addr))
	if strings.HasPrefix(s.cfg.Addr, "0.0.0.0") || strings.HasPrefix(s.cfg.Addr, "[::]") || strings.HasPrefix(s.cfg.Addr, ":") {
		s.logger.Warn("server is binding to all interfaces and may be reachable from the network")
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}
