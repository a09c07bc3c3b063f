// Package server exposes the arrange pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz      liveness and version
//	POST /v1/arrange   layout + route (+ render when formats are requested)
//	POST /v1/route     route only
//	POST /v1/render    render only; ?format=svg returns the raw artifact
//
// Requests carry the diagram and optional pipeline options:
//
//	{"diagram": {"shapes": [...], "connections": [...]}, "options": {"layout": {"seed": 7}}}
//
// Omitted options keep the server's defaults. Errors are reported as
// {"error": {"code": "INVALID_DIAGRAM", "message": "..."}} with the status
// given by [apperrors.HTTPStatus].
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

	"github.com/matzehuels/arrange/pkg/buildinfo"
	"github.com/matzehuels/arrange/pkg/layout"
	"github.com/matzehuels/arrange/pkg/pipeline"
)

// Default server settings.
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 1 << 20
	DefaultTimeout      = 30 * time.Second
)

// Config configures a [Server].
type Config struct {
	// Addr is the listen address.
	Addr string

	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64

	// Timeout bounds each request, including the simulation.
	Timeout time.Duration

	// Defaults are the pipeline options requests are decoded over. A zero
	// value means [pipeline.DefaultOptions].
	Defaults pipeline.Options
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Defaults.Layout == (layout.Params{}) {
		c.Defaults = pipeline.DefaultOptions()
	}
	// Requests choose their own formats.
	c.Defaults.Formats = nil
	c.Defaults.Logger = nil
	c.Defaults.Observe = nil
	return c
}

// Server serves the pipeline.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server. If logger is nil, logs are discarded.
func New(cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{
		cfg:    cfg.withDefaults(),
		runner: pipeline.NewRunner(logger),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Server", buildinfo.UserAgent()))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/arrange", s.handleArrange)
		r.Post("/route", s.handleRoute)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.Timeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
