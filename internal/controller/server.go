// Package controller wires the item API: route table, middleware and HTTP server.
package controller

import (
	"context"
	"io"
	"itemplane/internal/controller/handlers"
	"itemplane/internal/controller/middleware"
	"log/slog"
	"net/http"
	"time"
)

// Options carries optional collaborators. Nil fields switch the feature off.
type Options struct {
	Logger         *slog.Logger
	MetricsHandler http.Handler
	HTTPMetrics    *middleware.HTTPMetrics
	RateLimiter    *middleware.RateLimiter
}

// Server is the HTTP server for the item API.
type Server struct {
	httpServer *http.Server
}

// New creates a new server. The route table is built once here and never changes.
func New(addr string, store handlers.StoreFactory, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	h := handlers.New(store, log)
	mux := routes(h, opts.MetricsHandler)

	mws := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Tracing,
		middleware.AccessLog(log),
	}
	if opts.HTTPMetrics != nil {
		mws = append(mws, opts.HTTPMetrics.Middleware)
	}
	if opts.RateLimiter != nil {
		mws = append(mws, opts.RateLimiter.Middleware())
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      middleware.Chain(middleware.Routed(mux), mws...),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// routes builds the static route table.
// Every resource path also gets a method-less fallback so a wrong method is a JSON 405.
func routes(h *handlers.Handlers, metricsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("/{$}", h.MethodNotAllowed(http.MethodGet))

	// Generic item resource
	mux.HandleFunc("GET /items/{$}", h.ListItems)
	mux.HandleFunc("POST /items/{$}", h.CreateItem)
	mux.HandleFunc("/items/{$}", h.MethodNotAllowed(http.MethodGet, http.MethodPost))

	mux.HandleFunc("GET /items/{id}/{$}", h.GetItem)
	mux.HandleFunc("PUT /items/{id}/{$}", h.UpdateItem)
	mux.HandleFunc("PATCH /items/{id}/{$}", h.PartialUpdateItem)
	mux.HandleFunc("DELETE /items/{id}/{$}", h.DeleteItem)
	mux.HandleFunc("/items/{id}/{$}", h.MethodNotAllowed(http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete))

	// Fixed single-purpose endpoints, served by the same list and create handlers.
	mux.HandleFunc("GET /read/{$}", h.ListItems)
	mux.HandleFunc("/read/{$}", h.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc("POST /write/{$}", h.CreateItem)
	mux.HandleFunc("/write/{$}", h.MethodNotAllowed(http.MethodPost))

	// Probes
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("/healthz", h.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc("GET /readyz", h.Readyz)
	mux.HandleFunc("/readyz", h.MethodNotAllowed(http.MethodGet))
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
		mux.HandleFunc("/metrics", h.MethodNotAllowed(http.MethodGet))
	}

	mux.HandleFunc("/", h.NotFound)

	return mux
}

// Handler exposes the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server. It blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutDownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return s.Shutdown(shutDownCtx)
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
