// Package server exposes the query resolver over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/legisverde/legisverde/internal/resolver"
	"github.com/legisverde/legisverde/internal/stats"
)

// QueryResolver answers one question. It never errors; failures are
// encoded in the response body.
type QueryResolver interface {
	Resolve(ctx context.Context, question string) *resolver.Response
}

// Config holds server configuration.
type Config struct {
	Port int
	// MaxInflight bounds concurrently handled queries at the HTTP
	// layer, mirroring the resolver's own slot pool.
	MaxInflight int
	// AllowAll opens CORS to any origin (dev mode).
	AllowAll bool
}

// Server is the legisverde HTTP API.
type Server struct {
	cfg        Config
	resolver   QueryResolver
	stats      stats.Provider
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server with all dependencies.
func New(cfg Config, res QueryResolver, provider stats.Provider) *Server {
	if cfg.MaxInflight <= 0 {
		cfg.MaxInflight = 4
	}
	s := &Server{cfg: cfg, resolver: res, stats: provider}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Queries hit the vector index and the LLM; bound them before
		// they reach the resolver's slot pool so excess requests queue
		// at the transport instead of holding goroutines mid-pipeline.
		r.With(middleware.Throttle(s.cfg.MaxInflight)).Post("/consultar", s.handleConsultar)
		r.Get("/estatisticas", s.handleEstatisticas)
	})

	return r
}

// Router returns the chi router, exposed for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("legisverde escutando em %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
