package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bizplan/internal/config"
	"bizplan/internal/core"
	"bizplan/internal/logger"
	"bizplan/internal/store"
)

// Planner produces plans for submitted forms
type Planner interface {
	Generate(ctx context.Context, in core.BusinessPlanInput) *core.PlanResult
	Available() (bool, error)
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	planner    Planner
	plans      store.PlanStore
	config     config.Server
	geminiKey  string
	log        *slog.Logger
	renderer   *TemplateRenderer
}

// Option customizes a Server
type Option func(*Server)

// WithGeminiKey lets /api/env-check report on the configured key
func WithGeminiKey(key string) Option {
	return func(s *Server) { s.geminiKey = key }
}

// New creates a new HTTP server instance
func New(p Planner, plans store.PlanStore, cfg config.Server, opts ...Option) *Server {
	log := logger.Get()

	renderer, err := NewTemplateRenderer()
	if err != nil {
		log.Warn("Failed to initialize template renderer, web pages may not work", "error", err)
	}

	s := &Server{
		router:   chi.NewRouter(),
		planner:  p,
		plans:    plans,
		config:   cfg,
		log:      log,
		renderer: renderer,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  config.Duration(cfg.ReadTimeout, 15*time.Second),
		WriteTimeout: config.Duration(cfg.WriteTimeout, 30*time.Second),
	}

	return s
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(securityHeaders)

	if s.config.CORS.Enabled {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300, // Maximum value not ignored by any major browsers
		}))
	}
}

// setupRoutes configures routes for the server
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/env-check", s.handleEnvCheck)

		r.Route("/plans", func(r chi.Router) {
			r.Post("/", s.handleCreatePlan)
			r.Get("/latest", s.handleLatestPlan)
			r.Get("/{id}", s.handleGetPlan)
		})
	})

	s.router.Get("/plans/{id}", s.handlePlanPage)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		"addr", s.httpServer.Addr,
		"read_timeout", s.httpServer.ReadTimeout,
		"write_timeout", s.httpServer.WriteTimeout,
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}
