package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/TunnelFront/server/internal/config"
	"github.com/TunnelFront/server/internal/logger"
	"github.com/TunnelFront/server/internal/metrics"
	"github.com/TunnelFront/server/internal/ratelimit"
)

// Server wires handlers, middleware, and dependencies.
type Server struct {
	handlers
	httpServer *http.Server
}

// New builds the HTTP server with configured router.
func New(cfg *config.Config, metricsCollector *metrics.Metrics, appLogger zerolog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		handlers: handlers{
			cfg:     cfg,
			metrics: metricsCollector,
			logger:  appLogger,
		},
		httpServer: &http.Server{
			Addr:         cfg.Server.Address,
			ReadTimeout:  cfg.Server.ReadTimeout.Duration,
			WriteTimeout: cfg.Server.WriteTimeout.Duration,
			IdleTimeout:  cfg.Server.IdleTimeout.Duration,
			Handler:      router,
		},
	}

	ConfigureRouter(router, cfg, metricsCollector, appLogger)

	return s
}

// ConfigureRouter attaches tunnelfront routes to an existing router.
func ConfigureRouter(router chi.Router, cfg *config.Config, metricsCollector *metrics.Metrics, appLogger zerolog.Logger) {
	if router == nil {
		return
	}

	handler := handlers{
		cfg:     cfg,
		metrics: metricsCollector,
		logger:  appLogger,
	}

	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		router.Use(cors.New(cors.Options{
			AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: false,
			MaxAge:           300,
		}).Handler)
	}

	// Security headers middleware (outermost response stage, so every
	// response leaves with the policy applied)
	router.Use(securityHeadersMiddleware(cfg.Security, metricsCollector))

	// Structured logging middleware (BEFORE RequestID for context propagation)
	router.Use(logger.Middleware(appLogger))
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(recoveryMiddleware)

	router.Use(metricsMiddleware(metricsCollector))

	router.Use(ratelimit.IPLimiter(ratelimit.Config{
		Enabled: cfg.RateLimit.Enabled,
		Limit:   cfg.RateLimit.Limit,
		Window:  cfg.RateLimit.Window.Duration,
		Burst:   cfg.RateLimit.Limit / 6, // Burst = ~17% of limit
		Metrics: metricsCollector,
	}))

	router.NotFound(handler.notFound)
	router.MethodNotAllowed(handler.methodNotAllowed)

	// Lightweight endpoints with 5s timeout (health checks, metrics)
	router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(5 * time.Second))
		r.Get("/health", handler.health)
		// Prometheus metrics endpoint, protected by an optional admin API key
		r.With(adminMetricsAuth(cfg.Server.AdminMetricsAPIKey)).Handle("/metrics", promhttp.Handler())
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		r.Get("/", handler.root)
	})
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
