package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/TunnelFront/server/internal/config"
	"github.com/TunnelFront/server/internal/httpserver"
	"github.com/TunnelFront/server/internal/lifecycle"
	"github.com/TunnelFront/server/internal/logger"
	"github.com/TunnelFront/server/internal/metrics"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	// Load .env if present; real environment variables still win.
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("TUNNELFRONT_CONFIG"), "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// The policy must be fully resolved before accepting connections.
		log.Fatal().Err(err).Msg("config.load_failed")
	}

	appLogger := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Service:     config.ServiceName,
		Version:     version,
		Environment: cfg.Logging.Environment,
	})

	resources := lifecycle.NewManager()
	metricsCollector := metrics.New(prometheus.DefaultRegisterer)

	srv := httpserver.New(cfg, metricsCollector, appLogger)
	resources.RegisterFunc("http-server", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	})

	go func() {
		appLogger.Info().
			Str("address", cfg.Server.Address).
			Msg("server.starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server.listen_failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	appLogger.Info().Msg("server.shutting_down")
	if err := resources.Close(); err != nil {
		appLogger.Error().Err(err).Msg("server.shutdown_failed")
		os.Exit(1)
	}
	appLogger.Info().Msg("server.stopped")
}
