package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"bizplan/internal/config"
	"bizplan/internal/logger"
	"bizplan/internal/pipeline"
	"bizplan/internal/server"
	"bizplan/internal/store"
)

// NewServeCmd creates the serve command for starting the HTTP server
func NewServeCmd() *cobra.Command {
	var (
		port   int
		host   string
		driver string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API for plan generation",
		Long: `Start the bizplan web server.

The server provides:
  • POST /api/plans to generate and save a plan
  • GET /api/plans/latest and /api/plans/{id} to retrieve saved plans
  • GET /plans/{id} for a rendered HTML view
  • /health, /metrics and /api/env-check for operations

Examples:
  # Start server on default port 8080 with the in-memory store
  bizplan serve

  # Persist plans in sqlite on a custom port
  bizplan serve --port 3000 --store sqlite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, host, driver)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 0.0.0.0)")
	cmd.Flags().StringVar(&driver, "store", "", "plan store driver: memory, sqlite, postgres or redis (default from config)")

	return cmd
}

func runServe(ctx context.Context, port int, host, driver string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.Get()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	serverCfg := cfg.Server
	if port != 0 {
		serverCfg.Port = port
	}
	if host != "" {
		serverCfg.Host = host
	}
	storeCfg := cfg.Store
	if driver != "" {
		storeCfg.Driver = driver
	}

	plans, err := store.New(ctx, storeCfg)
	if err != nil {
		return fmt.Errorf("failed to open plan store: %w", err)
	}
	defer plans.Close()
	log.Info("Plan store ready", "driver", storeCfg.Driver)

	p := pipeline.NewBuilder().FromAppConfig(ctx, cfg).Build()
	defer p.Close()

	srv := server.New(p, plans, serverCfg, server.WithGeminiKey(cfg.AI.Gemini.APIKey))

	serverErrors := make(chan error, 1)
	go func() {
		log.Info(fmt.Sprintf("Server listening on http://%s", serverCfg.Addr()))
		log.Info("Press Ctrl+C to stop")
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case sig := <-shutdown:
		log.Info("Server shutdown initiated", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Duration(serverCfg.ShutdownTimeout, 10*time.Second))
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info("Server stopped gracefully")
	}

	return nil
}
