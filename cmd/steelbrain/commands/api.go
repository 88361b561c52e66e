package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvaldez/steelbrain/internal/api"
	"github.com/nvaldez/steelbrain/internal/api/handlers"
	"github.com/nvaldez/steelbrain/internal/feeds"
	"github.com/nvaldez/steelbrain/pkg/config"
	"github.com/nvaldez/steelbrain/pkg/database"
	"github.com/nvaldez/steelbrain/pkg/logger"
	"github.com/nvaldez/steelbrain/pkg/redis"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                     - Health check
  POST /api/pipeline/run           - Trigger a pipeline run
  GET  /api/pipeline/latest        - Latest persisted run
  GET  /api/pipeline/runs          - Run summaries
  GET  /api/pipeline/runs/{runID}  - One run
  GET  /api/risk/assessment        - Current risk gate report
  GET  /api/suppliers/allocation   - Portfolio optimizer
  GET  /api/market/ticks           - Live steel prices
  GET  /api/demand/{product}       - Demand estimate
  GET  /api/reorder/{product}      - Reorder point

Example:
  go run ./cmd/steelbrain api
  go run ./cmd/steelbrain api --port 8084`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Database unavailable, serving without inventory and persistence")
		db = nil
	} else {
		defer db.Close()
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, serving without cache")
		redisClient = redis.NewDisabled()
	}
	defer redisClient.Close()

	c := buildComponents(cfg, log, db, redisClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ticker *feeds.Ticker
	if cfg.Ticker.Enabled {
		ticker = feeds.NewTicker(cfg.Ticker, log)
		if err := ticker.Start(ctx); err != nil {
			return fmt.Errorf("start ticker: %w", err)
		}
		defer ticker.Stop()
	}

	var runs handlers.RunStore
	if c.decisions != nil {
		runs = c.decisions
	}

	router := api.NewRouter(
		handlers.NewPipelineHandler(c.orchestrator, runs, log),
		handlers.NewRiskHandler(c.gate, c.optimizer, log),
		handlers.NewMarketHandler(ticker, c.estimator, c.reorder, log),
		log,
	)

	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.WithField("port", cfg.Port).Info("API server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
