package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvaldez/steelbrain/internal/brain"
	"github.com/nvaldez/steelbrain/pkg/config"
	"github.com/nvaldez/steelbrain/pkg/database"
	"github.com/nvaldez/steelbrain/pkg/logger"
	"github.com/nvaldez/steelbrain/pkg/redis"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one pipeline run",
	Long: `Runs the four-phase decision pipeline once and prints the
result as JSON.

Phases:
  P1  Opportunity detection (tenders vs inventory)
  P2  Risk gate (news scenarios, price trend, go/no-go)
  P3  Supplier selection (financing-gated purchase decisions)
  P4  Logistics routing (landed cost and inland route)

Example:
  go run ./cmd/steelbrain run
  go run ./cmd/steelbrain run --scenario "Crisis: port strike"`,
	RunE: runPipeline,
}

var (
	runScenario string
	runTimeout  time.Duration
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runScenario, "scenario", "", "scenario tag applied to opportunity filtering")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 2*time.Minute, "overall run timeout")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	// The pipeline degrades without a database: inventory reports
	// unavailable and the run is not persisted
	db, err := database.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Database unavailable, running without inventory and persistence")
		db = nil
	} else {
		defer db.Close()
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, running without cache")
		redisClient = redis.NewDisabled()
	}
	defer redisClient.Close()

	c := buildComponents(cfg, log, db, redisClient)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	result := c.orchestrator.Run(ctx, brain.RunConfig{Scenario: runScenario})

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
