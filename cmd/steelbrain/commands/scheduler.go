package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nvaldez/steelbrain/internal/scheduler"
	"github.com/nvaldez/steelbrain/internal/scheduler/jobs"
	"github.com/nvaldez/steelbrain/pkg/config"
	"github.com/nvaldez/steelbrain/pkg/database"
	"github.com/nvaldez/steelbrain/pkg/logger"
	"github.com/nvaldez/steelbrain/pkg/redis"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Start the job scheduler",
	Long: `Starts the recurring jobs:

  pipeline_run        - full pipeline run, daily at 6 AM
  inventory_snapshot  - stock history sample, daily at midnight

Example:
  go run ./cmd/steelbrain scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	// The snapshot job needs the database; the scheduler is pointless
	// without it
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, scheduling without cache")
		redisClient = redis.NewDisabled()
	}
	defer redisClient.Close()

	c := buildComponents(cfg, log, db, redisClient)

	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewPipelineJob(c.orchestrator, log)); err != nil {
		return fmt.Errorf("add pipeline job: %w", err)
	}
	if err := sched.AddJob(jobs.NewSnapshotJob(c.inventory, log)); err != nil {
		return fmt.Errorf("add snapshot job: %w", err)
	}

	sched.Start()
	log.WithField("jobs", sched.GetAllJobs()).Info("Scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
