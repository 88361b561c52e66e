// Package jobs holds the concrete scheduled jobs.
package jobs

import (
	"context"
	"fmt"

	"github.com/nvaldez/steelbrain/internal/brain"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// PipelineJob runs the full decision pipeline on a schedule
type PipelineJob struct {
	orchestrator *brain.Orchestrator
	logger       *logger.Logger
}

// NewPipelineJob creates a new pipeline job
func NewPipelineJob(orchestrator *brain.Orchestrator, log *logger.Logger) *PipelineJob {
	return &PipelineJob{
		orchestrator: orchestrator,
		logger:       log,
	}
}

// Name returns the job name
func (j *PipelineJob) Name() string {
	return "pipeline_run"
}

// Schedule runs daily at 6 AM, before the workday starts
func (j *PipelineJob) Schedule() string {
	return "0 0 6 * * *"
}

// Run executes one pipeline run
func (j *PipelineJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled pipeline run")

	result := j.orchestrator.Run(ctx, brain.RunConfig{})

	// Degraded runs still succeed; the degradations are recorded in
	// the result. Only a run where every feed failed is worth a retry.
	if len(result.Degradations) >= 3 && result.Empty() {
		return fmt.Errorf("pipeline run %s: all feeds unavailable", result.RunID)
	}
	if len(result.Degradations) > 0 {
		j.logger.WithField("degradations", len(result.Degradations)).Warn("Pipeline ran degraded")
	}

	return nil
}
