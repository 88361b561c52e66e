// Package brain coordinates the four-phase decision pipeline.
package brain

import (
	"context"
	"time"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/internal/p1_detect"
	"github.com/nvaldez/steelbrain/internal/p2_risk"
	"github.com/nvaldez/steelbrain/internal/p3_supply"
	"github.com/nvaldez/steelbrain/internal/p4_routes"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// Orchestrator runs the pipeline P1 → P2 → P3 → P4, strictly
// sequential, each phase consuming the previous phase's output.
// Missing data never aborts a run: phases degrade to empty output and
// the degradations are carried in the result.
type Orchestrator struct {
	detector *p1_detect.Detector
	gate     *p2_risk.Gate
	selector *p3_supply.Selector
	router   *p4_routes.Router

	// sink persists results; optional, write failures are logged only
	sink contracts.DecisionSink

	logger *logger.Logger
}

// RunConfig holds configuration for one pipeline run
type RunConfig struct {
	RunID    string
	Scenario string
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(
	detector *p1_detect.Detector,
	gate *p2_risk.Gate,
	selector *p3_supply.Selector,
	router *p4_routes.Router,
	sink contracts.DecisionSink,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		detector: detector,
		gate:     gate,
		selector: selector,
		router:   router,
		sink:     sink,
		logger:   log,
	}
}

// NewRunID derives a run identifier from the wall clock
func NewRunID(now time.Time) string {
	return "run_" + now.Format("20060102_150405")
}

// Run executes the complete pipeline. It never returns an error for
// missing or empty data; an empty stage output short-circuits the
// later stages to empty output.
func (o *Orchestrator) Run(ctx context.Context, config RunConfig) *contracts.PipelineResult {
	startedAt := time.Now()
	if config.RunID == "" {
		config.RunID = NewRunID(startedAt)
	}

	result := &contracts.PipelineResult{
		RunID:           config.RunID,
		Scenario:        config.Scenario,
		StartedAt:       startedAt,
		CompletedStages: make([]string, 0, 4),
	}

	o.logger.WithFields(map[string]interface{}{
		"run_id":   config.RunID,
		"scenario": config.Scenario,
	}).Info("Starting pipeline run")

	// P1: Opportunity Detection
	detection, degradations := o.detector.Detect(ctx, config.Scenario)
	result.Detection = detection
	result.Degradations = append(result.Degradations, degradations...)
	result.CompletedStages = append(result.CompletedStages, "P1:Detection")

	// P2: Risk Gate. Runs regardless of P1 output: the risk picture is
	// valid intelligence even with nothing to buy.
	gate, degradations := o.gate.Check(ctx)
	result.Gate = gate
	result.Degradations = append(result.Degradations, degradations...)
	result.CompletedStages = append(result.CompletedStages, "P2:RiskGate")

	// P3: Supplier Selection
	if len(detection.CriticalProducts) > 0 {
		result.Decisions = o.selector.Select(ctx, detection.CriticalProducts)
		result.CompletedStages = append(result.CompletedStages, "P3:Suppliers")
	} else {
		result.Decisions = []contracts.PurchaseDecision{}
		o.logger.Info("No critical products, skipping P3")
	}

	// P4: Logistics Routing
	if len(result.Decisions) > 0 {
		result.Routes = o.router.Route(ctx, result.Decisions)
		result.CompletedStages = append(result.CompletedStages, "P4:Routes")
	} else {
		result.Routes = []contracts.DeliveryRoute{}
		o.logger.Info("No purchase decisions, skipping P4")
	}

	result.Duration = time.Since(startedAt)

	o.save(ctx, result)

	o.logger.WithFields(map[string]interface{}{
		"run_id":       config.RunID,
		"duration":     result.Duration.Seconds(),
		"stages":       len(result.CompletedStages),
		"degradations": len(result.Degradations),
		"critical":     len(detection.CriticalProducts),
		"decisions":    len(result.Decisions),
		"routes":       len(result.Routes),
	}).Info("Pipeline run completed")

	return result
}

// save persists the result when a sink is configured. Failures are
// logged, never propagated: persistence must not block decisions.
func (o *Orchestrator) save(ctx context.Context, result *contracts.PipelineResult) {
	if o.sink == nil {
		return
	}
	if err := o.sink.SaveResult(ctx, result); err != nil {
		o.logger.WithError(err).WithField("run_id", result.RunID).Warn("Failed to persist pipeline result")
	}
}
