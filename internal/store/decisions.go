package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// DecisionRepository persists whole pipeline results as JSON documents
// keyed by run ID. Implements contracts.DecisionSink.
type DecisionRepository struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewDecisionRepository creates a new decision repository
func NewDecisionRepository(pool *pgxpool.Pool, log *logger.Logger) *DecisionRepository {
	return &DecisionRepository{pool: pool, logger: log}
}

// SaveResult stores one pipeline run
func (r *DecisionRepository) SaveResult(ctx context.Context, result *contracts.PipelineResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	query := `
		INSERT INTO pipeline.runs (run_id, scenario, started_at, duration_ms, decisions, routes, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (run_id) DO UPDATE SET
			result = EXCLUDED.result,
			duration_ms = EXCLUDED.duration_ms
	`

	_, err = r.pool.Exec(ctx, query,
		result.RunID,
		result.Scenario,
		result.StartedAt,
		result.Duration.Milliseconds(),
		len(result.Decisions),
		len(result.Routes),
		payload,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", result.RunID, err)
	}

	r.logger.WithField("run_id", result.RunID).Debug("Pipeline result persisted")
	return nil
}

// GetLatest returns the most recent persisted run, or nil when none
// exists yet
func (r *DecisionRepository) GetLatest(ctx context.Context) (*contracts.PipelineResult, error) {
	query := `
		SELECT result
		FROM pipeline.runs
		ORDER BY started_at DESC
		LIMIT 1
	`

	var payload []byte
	err := r.pool.QueryRow(ctx, query).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}

	var result contracts.PipelineResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("unmarshal run: %w", err)
	}
	return &result, nil
}

// GetByRunID returns one persisted run, or nil when not found
func (r *DecisionRepository) GetByRunID(ctx context.Context, runID string) (*contracts.PipelineResult, error) {
	query := `
		SELECT result
		FROM pipeline.runs
		WHERE run_id = $1
	`

	var payload []byte
	err := r.pool.QueryRow(ctx, query, runID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", runID, err)
	}

	var result contracts.PipelineResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("unmarshal run: %w", err)
	}
	return &result, nil
}

// ListRuns returns run summaries, newest first
func (r *DecisionRepository) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT run_id, scenario, started_at, duration_ms, decisions, routes
		FROM pipeline.runs
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.RunID, &s.Scenario, &s.StartedAt, &s.DurationMS, &s.Decisions, &s.Routes); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
