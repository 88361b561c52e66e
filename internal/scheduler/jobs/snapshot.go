package jobs

import (
	"context"
	"fmt"

	"github.com/nvaldez/steelbrain/internal/store"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// SnapshotJob records one stock-history sample per product each night.
// Demand estimation needs these deltas; without them every estimate
// falls back to the static table.
type SnapshotJob struct {
	inventory *store.InventoryRepository
	logger    *logger.Logger
}

// NewSnapshotJob creates a new inventory snapshot job
func NewSnapshotJob(inventory *store.InventoryRepository, log *logger.Logger) *SnapshotJob {
	return &SnapshotJob{
		inventory: inventory,
		logger:    log,
	}
}

// Name returns the job name
func (j *SnapshotJob) Name() string {
	return "inventory_snapshot"
}

// Schedule runs daily at midnight
func (j *SnapshotJob) Schedule() string {
	return "0 0 0 * * *"
}

// Run captures the snapshot
func (j *SnapshotJob) Run(ctx context.Context) error {
	count, err := j.inventory.SaveSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("save inventory snapshot: %w", err)
	}

	j.logger.WithField("products", count).Info("Inventory snapshot recorded")
	return nil
}
