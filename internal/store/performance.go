package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// PerformanceRepository reads historical supplier delivery performance.
// Implements contracts.PerformanceProvider.
type PerformanceRepository struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewPerformanceRepository creates a new performance repository
func NewPerformanceRepository(pool *pgxpool.Pool, log *logger.Logger) *PerformanceRepository {
	return &PerformanceRepository{pool: pool, logger: log}
}

// SupplierPerformance aggregates delay and fulfillment per supplier
// over completed purchase orders
func (r *PerformanceRepository) SupplierPerformance(ctx context.Context) contracts.Feed[[]contracts.SupplierPerformance] {
	query := `
		SELECT supplier,
		       AVG(GREATEST(actual_days - promised_days, 0)) AS avg_delay_days,
		       AVG(CASE WHEN fulfilled THEN 100.0 ELSE 0.0 END) AS fulfillment_rate
		FROM procurement.order_history
		GROUP BY supplier
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.WithError(err).Warn("Supplier performance query failed")
		return contracts.Unavailable[[]contracts.SupplierPerformance]("performance query: " + err.Error())
	}
	defer rows.Close()

	var records []contracts.SupplierPerformance
	for rows.Next() {
		var p contracts.SupplierPerformance
		if err := rows.Scan(&p.Supplier, &p.AvgDelayDays, &p.FulfillmentRate); err != nil {
			return contracts.Unavailable[[]contracts.SupplierPerformance]("performance scan: " + err.Error())
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return contracts.Unavailable[[]contracts.SupplierPerformance]("performance rows: " + err.Error())
	}

	return contracts.Available(records)
}
