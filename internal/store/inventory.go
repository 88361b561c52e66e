// Package store holds the pgx repositories backing the pipeline's
// feeds: inventory and stock history, supplier performance and
// persisted pipeline results.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// InventoryRepository reads stock levels and history from the ERP
// mirror tables. Implements contracts.InventoryProvider and
// contracts.HistoryProvider.
type InventoryRepository struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(pool *pgxpool.Pool, log *logger.Logger) *InventoryRepository {
	return &InventoryRepository{pool: pool, logger: log}
}

// Products returns current stock levels for all tracked products
func (r *InventoryRepository) Products(ctx context.Context) contracts.Feed[[]contracts.Product] {
	query := `
		SELECT id, name, category, current_stock, minimum_stock
		FROM inventory.products
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.WithError(err).Warn("Inventory query failed")
		return contracts.Unavailable[[]contracts.Product]("inventory query: " + err.Error())
	}
	defer rows.Close()

	var products []contracts.Product
	for rows.Next() {
		var p contracts.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.CurrentStock, &p.MinimumStock); err != nil {
			return contracts.Unavailable[[]contracts.Product]("inventory scan: " + err.Error())
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return contracts.Unavailable[[]contracts.Product]("inventory rows: " + err.Error())
	}

	return contracts.Available(products)
}

// StockHistory returns historical stock readings for a product within
// the window, oldest first
func (r *InventoryRepository) StockHistory(ctx context.Context, product string, windowDays int) contracts.Feed[[]contracts.InventorySample] {
	query := `
		SELECT s.recorded_at, s.stock
		FROM inventory.stock_snapshots s
		JOIN inventory.products p ON p.id = s.product_id
		WHERE p.name = $1 AND s.recorded_at >= $2
		ORDER BY s.recorded_at ASC
	`

	since := time.Now().AddDate(0, 0, -windowDays)
	rows, err := r.pool.Query(ctx, query, product, since)
	if err != nil {
		r.logger.WithError(err).Warn("Stock history query failed")
		return contracts.Unavailable[[]contracts.InventorySample]("history query: " + err.Error())
	}
	defer rows.Close()

	var samples []contracts.InventorySample
	for rows.Next() {
		var s contracts.InventorySample
		if err := rows.Scan(&s.Date, &s.Stock); err != nil {
			return contracts.Unavailable[[]contracts.InventorySample]("history scan: " + err.Error())
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return contracts.Unavailable[[]contracts.InventorySample]("history rows: " + err.Error())
	}

	return contracts.Available(samples)
}

// SaveSnapshot records the current stock of every product as one
// history sample. The scheduler calls this daily so demand estimation
// has deltas to work from.
func (r *InventoryRepository) SaveSnapshot(ctx context.Context) (int, error) {
	query := `
		INSERT INTO inventory.stock_snapshots (product_id, recorded_at, stock)
		SELECT id, NOW(), current_stock FROM inventory.products
	`

	tag, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
