package postgres

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Levels cuenta activos por producto, zona y estado.
func (r *StockRepo) Levels(ctx context.Context, productID int64) ([]entity.StockLevel, error) {
	query := `
		SELECT product_id, zone_id, status, count(*)
		FROM assets
		WHERE ($1 = 0 OR product_id = $1)
		GROUP BY product_id, zone_id, status
		ORDER BY product_id, zone_id NULLS FIRST, status`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, dbErr("stock levels", err)
	}
	defer rows.Close()
	var out []entity.StockLevel
	for rows.Next() {
		var l entity.StockLevel
		if err := rows.Scan(&l.ProductID, &l.ZoneID, &l.Status, &l.Quantity); err != nil {
			return nil, dbErr("scan stock level", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
