package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.StockMoveRepository = (*StockMoveRepo)(nil)

// StockMoveRepo ledger de movimientos (solo inserción y lectura).
type StockMoveRepo struct {
	q Querier
}

// NewStockMoveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMoveRepository(q Querier) *StockMoveRepo {
	return &StockMoveRepo{q: q}
}

// CreateBatch inserta los movimientos y asigna los IDs.
func (r *StockMoveRepo) CreateBatch(ctx context.Context, moves []*entity.StockMove) error {
	if len(moves) == 0 {
		return nil
	}
	query := `
		INSERT INTO stock_moves (purchase_order_item_id, source_location_id, destination_location_id, quantity,
			goods_receipt_id, shipment_manifest_id, created_by_user_id, moved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	batch := &pgx.Batch{}
	for _, mv := range moves {
		src, err := locationID(mv.Source)
		if err != nil {
			return err
		}
		dst, err := locationID(mv.Destination)
		if err != nil {
			return err
		}
		batch.Queue(query, mv.PurchaseOrderItemID, src, dst, mv.Quantity,
			mv.GoodsReceiptID, mv.ShipmentManifestID, mv.CreatedByUserID, mv.MovedAt)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for _, mv := range moves {
		if err := br.QueryRow().Scan(&mv.ID); err != nil {
			return dbErr("insert stock move", err)
		}
	}
	return nil
}

// LinkAssets inserta las asociaciones activo-movimiento con COPY.
func (r *StockMoveRepo) LinkAssets(ctx context.Context, links []entity.AssetStockMove) (int64, error) {
	if len(links) == 0 {
		return 0, nil
	}
	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"asset_stock_moves"},
		[]string{"asset_id", "stock_move_id"},
		pgx.CopyFromSlice(len(links), func(i int) ([]any, error) {
			return []any{links[i].AssetID, links[i].StockMoveID}, nil
		}),
	)
	if err != nil {
		return n, dbErr("link assets to stock moves", err)
	}
	return n, nil
}

func (r *StockMoveRepo) ListByItems(ctx context.Context, itemIDs []int64) ([]entity.StockMove, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, "list stock moves by items", `WHERE purchase_order_item_id = ANY($1) ORDER BY id`, itemIDs)
}

func (r *StockMoveRepo) ListByReceipt(ctx context.Context, receiptID int64) ([]entity.StockMove, error) {
	return r.list(ctx, "list stock moves by receipt", `WHERE goods_receipt_id = $1 ORDER BY id`, receiptID)
}

func (r *StockMoveRepo) list(ctx context.Context, op, where string, args ...any) ([]entity.StockMove, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_order_item_id, source_location_id, destination_location_id, quantity,
		       goods_receipt_id, shipment_manifest_id, created_by_user_id, moved_at
		FROM stock_moves `+where, args...)
	if err != nil {
		return nil, dbErr(op, err)
	}
	defer rows.Close()
	var out []entity.StockMove
	for rows.Next() {
		var mv entity.StockMove
		var src, dst int
		if err := rows.Scan(&mv.ID, &mv.PurchaseOrderItemID, &src, &dst, &mv.Quantity,
			&mv.GoodsReceiptID, &mv.ShipmentManifestID, &mv.CreatedByUserID, &mv.MovedAt); err != nil {
			return nil, dbErr(op, err)
		}
		if mv.Source, err = locationFromID(src); err != nil {
			return nil, err
		}
		if mv.Destination, err = locationFromID(dst); err != nil {
			return nil, err
		}
		out = append(out, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr(op, err)
	}
	return out, nil
}
