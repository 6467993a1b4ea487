package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepo)(nil)

// GoodsReceiptRepo implementación de GoodsReceiptRepository (usable con pool o tx).
type GoodsReceiptRepo struct {
	q Querier
}

func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

// Create inserta la recepción. Un número de recibo repetido devuelve ErrDuplicate.
func (r *GoodsReceiptRepo) Create(ctx context.Context, g *entity.GoodsReceipt) error {
	query := `
		INSERT INTO goods_receipts (receipt_number, purchase_order_id, shipment_manifest_id, received_by_user_id, received_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query,
		g.ReceiptNumber, g.PurchaseOrderID, g.ShipmentManifestID, g.ReceivedByUserID, g.ReceivedAt, nullIfEmpty(g.Notes),
	).Scan(&g.ID); err != nil {
		return dbErr("insert goods receipt", err)
	}
	return nil
}

func (r *GoodsReceiptRepo) GetByID(ctx context.Context, id int64) (*entity.GoodsReceipt, error) {
	var g entity.GoodsReceipt
	var notes *string
	err := r.q.QueryRow(ctx, `
		SELECT id, receipt_number, purchase_order_id, shipment_manifest_id, received_by_user_id, received_at, notes
		FROM goods_receipts WHERE id = $1`, id).Scan(
		&g.ID, &g.ReceiptNumber, &g.PurchaseOrderID, &g.ShipmentManifestID, &g.ReceivedByUserID, &g.ReceivedAt, &notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get goods receipt", err)
	}
	g.Notes = stringOrEmpty(notes)
	return &g, nil
}
