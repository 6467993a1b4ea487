package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

// AssetRepo implementación de AssetRepository (usable con pool o tx).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

const assetColumns = `id, serial_number, product_id, purchase_order_item_id, shipment_manifest_line_id,
	goods_receipt_id, zone_id, status, last_movement_date, created_at`

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var a entity.Asset
	var status string
	if err := row.Scan(&a.ID, &a.SerialNumber, &a.ProductID, &a.PurchaseOrderItemID, &a.ShipmentManifestLineID,
		&a.GoodsReceiptID, &a.ZoneID, &status, &a.LastMovementDate, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Status = entity.AssetStatus(status)
	return &a, nil
}

func (r *AssetRepo) list(ctx context.Context, op, where string, args ...any) ([]*entity.Asset, error) {
	rows, err := r.q.Query(ctx, `SELECT `+assetColumns+` FROM assets `+where, args...)
	if err != nil {
		return nil, dbErr(op, err)
	}
	defer rows.Close()
	var out []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, dbErr(op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr(op, err)
	}
	return out, nil
}

// CreateBatch inserta los activos en un único pgx.Batch y asigna los IDs.
func (r *AssetRepo) CreateBatch(ctx context.Context, assets []*entity.Asset) error {
	if len(assets) == 0 {
		return nil
	}
	query := `
		INSERT INTO assets (serial_number, product_id, purchase_order_item_id, shipment_manifest_line_id,
			goods_receipt_id, zone_id, status, last_movement_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	batch := &pgx.Batch{}
	for _, a := range assets {
		batch.Queue(query, a.SerialNumber, a.ProductID, a.PurchaseOrderItemID, a.ShipmentManifestLineID,
			a.GoodsReceiptID, a.ZoneID, string(a.Status), a.LastMovementDate, a.CreatedAt)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for _, a := range assets {
		if err := br.QueryRow().Scan(&a.ID); err != nil {
			return dbErr("insert asset", err)
		}
	}
	return nil
}

func (r *AssetRepo) ExistingSerials(ctx context.Context, serials []string) ([]string, error) {
	if len(serials) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT serial_number FROM assets WHERE serial_number = ANY($1) ORDER BY serial_number`, serials)
	if err != nil {
		return nil, dbErr("existing serials", err)
	}
	defer rows.Close()
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dbErr("existing serials", err)
	}
	return out, nil
}

// GetForUpdate bloquea los activos en orden de ID.
func (r *AssetRepo) GetForUpdate(ctx context.Context, ids []int64) ([]*entity.Asset, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, "lock assets", `WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
}

func (r *AssetRepo) ListByManifestLine(ctx context.Context, lineID int64) ([]*entity.Asset, error) {
	return r.list(ctx, "list assets by manifest line", `WHERE shipment_manifest_line_id = $1 ORDER BY id`, lineID)
}

func (r *AssetRepo) ListByReceipt(ctx context.Context, receiptID int64) ([]*entity.Asset, error) {
	return r.list(ctx, "list assets by receipt", `WHERE goods_receipt_id = $1 ORDER BY id`, receiptID)
}

func (r *AssetRepo) CountByManifestAndStatus(ctx context.Context, manifestID int64, status entity.AssetStatus) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT count(*)
		FROM assets a
		JOIN shipment_manifest_lines l ON l.id = a.shipment_manifest_line_id
		WHERE l.shipment_manifest_id = $1 AND a.status = $2`, manifestID, string(status)).Scan(&n)
	if err != nil {
		return 0, dbErr("count manifest assets", err)
	}
	return n, nil
}

// ApplyReceipt actualiza los activos recibidos en un batch y suma las filas afectadas.
func (r *AssetRepo) ApplyReceipt(ctx context.Context, updates []entity.AssetReceiptUpdate) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	query := `
		UPDATE assets
		SET status = $2, zone_id = $3, goods_receipt_id = $4, last_movement_date = $5
		WHERE id = $1`
	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(query, u.AssetID, string(u.Status), u.ZoneID, u.GoodsReceiptID, u.MovedAt)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	var n int64
	for range updates {
		tag, err := br.Exec()
		if err != nil {
			return n, dbErr("update asset", err)
		}
		n += tag.RowsAffected()
	}
	return n, nil
}
