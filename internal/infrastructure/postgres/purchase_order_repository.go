package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `id, supplier_id, status, total_price, notes, rejection_reason, created_by_user_id,
	approved_by_user_id, approved_at, created_at, updated_at`

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	var status string
	var notes, reason *string
	if err := row.Scan(&po.ID, &po.SupplierID, &status, &po.TotalPrice, &notes, &reason, &po.CreatedByUserID,
		&po.ApprovedByUserID, &po.ApprovedAt, &po.CreatedAt, &po.UpdatedAt); err != nil {
		return nil, err
	}
	po.Status = entity.PurchaseOrderStatus(status)
	po.Notes = stringOrEmpty(notes)
	po.RejectionReason = stringOrEmpty(reason)
	return &po, nil
}

// Create inserta cabecera y líneas; las líneas van en un único batch.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (supplier_id, status, total_price, notes, rejection_reason, created_by_user_id,
			approved_by_user_id, approved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		po.SupplierID, string(po.Status), po.TotalPrice, nullIfEmpty(po.Notes), nullIfEmpty(po.RejectionReason),
		po.CreatedByUserID, po.ApprovedByUserID, po.ApprovedAt, po.CreatedAt, po.UpdatedAt,
	).Scan(&po.ID)
	if err != nil {
		return dbErr("insert purchase order", err)
	}
	return r.insertItems(ctx, po.ID, po.Items)
}

func (r *PurchaseOrderRepo) insertItems(ctx context.Context, poID int64, items []entity.PurchaseOrderItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO purchase_order_items (purchase_order_id, product_id, quantity, unit_price, item_description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(query, poID, it.ProductID, it.Quantity, it.UnitPrice, nullIfEmpty(it.Description))
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for i := range items {
		if err := br.QueryRow().Scan(&items[i].ID); err != nil {
			return dbErr("insert purchase order item", err)
		}
		items[i].PurchaseOrderID = poID
	}
	return nil
}

// GetByID obtiene la orden con sus líneas.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea la cabecera y luego sus líneas en orden de ID.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *PurchaseOrderRepo) get(ctx context.Context, id int64, lock string) (*entity.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx,
		`SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`+lock, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get purchase order", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_order_id, product_id, quantity, unit_price, item_description
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id`+lock, id)
	if err != nil {
		return nil, dbErr("get purchase order items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseOrderItem
		var desc *string
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &desc); err != nil {
			return nil, dbErr("scan purchase order item", err)
		}
		it.Description = stringOrEmpty(desc)
		po.Items = append(po.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("get purchase order items", err)
	}
	return po, nil
}

// List lista cabeceras (sin líneas), más recientes primero.
func (r *PurchaseOrderRepo) List(ctx context.Context, status entity.PurchaseOrderStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+purchaseOrderColumns+` FROM purchase_orders
		WHERE ($1::text = '' OR status = $1::text)
		ORDER BY id DESC LIMIT $2 OFFSET $3`, string(status), limit, offset)
	if err != nil {
		return nil, dbErr("list purchase orders", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, dbErr("scan purchase order", err)
		}
		list = append(list, po)
	}
	return list, rows.Err()
}

// Update persiste los campos de cabecera.
func (r *PurchaseOrderRepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET supplier_id = $2, status = $3, total_price = $4, notes = $5, rejection_reason = $6,
		    approved_by_user_id = $7, approved_at = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.SupplierID, string(po.Status), po.TotalPrice, nullIfEmpty(po.Notes), nullIfEmpty(po.RejectionReason),
		po.ApprovedByUserID, po.ApprovedAt, po.UpdatedAt,
	)
	if err != nil {
		return dbErr("update purchase order", err)
	}
	return nil
}

// ReplaceItems borra las líneas y vuelve a insertarlas. Solo se usa en Draft, sin movimientos asociados.
func (r *PurchaseOrderRepo) ReplaceItems(ctx context.Context, poID int64, items []entity.PurchaseOrderItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_order_items WHERE purchase_order_id = $1`, poID); err != nil {
		return dbErr("delete purchase order items", err)
	}
	return r.insertItems(ctx, poID, items)
}

// UpdateStatus cambia solo el estado.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id int64, status entity.PurchaseOrderStatus, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE purchase_orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), at); err != nil {
		return dbErr("update purchase order status", err)
	}
	return nil
}
