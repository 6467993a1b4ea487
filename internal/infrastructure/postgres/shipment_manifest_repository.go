package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.ShipmentManifestRepository = (*ShipmentManifestRepo)(nil)

// ShipmentManifestRepo implementación de ShipmentManifestRepository (usable con pool o tx).
type ShipmentManifestRepo struct {
	q Querier
}

// NewShipmentManifestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentManifestRepository(q Querier) *ShipmentManifestRepo {
	return &ShipmentManifestRepo{q: q}
}

// Create inserta la cabecera y sus líneas en un batch.
func (r *ShipmentManifestRepo) Create(ctx context.Context, m *entity.ShipmentManifest) error {
	query := `
		INSERT INTO shipment_manifests (purchase_order_id, supplier_id, tracking_number, carrier_name,
			estimated_arrival, status, created_by_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.PurchaseOrderID, m.SupplierID, nullIfEmpty(m.TrackingNumber), nullIfEmpty(m.CarrierName),
		m.EstimatedArrival, m.Status, m.CreatedByUserID, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		return dbErr("insert shipment manifest", err)
	}

	lineQuery := `
		INSERT INTO shipment_manifest_lines (shipment_manifest_id, purchase_order_item_id, line_type, supplier_sku, quantity_declared)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	batch := &pgx.Batch{}
	for _, l := range m.Lines {
		batch.Queue(lineQuery, m.ID, l.PurchaseOrderItemID, string(l.Kind), nullIfEmpty(l.SupplierSKU), l.QuantityDeclared)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for i := range m.Lines {
		if err := br.QueryRow().Scan(&m.Lines[i].ID); err != nil {
			return dbErr("insert shipment manifest line", err)
		}
		m.Lines[i].ShipmentManifestID = m.ID
	}
	return nil
}

func (r *ShipmentManifestRepo) GetByID(ctx context.Context, id int64) (*entity.ShipmentManifest, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea la cabecera del manifiesto.
func (r *ShipmentManifestRepo) GetForUpdate(ctx context.Context, id int64) (*entity.ShipmentManifest, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *ShipmentManifestRepo) get(ctx context.Context, id int64, lock string) (*entity.ShipmentManifest, error) {
	var m entity.ShipmentManifest
	var tracking, carrier *string
	err := r.q.QueryRow(ctx, `
		SELECT id, purchase_order_id, supplier_id, tracking_number, carrier_name, estimated_arrival, status,
		       created_by_user_id, created_at, updated_at
		FROM shipment_manifests WHERE id = $1`+lock, id).Scan(
		&m.ID, &m.PurchaseOrderID, &m.SupplierID, &tracking, &carrier, &m.EstimatedArrival, &m.Status,
		&m.CreatedByUserID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get shipment manifest", err)
	}
	m.TrackingNumber = stringOrEmpty(tracking)
	m.CarrierName = stringOrEmpty(carrier)

	rows, err := r.q.Query(ctx, `
		SELECT id, shipment_manifest_id, purchase_order_item_id, line_type, supplier_sku, quantity_declared
		FROM shipment_manifest_lines WHERE shipment_manifest_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, dbErr("get shipment manifest lines", err)
	}
	defer rows.Close()
	for rows.Next() {
		l, err := scanManifestLine(rows)
		if err != nil {
			return nil, dbErr("scan shipment manifest line", err)
		}
		m.Lines = append(m.Lines, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("get shipment manifest lines", err)
	}
	return &m, nil
}

func scanManifestLine(row pgx.Row) (*entity.ShipmentManifestLine, error) {
	var l entity.ShipmentManifestLine
	var kind string
	var sku *string
	if err := row.Scan(&l.ID, &l.ShipmentManifestID, &l.PurchaseOrderItemID, &kind, &sku, &l.QuantityDeclared); err != nil {
		return nil, err
	}
	l.Kind = entity.ManifestLineKind(kind)
	l.SupplierSKU = stringOrEmpty(sku)
	return &l, nil
}

func (r *ShipmentManifestRepo) GetLine(ctx context.Context, lineID int64) (*entity.ShipmentManifestLine, error) {
	l, err := scanManifestLine(r.q.QueryRow(ctx, `
		SELECT id, shipment_manifest_id, purchase_order_item_id, line_type, supplier_sku, quantity_declared
		FROM shipment_manifest_lines WHERE id = $1`, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get shipment manifest line", err)
	}
	return l, nil
}

func (r *ShipmentManifestRepo) UpdateStatus(ctx context.Context, id int64, status string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE shipment_manifests SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, at); err != nil {
		return dbErr("update shipment manifest status", err)
	}
	return nil
}

// Search filtra por id, nombre de proveedor, guía y rango de creación; más recientes primero.
func (r *ShipmentManifestRepo) Search(ctx context.Context, f entity.ManifestFilter) ([]entity.ManifestSummary, error) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ManifestID != 0 {
		add("m.id = $%d", f.ManifestID)
	}
	if f.SupplierName != "" {
		add("s.name ILIKE '%%' || $%d || '%%'", f.SupplierName)
	}
	if f.TrackingNumber != "" {
		add("m.tracking_number ILIKE '%%' || $%d || '%%'", f.TrackingNumber)
	}
	if f.From != nil {
		add("m.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("m.created_at <= $%d", *f.To)
	}
	query := `
		SELECT m.id, m.purchase_order_id, s.name, m.tracking_number, m.carrier_name, m.estimated_arrival,
		       m.status, (SELECT count(*) FROM shipment_manifest_lines l WHERE l.shipment_manifest_id = m.id), m.created_at
		FROM shipment_manifests m
		JOIN suppliers s ON s.id = m.supplier_id`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf("\n\t\tORDER BY m.id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, dbErr("search shipment manifests", err)
	}
	defer rows.Close()
	var out []entity.ManifestSummary
	for rows.Next() {
		var s entity.ManifestSummary
		var tracking, carrier *string
		if err := rows.Scan(&s.ID, &s.PurchaseOrderID, &s.SupplierName, &tracking, &carrier, &s.EstimatedArrival,
			&s.Status, &s.ItemCount, &s.CreatedAt); err != nil {
			return nil, dbErr("scan shipment manifest", err)
		}
		s.TrackingNumber = stringOrEmpty(tracking)
		s.CarrierName = stringOrEmpty(carrier)
		out = append(out, s)
	}
	return out, rows.Err()
}
