package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para PurchaseOrder y sus líneas (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si la orden no existe.
type PurchaseOrderRepository interface {
	// Create inserta cabecera y líneas; asigna los IDs generados.
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera y sus líneas (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	// List lista cabeceras (sin líneas); status vacío no filtra.
	List(ctx context.Context, status entity.PurchaseOrderStatus, limit, offset int) ([]*entity.PurchaseOrder, error)
	// Update persiste los campos de cabecera.
	Update(ctx context.Context, po *entity.PurchaseOrder) error
	// ReplaceItems borra las líneas existentes e inserta items; asigna los IDs generados.
	ReplaceItems(ctx context.Context, poID int64, items []entity.PurchaseOrderItem) error
	UpdateStatus(ctx context.Context, id int64, status entity.PurchaseOrderStatus, at time.Time) error
}
