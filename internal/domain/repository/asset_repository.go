package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// AssetRepository define el puerto de persistencia para Asset (DIP).
type AssetRepository interface {
	// CreateBatch inserta los activos y asigna los IDs generados.
	CreateBatch(ctx context.Context, assets []*entity.Asset) error
	// ExistingSerials devuelve los seriales de la lista que ya están registrados.
	ExistingSerials(ctx context.Context, serials []string) ([]string, error)
	// GetForUpdate bloquea los activos indicados; los IDs inexistentes simplemente no aparecen.
	GetForUpdate(ctx context.Context, ids []int64) ([]*entity.Asset, error)
	ListByManifestLine(ctx context.Context, lineID int64) ([]*entity.Asset, error)
	ListByReceipt(ctx context.Context, receiptID int64) ([]*entity.Asset, error)
	CountByManifestAndStatus(ctx context.Context, manifestID int64, status entity.AssetStatus) (int, error)
	// ApplyReceipt actualiza estado, zona, recibo y fecha de movimiento; devuelve filas afectadas.
	ApplyReceipt(ctx context.Context, updates []entity.AssetReceiptUpdate) (int64, error)
}
