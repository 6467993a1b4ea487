package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// StockMoveRepository define el puerto del ledger (solo inserción y lectura).
type StockMoveRepository interface {
	// CreateBatch inserta los movimientos y asigna los IDs generados.
	CreateBatch(ctx context.Context, moves []*entity.StockMove) error
	// LinkAssets inserta las asociaciones activo-movimiento; devuelve filas insertadas.
	LinkAssets(ctx context.Context, links []entity.AssetStockMove) (int64, error)
	ListByItems(ctx context.Context, itemIDs []int64) ([]entity.StockMove, error)
	ListByReceipt(ctx context.Context, receiptID int64) ([]entity.StockMove, error)
}
