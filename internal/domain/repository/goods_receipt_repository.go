package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// GoodsReceiptRepository define el puerto de persistencia para GoodsReceipt (DIP).
type GoodsReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.GoodsReceipt) error
	GetByID(ctx context.Context, id int64) (*entity.GoodsReceipt, error)
}
