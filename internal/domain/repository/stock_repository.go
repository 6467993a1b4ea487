package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// StockRepository consulta el stock derivado de los activos serializados.
type StockRepository interface {
	// Levels agrupa activos por producto, zona y estado. productID 0 = todos los productos.
	Levels(ctx context.Context, productID int64) ([]entity.StockLevel, error)
}
