// Package inventory expone consultas de stock sobre los activos serializados.
package inventory

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// StockUseCase resume el stock por producto, zona y estado.
type StockUseCase struct {
	stock    repository.StockRepository
	products repository.ProductRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(stock repository.StockRepository, products repository.ProductRepository) *StockUseCase {
	return &StockUseCase{stock: stock, products: products}
}

// ProductStock devuelve el stock de un producto. Un producto sin activos tiene stock cero.
func (uc *StockUseCase) ProductStock(ctx context.Context, productID int64) (*dto.ProductStockResponse, error) {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("producto", productID)
	}
	levels, err := uc.stock.Levels(ctx, productID)
	if err != nil {
		return nil, err
	}
	return summarize(p, levels), nil
}

// Summary devuelve el stock de todos los productos que tienen activos.
func (uc *StockUseCase) Summary(ctx context.Context) ([]dto.ProductStockResponse, error) {
	levels, err := uc.stock.Levels(ctx, 0)
	if err != nil {
		return nil, err
	}
	// Levels viene ordenado por producto.
	out := []dto.ProductStockResponse{}
	for start := 0; start < len(levels); {
		end := start
		for end < len(levels) && levels[end].ProductID == levels[start].ProductID {
			end++
		}
		p, err := uc.products.GetByID(ctx, levels[start].ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, &domain.DataIntegrityError{Message: "activos de un producto inexistente"}
		}
		out = append(out, *summarize(p, levels[start:end]))
		start = end
	}
	return out, nil
}

func summarize(p *entity.Product, levels []entity.StockLevel) *dto.ProductStockResponse {
	res := &dto.ProductStockResponse{
		ProductID: p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		ByStatus:  map[string]int{},
		Levels:    make([]dto.StockLevelResponse, 0, len(levels)),
	}
	for _, l := range levels {
		res.Levels = append(res.Levels, dto.StockLevelResponse{ZoneID: l.ZoneID, Status: string(l.Status), Quantity: l.Quantity})
		res.ByStatus[string(l.Status)] += l.Quantity
		res.Total += l.Quantity
		switch l.Status {
		case entity.AssetStatusAvailable, entity.AssetStatusAwaitingQC:
			res.OnHand += l.Quantity
		case entity.AssetStatusInTransit:
			res.InTransit += l.Quantity
		}
	}
	return res
}
