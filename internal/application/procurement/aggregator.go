package procurement

import (
	"context"
	"sort"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// QuantityAggregator calcula el desglose de cantidades por línea de orden reproduciendo el ledger.
// Es de solo lectura.
type QuantityAggregator struct {
	poRepo   repository.PurchaseOrderRepository
	moveRepo repository.StockMoveRepository
}

// NewQuantityAggregator construye el agregador.
func NewQuantityAggregator(poRepo repository.PurchaseOrderRepository, moveRepo repository.StockMoveRepository) *QuantityAggregator {
	return &QuantityAggregator{poRepo: poRepo, moveRepo: moveRepo}
}

// ComputeLineStats devuelve el desglose de las líneas pedidas (todas si lineIDs está vacío).
func (a *QuantityAggregator) ComputeLineStats(ctx context.Context, poID int64, lineIDs []int64) (map[int64]inventory.LineStats, error) {
	po, err := a.poRepo.GetByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.NewNotFound("orden de compra", poID)
	}
	return lineStats(ctx, a.moveRepo, po, lineIDs)
}

// LineStats versión DTO de ComputeLineStats, ordenada por línea.
func (a *QuantityAggregator) LineStats(ctx context.Context, poID int64, lineIDs []int64) ([]dto.LineStatsResponse, error) {
	stats, err := a.ComputeLineStats(ctx, poID, lineIDs)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LineStatsResponse, 0, len(stats))
	for id, s := range stats {
		out = append(out, dto.LineStatsResponse{
			LineID:     id,
			Ordered:    s.Ordered,
			Available:  s.Available,
			InTransit:  s.InTransit,
			AwaitingQC: s.AwaitingQC,
			Rejected:   s.Rejected,
			Quarantine: s.Quarantine,
			Shipped:    s.Shipped,
			Received:   s.Accepted,
			Remaining:  s.Remaining,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LineID < out[j].LineID })
	return out, nil
}

// lineStats pliega el ledger de las líneas de po. Se usa tanto fuera como dentro de una transacción.
func lineStats(ctx context.Context, moves repository.StockMoveRepository, po *entity.PurchaseOrder, lineIDs []int64) (map[int64]inventory.LineStats, error) {
	ordered := make(map[int64]int, len(po.Items))
	if len(lineIDs) == 0 {
		for _, it := range po.Items {
			ordered[it.ID] = it.Quantity
		}
	} else {
		var unknown []int64
		for _, id := range lineIDs {
			it, ok := po.Item(id)
			if !ok {
				unknown = append(unknown, id)
				continue
			}
			ordered[id] = it.Quantity
		}
		if len(unknown) > 0 {
			return nil, domain.NewNotFound("línea de orden", unknown...)
		}
	}
	ids := make([]int64, 0, len(ordered))
	for id := range ordered {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	mv, err := moves.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	return inventory.ReplayLedger(ordered, mv), nil
}
