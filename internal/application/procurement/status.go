package procurement

import (
	"context"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/inventory"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// refreshPurchaseOrderStatus recalcula el estado de la orden con el total ordenado frente al total
// aceptado de todas sus líneas. Solo escribe si el estado cambia.
func refreshPurchaseOrderStatus(ctx context.Context, r TxRepos, po *entity.PurchaseOrder, now time.Time, log *logger.Logger) error {
	stats, err := lineStats(ctx, r.StockMoves, po, nil)
	if err != nil {
		return err
	}
	ordered, accepted := inventory.Totals(stats)
	next := entity.ReceiptStatus(po.Status, ordered, accepted)
	if next == po.Status {
		return nil
	}
	if !po.Status.CanTransitionTo(next) {
		return domain.NewIntegrity("orden %d: transición %q -> %q no permitida", po.ID, po.Status, next)
	}
	if err := r.PurchaseOrders.UpdateStatus(ctx, po.ID, next, now); err != nil {
		return err
	}
	log.Info().
		Int64("purchase_order_id", po.ID).
		Str("from", string(po.Status)).
		Str("to", string(next)).
		Int("ordered", ordered).
		Int("accepted", accepted).
		Msg("estado de orden de compra actualizado")
	po.Status = next
	po.UpdatedAt = now
	return nil
}
