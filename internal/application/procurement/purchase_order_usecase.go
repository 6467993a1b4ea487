package procurement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// PurchaseOrderUseCase ciclo de vida de la orden de compra: borrador, aprobación y emisión.
type PurchaseOrderUseCase struct {
	tx        TxRunner
	orders    repository.PurchaseOrderRepository
	suppliers repository.SupplierRepository
	products  repository.ProductRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	tx TxRunner,
	orders repository.PurchaseOrderRepository,
	suppliers repository.SupplierRepository,
	products repository.ProductRepository,
	log *logger.Logger,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		tx: tx, orders: orders, suppliers: suppliers, products: products,
		log: log.Named("purchase_order"), now: time.Now,
	}
}

// Create registra una orden en Draft (o Pending si Submit=true).
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, userID int64, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	var violations []domain.Violation
	if err := uc.checkSupplier(ctx, in.SupplierID, &violations); err != nil {
		return nil, err
	}
	items, err := uc.buildItems(ctx, in.Items, &violations)
	if err != nil {
		return nil, err
	}
	if in.Submit && len(in.Items) == 0 {
		violations = append(violations, domain.Violation{Code: domain.ViolationRequired, Field: "items",
			Message: "una orden enviada a aprobación requiere al menos una línea"})
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}

	now := uc.now()
	po := &entity.PurchaseOrder{
		SupplierID:      in.SupplierID,
		Status:          entity.POStatusDraft,
		Notes:           strings.TrimSpace(in.Notes),
		CreatedByUserID: userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := po.ReplaceItems(items, now); err != nil {
		return nil, err
	}
	if in.Submit {
		if err := po.Submit(now); err != nil {
			return nil, err
		}
	}
	if err := uc.tx.Run(ctx, func(r TxRepos) error {
		return r.PurchaseOrders.Create(ctx, po)
	}); err != nil {
		return nil, err
	}
	uc.log.Info().
		Int64("purchase_order_id", po.ID).
		Int64("supplier_id", po.SupplierID).
		Str("status", string(po.Status)).
		Int("items", len(po.Items)).
		Msg("orden de compra creada")
	return toPurchaseOrderResponse(po), nil
}

// Get devuelve la orden con sus líneas.
func (uc *PurchaseOrderUseCase) Get(ctx context.Context, id int64) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.NewNotFound("orden de compra", id)
	}
	return toPurchaseOrderResponse(po), nil
}

// List lista cabeceras, opcionalmente filtradas por estado.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, status string, page dto.PageRequest) ([]dto.PurchaseOrderResponse, error) {
	page.DefaultPage()
	st := entity.PurchaseOrderStatus(status)
	if status != "" && !st.IsValid() {
		return nil, &domain.ValidationError{Violations: []domain.Violation{{
			Code: domain.ViolationInvalidValue, Field: "status", Value: status,
			Message: fmt.Sprintf("estado %q desconocido", status),
		}}}
	}
	list, err := uc.orders.List(ctx, st, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, *toPurchaseOrderResponse(po))
	}
	return out, nil
}

// UpdateHeader aplica una actualización parcial de cabecera (solo Draft).
func (uc *PurchaseOrderUseCase) UpdateHeader(ctx context.Context, id int64, in dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.SupplierID != nil {
		var violations []domain.Violation
		if err := uc.checkSupplier(ctx, *in.SupplierID, &violations); err != nil {
			return nil, err
		}
		if len(violations) > 0 {
			return nil, &domain.ValidationError{Violations: violations}
		}
	}
	return uc.mutate(ctx, id, "cabecera actualizada", func(r TxRepos, po *entity.PurchaseOrder, now time.Time) error {
		if in.Notes != nil {
			notes := strings.TrimSpace(*in.Notes)
			in.Notes = &notes
		}
		if err := po.ApplyPatch(entity.PurchaseOrderPatch{SupplierID: in.SupplierID, Notes: in.Notes}, now); err != nil {
			return err
		}
		return r.PurchaseOrders.Update(ctx, po)
	})
}

// ReplaceItems reemplaza todas las líneas de una orden en Draft y recalcula el total.
func (uc *PurchaseOrderUseCase) ReplaceItems(ctx context.Context, id int64, in dto.ReplaceItemsRequest) (*dto.PurchaseOrderResponse, error) {
	var violations []domain.Violation
	items, err := uc.buildItems(ctx, in.Items, &violations)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}
	return uc.mutate(ctx, id, "líneas reemplazadas", func(r TxRepos, po *entity.PurchaseOrder, now time.Time) error {
		for i := range items {
			items[i].PurchaseOrderID = po.ID
		}
		if err := po.ReplaceItems(items, now); err != nil {
			return err
		}
		if err := r.PurchaseOrders.ReplaceItems(ctx, po.ID, po.Items); err != nil {
			return err
		}
		return r.PurchaseOrders.Update(ctx, po)
	})
}

// Submit envía la orden a aprobación.
func (uc *PurchaseOrderUseCase) Submit(ctx context.Context, id int64) (*dto.PurchaseOrderResponse, error) {
	return uc.mutate(ctx, id, "orden enviada a aprobación", func(r TxRepos, po *entity.PurchaseOrder, now time.Time) error {
		if err := po.Submit(now); err != nil {
			return err
		}
		return r.PurchaseOrders.Update(ctx, po)
	})
}

// Approve emite la orden.
func (uc *PurchaseOrderUseCase) Approve(ctx context.Context, id, userID int64) (*dto.PurchaseOrderResponse, error) {
	return uc.mutate(ctx, id, "orden aprobada", func(r TxRepos, po *entity.PurchaseOrder, now time.Time) error {
		if err := po.Approve(userID, now); err != nil {
			return err
		}
		return r.PurchaseOrders.Update(ctx, po)
	})
}

// Reject devuelve la orden a Draft con un motivo.
func (uc *PurchaseOrderUseCase) Reject(ctx context.Context, id int64, reason string) (*dto.PurchaseOrderResponse, error) {
	return uc.mutate(ctx, id, "orden rechazada", func(r TxRepos, po *entity.PurchaseOrder, now time.Time) error {
		if err := po.Reject(reason, now); err != nil {
			return err
		}
		return r.PurchaseOrders.Update(ctx, po)
	})
}

// MarkDelivered registra la llegada física de una orden emitida sin manifiesto.
func (uc *PurchaseOrderUseCase) MarkDelivered(ctx context.Context, id int64) (*dto.PurchaseOrderResponse, error) {
	return uc.mutate(ctx, id, "orden entregada", func(r TxRepos, po *entity.PurchaseOrder, now time.Time) error {
		if err := po.MarkDelivered(now); err != nil {
			return err
		}
		return r.PurchaseOrders.Update(ctx, po)
	})
}

// Cancel anula una orden no emitida.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, id int64) (*dto.PurchaseOrderResponse, error) {
	return uc.mutate(ctx, id, "orden cancelada", func(r TxRepos, po *entity.PurchaseOrder, now time.Time) error {
		if err := po.Cancel(now); err != nil {
			return err
		}
		return r.PurchaseOrders.Update(ctx, po)
	})
}

// mutate bloquea la orden, aplica fn y registra el cambio.
func (uc *PurchaseOrderUseCase) mutate(ctx context.Context, id int64, msg string,
	fn func(r TxRepos, po *entity.PurchaseOrder, now time.Time) error) (*dto.PurchaseOrderResponse, error) {
	var out *entity.PurchaseOrder
	var from entity.PurchaseOrderStatus
	err := uc.tx.Run(ctx, func(r TxRepos) error {
		po, err := r.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.NewNotFound("orden de compra", id)
		}
		from = po.Status
		if err := fn(r, po, uc.now()); err != nil {
			return err
		}
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Int64("purchase_order_id", out.ID).
		Str("from", string(from)).
		Str("to", string(out.Status)).
		Msg(msg)
	return toPurchaseOrderResponse(out), nil
}

func (uc *PurchaseOrderUseCase) checkSupplier(ctx context.Context, id int64, violations *[]domain.Violation) error {
	if id <= 0 {
		*violations = append(*violations, domain.Violation{Code: domain.ViolationRequired, Field: "supplier_id",
			Message: "el proveedor es requerido"})
		return nil
	}
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		*violations = append(*violations, domain.Violation{Code: domain.ViolationNotMember, Field: "supplier_id", ID: id,
			Message: fmt.Sprintf("proveedor %d no existe", id)})
	}
	return nil
}

// buildItems valida producto, cantidad y precio de cada línea y acumula las violaciones.
func (uc *PurchaseOrderUseCase) buildItems(ctx context.Context, in []dto.PurchaseOrderItemRequest, violations *[]domain.Violation) ([]entity.PurchaseOrderItem, error) {
	items := make([]entity.PurchaseOrderItem, 0, len(in))
	known := map[int64]bool{}
	for i, it := range in {
		if it.Quantity <= 0 {
			*violations = append(*violations, domain.Violation{Code: domain.ViolationInvalidQuantity, Field: fmt.Sprintf("items[%d].quantity", i),
				ID: it.ProductID, Message: fmt.Sprintf("línea %d: la cantidad debe ser mayor que cero", i+1)})
		}
		if it.UnitPrice.IsNegative() {
			*violations = append(*violations, domain.Violation{Code: domain.ViolationInvalidValue, Field: fmt.Sprintf("items[%d].unit_price", i),
				ID: it.ProductID, Value: it.UnitPrice.String(), Message: fmt.Sprintf("línea %d: el precio unitario no puede ser negativo", i+1)})
		}
		exists, checked := known[it.ProductID]
		if !checked {
			p, err := uc.products.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, err
			}
			exists = p != nil
			known[it.ProductID] = exists
		}
		if !exists {
			*violations = append(*violations, domain.Violation{Code: domain.ViolationNotMember, Field: fmt.Sprintf("items[%d].product_id", i),
				ID: it.ProductID, Message: fmt.Sprintf("producto %d no existe", it.ProductID)})
		}
		items = append(items, entity.PurchaseOrderItem{
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Description: strings.TrimSpace(it.Description),
		})
	}
	return items, nil
}

// PurchaseOrderNumber formato visible del número de orden.
func PurchaseOrderNumber(id int64) string {
	return fmt.Sprintf("PO-%d", id)
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	out := &dto.PurchaseOrderResponse{
		ID:               po.ID,
		Number:           PurchaseOrderNumber(po.ID),
		SupplierID:       po.SupplierID,
		Status:           string(po.Status),
		TotalPrice:       po.TotalPrice,
		Notes:            po.Notes,
		RejectionReason:  po.RejectionReason,
		CreatedByUserID:  po.CreatedByUserID,
		ApprovedByUserID: po.ApprovedByUserID,
		ApprovedAt:       po.ApprovedAt,
		CreatedAt:        po.CreatedAt,
		UpdatedAt:        po.UpdatedAt,
	}
	for _, it := range po.Items {
		out.Items = append(out.Items, dto.PurchaseOrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Description: it.Description,
		})
	}
	return out
}
