package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain"
)

// PurchaseOrderStatus estado de la orden de compra.
type PurchaseOrderStatus string

// Vocabulario único de estados de la orden de compra.
const (
	POStatusDraft             PurchaseOrderStatus = "Draft"
	POStatusPending           PurchaseOrderStatus = "Pending"
	POStatusIssued            PurchaseOrderStatus = "Issued"
	POStatusDelivered         PurchaseOrderStatus = "Delivered"
	POStatusPartiallyReceived PurchaseOrderStatus = "Partially Received"
	POStatusReceived          PurchaseOrderStatus = "Received"
	POStatusRejected          PurchaseOrderStatus = "Rejected"
)

// poTransitions tabla de transiciones permitidas.
// Partially Received y Received solo se alcanzan por el recálculo posterior a una recepción.
var poTransitions = map[PurchaseOrderStatus][]PurchaseOrderStatus{
	POStatusDraft:             {POStatusPending, POStatusRejected},
	POStatusPending:           {POStatusIssued, POStatusDraft, POStatusRejected},
	POStatusIssued:            {POStatusDelivered, POStatusPartiallyReceived, POStatusReceived},
	POStatusDelivered:         {POStatusPartiallyReceived, POStatusReceived},
	POStatusPartiallyReceived: {POStatusReceived},
}

// CanTransitionTo indica si el cambio de estado s -> target está permitido.
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	for _, t := range poTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsValid indica si s pertenece al vocabulario de estados.
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case POStatusDraft, POStatusPending, POStatusIssued, POStatusDelivered,
		POStatusPartiallyReceived, POStatusReceived, POStatusRejected:
		return true
	}
	return false
}

// PurchaseOrder cabecera de la orden de compra. Posee sus Items (1:N).
type PurchaseOrder struct {
	ID               int64
	SupplierID       int64
	Status           PurchaseOrderStatus
	TotalPrice       decimal.Decimal
	Notes            string
	RejectionReason  string
	CreatedByUserID  int64
	ApprovedByUserID *int64
	ApprovedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Items            []PurchaseOrderItem
}

// PurchaseOrderItem línea de la orden: producto, cantidad ordenada y precio unitario.
// Inmutable una vez emitida la orden.
type PurchaseOrderItem struct {
	ID              int64
	PurchaseOrderID int64
	ProductID       int64
	Quantity        int
	UnitPrice       decimal.Decimal
	Description     string
}

// PurchaseOrderPatch actualización parcial de la cabecera (solo en Draft).
type PurchaseOrderPatch struct {
	SupplierID *int64
	Notes      *string
}

// ItemIDs devuelve los IDs de las líneas en orden.
func (po *PurchaseOrder) ItemIDs() []int64 {
	ids := make([]int64, 0, len(po.Items))
	for _, it := range po.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

// Item busca una línea por ID.
func (po *PurchaseOrder) Item(id int64) (PurchaseOrderItem, bool) {
	for _, it := range po.Items {
		if it.ID == id {
			return it, true
		}
	}
	return PurchaseOrderItem{}, false
}

func (po *PurchaseOrder) stateError(allowed ...PurchaseOrderStatus) error {
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		names = append(names, string(a))
	}
	return &domain.InvalidStateError{Entity: "orden de compra", ID: po.ID, Status: string(po.Status), Allowed: names}
}

// RequireStatus falla con InvalidStateError si el estado actual no está en allowed.
func (po *PurchaseOrder) RequireStatus(allowed ...PurchaseOrderStatus) error {
	for _, a := range allowed {
		if po.Status == a {
			return nil
		}
	}
	return po.stateError(allowed...)
}

func (po *PurchaseOrder) transition(to PurchaseOrderStatus, now time.Time) error {
	if !po.Status.CanTransitionTo(to) {
		var allowed []PurchaseOrderStatus
		for from, targets := range poTransitions {
			for _, t := range targets {
				if t == to {
					allowed = append(allowed, from)
				}
			}
		}
		return po.stateError(allowed...)
	}
	po.Status = to
	po.UpdatedAt = now
	return nil
}

func (po *PurchaseOrder) requireItems() error {
	if len(po.Items) == 0 {
		return &domain.ValidationError{Violations: []domain.Violation{{
			Code: domain.ViolationRequired, Field: "items", ID: po.ID,
			Message: "la orden de compra no tiene líneas",
		}}}
	}
	return nil
}

// Submit envía la orden a aprobación (Draft -> Pending).
func (po *PurchaseOrder) Submit(now time.Time) error {
	if err := po.RequireStatus(POStatusDraft); err != nil {
		return err
	}
	if err := po.requireItems(); err != nil {
		return err
	}
	return po.transition(POStatusPending, now)
}

// Approve emite la orden (Pending -> Issued) registrando al aprobador.
func (po *PurchaseOrder) Approve(userID int64, now time.Time) error {
	if err := po.RequireStatus(POStatusPending); err != nil {
		return err
	}
	if err := po.requireItems(); err != nil {
		return err
	}
	if err := po.transition(POStatusIssued, now); err != nil {
		return err
	}
	po.ApprovedByUserID = &userID
	po.ApprovedAt = &now
	po.RejectionReason = ""
	return nil
}

// Reject devuelve la orden a borrador (Pending -> Draft) con un motivo.
func (po *PurchaseOrder) Reject(reason string, now time.Time) error {
	if err := po.RequireStatus(POStatusPending); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return &domain.ValidationError{Violations: []domain.Violation{{
			Code: domain.ViolationRequired, Field: "reason", ID: po.ID,
			Message: "el motivo de rechazo es requerido",
		}}}
	}
	if err := po.transition(POStatusDraft, now); err != nil {
		return err
	}
	po.RejectionReason = reason
	return nil
}

// MarkDelivered registra la llegada física sin manifiesto (Issued -> Delivered).
func (po *PurchaseOrder) MarkDelivered(now time.Time) error {
	if err := po.RequireStatus(POStatusIssued); err != nil {
		return err
	}
	return po.transition(POStatusDelivered, now)
}

// Cancel anula la orden antes de ser emitida (terminal).
func (po *PurchaseOrder) Cancel(now time.Time) error {
	if err := po.RequireStatus(POStatusDraft, POStatusPending); err != nil {
		return err
	}
	return po.transition(POStatusRejected, now)
}

// ReplaceItems reemplaza todas las líneas (solo en Draft) y recalcula el total.
func (po *PurchaseOrder) ReplaceItems(items []PurchaseOrderItem, now time.Time) error {
	if err := po.RequireStatus(POStatusDraft); err != nil {
		return err
	}
	po.Items = items
	po.TotalPrice = TotalOf(items)
	po.UpdatedAt = now
	return nil
}

// ApplyPatch aplica una actualización parcial de cabecera (solo en Draft).
func (po *PurchaseOrder) ApplyPatch(patch PurchaseOrderPatch, now time.Time) error {
	if err := po.RequireStatus(POStatusDraft); err != nil {
		return err
	}
	if patch.SupplierID != nil {
		po.SupplierID = *patch.SupplierID
	}
	if patch.Notes != nil {
		po.Notes = *patch.Notes
	}
	po.UpdatedAt = now
	return nil
}

// TotalOf suma cantidad x precio unitario de las líneas.
func TotalOf(items []PurchaseOrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// ReceiptStatus deriva el estado de la orden a partir del total ordenado y el total aceptado.
// Devuelve el estado actual si no hay recepción física.
func ReceiptStatus(current PurchaseOrderStatus, ordered, accepted int) PurchaseOrderStatus {
	switch {
	case ordered > 0 && accepted >= ordered:
		return POStatusReceived
	case accepted > 0:
		return POStatusPartiallyReceived
	default:
		return current
	}
}
