package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest línea de la orden en creación o reemplazo.
type PurchaseOrderItemRequest struct {
	ProductID   int64           `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Description string          `json:"item_description"`
}

// CreatePurchaseOrderRequest entrada para crear una orden. Submit=true la envía directo a aprobación.
type CreatePurchaseOrderRequest struct {
	SupplierID int64                      `json:"supplier_id"`
	Notes      string                     `json:"notes"`
	Submit     bool                       `json:"submit"`
	Items      []PurchaseOrderItemRequest `json:"items"`
}

// UpdatePurchaseOrderRequest actualización parcial de cabecera (solo Draft).
type UpdatePurchaseOrderRequest struct {
	SupplierID *int64  `json:"supplier_id"`
	Notes      *string `json:"notes"`
}

// ReplaceItemsRequest reemplazo total de líneas (solo Draft).
type ReplaceItemsRequest struct {
	Items []PurchaseOrderItemRequest `json:"items"`
}

// RejectPurchaseOrderRequest motivo de rechazo.
type RejectPurchaseOrderRequest struct {
	Reason string `json:"reason"`
}

// PurchaseOrderItemResponse salida de una línea.
type PurchaseOrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Description string          `json:"item_description"`
}

// PurchaseOrderResponse salida de una orden.
type PurchaseOrderResponse struct {
	ID               int64                       `json:"id"`
	Number           string                      `json:"po_number"`
	SupplierID       int64                       `json:"supplier_id"`
	Status           string                      `json:"status"`
	TotalPrice       decimal.Decimal             `json:"total_price"`
	Notes            string                      `json:"notes"`
	RejectionReason  string                      `json:"rejection_reason,omitempty"`
	CreatedByUserID  int64                       `json:"created_by_user_id"`
	ApprovedByUserID *int64                      `json:"approved_by_user_id,omitempty"`
	ApprovedAt       *time.Time                  `json:"approved_at,omitempty"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
	Items            []PurchaseOrderItemResponse `json:"items,omitempty"`
}

// LineStatsResponse desglose de cantidades de una línea.
type LineStatsResponse struct {
	LineID     int64 `json:"line_id"`
	Ordered    int   `json:"ordered"`
	Available  int   `json:"available"`
	InTransit  int   `json:"in_transit"`
	AwaitingQC int   `json:"awaiting_qc"`
	Rejected   int   `json:"rejected"`
	Quarantine int   `json:"quarantine"`
	Shipped    int   `json:"shipped"`
	Received   int   `json:"received"`
	Remaining  int   `json:"remaining"`
}
