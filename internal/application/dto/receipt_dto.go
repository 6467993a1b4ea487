package dto

import "time"

// ReceiveAssetItem unidad recibida en una recepción directa; SerialNumber vacío genera uno.
type ReceiveAssetItem struct {
	SerialNumber string `json:"serial_number"`
	IsAccepted   bool   `json:"is_accepted"`
}

// ReceivePOLineRequest línea de una recepción directa desde la orden.
type ReceivePOLineRequest struct {
	LineID           int64              `json:"line_id"`
	ReceivedQuantity int                `json:"received_quantity"`
	AssetItems       []ReceiveAssetItem `json:"asset_items"`
}

// ReceivePurchaseOrderRequest entrada de recepción directa desde la orden de compra.
type ReceivePurchaseOrderRequest struct {
	Notes string                 `json:"notes"`
	Lines []ReceivePOLineRequest `json:"lines"`
}

// ReceiveManifestAsset activo existente del manifiesto y su resultado de inspección.
type ReceiveManifestAsset struct {
	AssetID    int64 `json:"asset_id"`
	IsAccepted bool  `json:"is_accepted"`
}

// ReceiveManifestLineRequest línea de una recepción contra manifiesto.
type ReceiveManifestLineRequest struct {
	LineID     int64                  `json:"line_id"`
	AssetItems []ReceiveManifestAsset `json:"asset_items"`
}

// ReceiveManifestRequest entrada de recepción contra un manifiesto publicado.
type ReceiveManifestRequest struct {
	Notes string                       `json:"notes"`
	Lines []ReceiveManifestLineRequest `json:"lines"`
}

// ReceiptResponse resultado de una recepción.
type ReceiptResponse struct {
	ReceiptID           int64  `json:"receipt_id"`
	ReceiptNumber       string `json:"receipt_number"`
	PurchaseOrderID     int64  `json:"purchase_order_id"`
	ShipmentManifestID  *int64 `json:"shipment_manifest_id,omitempty"`
	PurchaseOrderStatus string `json:"purchase_order_status"`
	Accepted            int    `json:"accepted"`
	Rejected            int    `json:"rejected"`
}

// ReceiptAssetResponse activo incluido en una recepción.
type ReceiptAssetResponse struct {
	ID                  int64  `json:"id"`
	SerialNumber        string `json:"serial_number"`
	ProductID           int64  `json:"product_id"`
	PurchaseOrderItemID int64  `json:"purchase_order_line_id"`
	Status              string `json:"status"`
	ZoneID              *int64 `json:"zone_id,omitempty"`
}

// StockMoveResponse asiento del ledger.
type StockMoveResponse struct {
	ID                  int64     `json:"id"`
	PurchaseOrderItemID int64     `json:"purchase_order_line_id"`
	Source              string    `json:"source"`
	Destination         string    `json:"destination"`
	Quantity            int       `json:"quantity"`
	MovedAt             time.Time `json:"moved_at"`
}

// ReceiptDetailResponse detalle de una recepción.
type ReceiptDetailResponse struct {
	ID                 int64                  `json:"id"`
	ReceiptNumber      string                 `json:"receipt_number"`
	PurchaseOrderID    int64                  `json:"purchase_order_id"`
	ShipmentManifestID *int64                 `json:"shipment_manifest_id,omitempty"`
	ReceivedByUserID   int64                  `json:"received_by_user_id"`
	ReceivedAt         time.Time              `json:"received_at"`
	Notes              string                 `json:"notes"`
	Assets             []ReceiptAssetResponse `json:"assets"`
	StockMoves         []StockMoveResponse    `json:"stock_moves"`
}
