package entity

import "time"

// GoodsReceipt cabecera de un evento de recepción. Sin manifiesto es una recepción directa desde la orden.
type GoodsReceipt struct {
	ID                 int64
	ReceiptNumber      string
	PurchaseOrderID    int64
	ShipmentManifestID *int64
	ReceivedByUserID   int64
	ReceivedAt         time.Time
	Notes              string
}
