package entity

import "time"

// AssetStatus estado de una unidad física.
type AssetStatus string

const (
	AssetStatusInTransit  AssetStatus = "In Transit"
	AssetStatusAwaitingQC AssetStatus = "Awaiting QC"
	AssetStatusAvailable  AssetStatus = "Available"
	AssetStatusRejected   AssetStatus = "Rejected"
	AssetStatusDisabled   AssetStatus = "Disabled"
	AssetStatusQuarantine AssetStatus = "Quarantine"
)

// Asset unidad serializada de inventario. Nunca se elimina en el flujo normal.
type Asset struct {
	ID                     int64
	SerialNumber           string // único
	ProductID              int64
	PurchaseOrderItemID    int64
	ShipmentManifestLineID *int64
	GoodsReceiptID         *int64
	ZoneID                 *int64
	Status                 AssetStatus
	LastMovementDate       time.Time
	CreatedAt              time.Time
}

// AssetReceiptUpdate cambio aplicado a un activo al recibirlo.
type AssetReceiptUpdate struct {
	AssetID        int64
	Status         AssetStatus
	ZoneID         int64
	GoodsReceiptID int64
	MovedAt        time.Time
}
