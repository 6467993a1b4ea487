package entity

import "time"

// Location ubicación lógica del ledger. Conjunto cerrado; su id de almacenamiento
// se resuelve solo en la capa de persistencia.
type Location int

const (
	LocationUnknown Location = iota
	LocationVendor
	LocationAvailable
	LocationInReceiving
	LocationInTransit
	LocationAwaitingQC
	LocationCommitted
	LocationDisabled
	LocationRejectedDock
	LocationQuarantine
)

var locationNames = map[Location]string{
	LocationVendor:       "Vendor",
	LocationAvailable:    "Available",
	LocationInReceiving:  "In Receiving",
	LocationInTransit:    "In Transit",
	LocationAwaitingQC:   "Awaiting QC",
	LocationCommitted:    "Committed",
	LocationDisabled:     "Disabled",
	LocationRejectedDock: "Rejected Dock",
	LocationQuarantine:   "Quarantine",
}

func (l Location) String() string {
	if n, ok := locationNames[l]; ok {
		return n
	}
	return "Unknown"
}

// IsExternal indica si la ubicación está fuera de la bodega (proveedor o en tránsito).
func (l Location) IsExternal() bool {
	return l == LocationVendor || l == LocationInTransit
}

// IsGoodStock indica si la ubicación cuenta como mercancía recibida y aceptada.
func (l Location) IsGoodStock() bool {
	switch l {
	case LocationAvailable, LocationInReceiving, LocationAwaitingQC, LocationCommitted, LocationDisabled:
		return true
	}
	return false
}

// StockMove asiento inmutable del ledger: mueve una cantidad de una línea de orden entre dos ubicaciones.
type StockMove struct {
	ID                  int64
	PurchaseOrderItemID int64
	Source              Location
	Destination         Location
	Quantity            int
	GoodsReceiptID      *int64
	ShipmentManifestID  *int64
	CreatedByUserID     int64
	MovedAt             time.Time
}

// AssetStockMove asocia un activo con el movimiento que lo trasladó.
type AssetStockMove struct {
	AssetID     int64
	StockMoveID int64
}
