package entity

import (
	"fmt"
	"time"
)

// Estados del manifiesto de envío.
const (
	ManifestStatusDraft      = "Draft"
	ManifestStatusPosted     = "posted"
	ManifestStatusAwaitingQC = "Awaiting QC"
	ManifestStatusReceived   = "Received"
)

// ManifestLineKind distingue cómo declaró el proveedor la línea.
type ManifestLineKind string

const (
	LineKindAssetSpecified   ManifestLineKind = "asset_specified"
	LineKindQuantityDeclared ManifestLineKind = "quantity_declared"
)

// ShipmentManifest aviso de envío físico atado a una única orden de compra.
type ShipmentManifest struct {
	ID               int64
	PurchaseOrderID  int64
	SupplierID       int64 // copiado de la orden, nunca del cliente
	TrackingNumber   string
	CarrierName      string
	EstimatedArrival *time.Time
	Status           string
	CreatedByUserID  int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Lines            []ShipmentManifestLine
}

// Code código visible del manifiesto (SM-<id>).
func (m *ShipmentManifest) Code() string { return fmt.Sprintf("SM-%d", m.ID) }

// Line busca una línea por ID.
func (m *ShipmentManifest) Line(id int64) (ShipmentManifestLine, bool) {
	for _, l := range m.Lines {
		if l.ID == id {
			return l, true
		}
	}
	return ShipmentManifestLine{}, false
}

// LineIDs devuelve los IDs de las líneas en orden.
func (m *ShipmentManifest) LineIDs() []int64 {
	ids := make([]int64, 0, len(m.Lines))
	for _, l := range m.Lines {
		ids = append(ids, l.ID)
	}
	return ids
}

// ShipmentManifestLine declara, por línea de la orden, unidades serializadas o una cantidad.
type ShipmentManifestLine struct {
	ID                  int64
	ShipmentManifestID  int64
	PurchaseOrderItemID int64
	Kind                ManifestLineKind
	SupplierSKU         string
	QuantityDeclared    int
}

// ManifestSummary fila de búsqueda de manifiestos.
type ManifestSummary struct {
	ID               int64
	PurchaseOrderID  int64
	SupplierName     string
	TrackingNumber   string
	CarrierName      string
	EstimatedArrival *time.Time
	Status           string
	ItemCount        int
	CreatedAt        time.Time
}

// ManifestFilter criterios de búsqueda de manifiestos; campos vacíos no filtran.
type ManifestFilter struct {
	ManifestID     int64
	SupplierName   string
	TrackingNumber string
	From           *time.Time
	To             *time.Time
	Limit          int
	Offset         int
}
