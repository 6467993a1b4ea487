package dto

import "time"

// ManifestLineRequest línea del manifiesto; Type decide qué campos aplican:
// "asset_specified" usa SerialNumbers, "quantity_declared" usa Quantity.
type ManifestLineRequest struct {
	Type                string   `json:"type"`
	PurchaseOrderItemID int64    `json:"purchase_order_line_id"`
	SupplierSKU         string   `json:"supplier_sku"`
	Quantity            int      `json:"quantity_declared"`
	SerialNumbers       []string `json:"serial_numbers"`
}

// CreateManifestRequest entrada para crear un manifiesto de envío.
type CreateManifestRequest struct {
	PurchaseOrderID  int64                 `json:"purchase_order_id"`
	TrackingNumber   string                `json:"tracking_number"`
	CarrierName      string                `json:"carrier_name"`
	EstimatedArrival *time.Time            `json:"estimated_arrival"`
	Status           string                `json:"status"`
	Lines            []ManifestLineRequest `json:"lines"`
}

// ManifestCreatedResponse resultado de crear un manifiesto.
type ManifestCreatedResponse struct {
	ID            int64  `json:"id"`
	Code          string `json:"manifest_code"`
	Status        string `json:"status"`
	LinesCreated  int    `json:"lines_created"`
	AssetsCreated int    `json:"assets_created"`
	MovesCreated  int    `json:"stock_moves_created"`
}

// ManifestLineResponse línea de un manifiesto.
type ManifestLineResponse struct {
	ID                  int64  `json:"id"`
	PurchaseOrderItemID int64  `json:"purchase_order_line_id"`
	Type                string `json:"type"`
	SupplierSKU         string `json:"supplier_sku"`
	QuantityDeclared    int    `json:"quantity_declared"`
}

// ManifestResponse cabecera y líneas de un manifiesto.
type ManifestResponse struct {
	ID               int64                  `json:"id"`
	Code             string                 `json:"manifest_code"`
	PurchaseOrderID  int64                  `json:"purchase_order_id"`
	SupplierID       int64                  `json:"supplier_id"`
	TrackingNumber   string                 `json:"tracking_number"`
	CarrierName      string                 `json:"carrier_name"`
	EstimatedArrival *time.Time             `json:"estimated_arrival,omitempty"`
	Status           string                 `json:"status"`
	CreatedByUserID  int64                  `json:"created_by_user_id"`
	CreatedAt        time.Time              `json:"created_at"`
	Lines            []ManifestLineResponse `json:"lines"`
}

// ManifestLineProgressResponse avance de recepción de una línea del manifiesto.
type ManifestLineProgressResponse struct {
	ID                  int64  `json:"id"`
	PurchaseOrderItemID int64  `json:"purchase_order_line_id"`
	SupplierSKU         string `json:"supplier_sku"`
	QuantityDeclared    int    `json:"quantity_declared"`
	QuantityReceived    int    `json:"quantity_received"`
	QuantityRemaining   int    `json:"quantity_remaining"`
}

// ManifestSearchRequest filtros de búsqueda de manifiestos.
type ManifestSearchRequest struct {
	ManifestID     int64      `query:"manifest_id"`
	SupplierName   string     `query:"supplier_name"`
	TrackingNumber string     `query:"tracking_number"`
	From           *time.Time `query:"-"`
	To             *time.Time `query:"-"`
	PageRequest
}

// ManifestSummaryResponse fila de resultado de búsqueda.
type ManifestSummaryResponse struct {
	ID               int64      `json:"id"`
	Code             string     `json:"manifest_code"`
	PurchaseOrderID  int64      `json:"purchase_order_id"`
	PONumber         string     `json:"po_number"`
	SupplierName     string     `json:"supplier_name"`
	TrackingNumber   string     `json:"tracking_number"`
	CarrierName      string     `json:"carrier_name"`
	EstimatedArrival *time.Time `json:"estimated_arrival,omitempty"`
	Status           string     `json:"status"`
	ItemCount        int        `json:"item_count"`
	CreatedAt        time.Time  `json:"created_at"`
}

// VerifyAssetsRequest seriales escaneados para una línea del manifiesto.
type VerifyAssetsRequest struct {
	SerialNumbers []string `json:"serial_numbers"`
}

// VerifyAssetsResponse comparación entre seriales escaneados y los registrados en la línea.
type VerifyAssetsResponse struct {
	LineID     int64    `json:"line_id"`
	Matched    []string `json:"matched"`
	Missing    []string `json:"missing"`
	Redundant  []string `json:"redundant"`
	IsComplete bool     `json:"is_complete"`
}
