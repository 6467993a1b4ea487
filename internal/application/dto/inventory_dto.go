package dto

// StockLevelResponse unidades de un producto en una zona con un estado dado.
type StockLevelResponse struct {
	ZoneID   *int64 `json:"zone_id,omitempty"`
	Status   string `json:"status"`
	Quantity int    `json:"quantity"`
}

// ProductStockResponse stock de un producto derivado de sus activos.
type ProductStockResponse struct {
	ProductID int64                `json:"product_id"`
	SKU       string               `json:"sku"`
	Name      string               `json:"name"`
	OnHand    int                  `json:"on_hand"` // Available + Awaiting QC
	InTransit int                  `json:"in_transit"`
	Total     int                  `json:"total"`
	ByStatus  map[string]int       `json:"by_status"`
	Levels    []StockLevelResponse `json:"levels"`
}
