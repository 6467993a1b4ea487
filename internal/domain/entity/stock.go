package entity

// StockLevel unidades de un producto agrupadas por zona y estado. ZoneID nil = sin zona (en tránsito).
type StockLevel struct {
	ProductID int64
	ZoneID    *int64
	Status    AssetStatus
	Quantity  int
}
