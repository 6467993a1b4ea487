package procurement

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	PurchaseOrders repository.PurchaseOrderRepository
	Manifests      repository.ShipmentManifestRepository
	Assets         repository.AssetRepository
	StockMoves     repository.StockMoveRepository
	Receipts       repository.GoodsReceiptRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a ella.
// Si fn devuelve error la transacción se revierte completa.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// ZoneConfig zonas destino de la recepción.
type ZoneConfig struct {
	DefaultStorageZoneID int64
	QuarantineZoneID     int64
}
