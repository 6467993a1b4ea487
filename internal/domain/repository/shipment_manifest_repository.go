package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ShipmentManifestRepository define el puerto de persistencia para manifiestos y sus líneas (DIP).
type ShipmentManifestRepository interface {
	// Create inserta cabecera y líneas; asigna los IDs generados.
	Create(ctx context.Context, m *entity.ShipmentManifest) error
	GetByID(ctx context.Context, id int64) (*entity.ShipmentManifest, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.ShipmentManifest, error)
	GetLine(ctx context.Context, lineID int64) (*entity.ShipmentManifestLine, error)
	UpdateStatus(ctx context.Context, id int64, status string, at time.Time) error
	Search(ctx context.Context, filter entity.ManifestFilter) ([]entity.ManifestSummary, error)
}
