package repository

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ZoneRepository define el puerto de persistencia para Zone (DIP).
type ZoneRepository interface {
	Create(ctx context.Context, zone *entity.Zone) error
	GetByID(ctx context.Context, id int64) (*entity.Zone, error)
	List(ctx context.Context) ([]*entity.Zone, error)
	Update(ctx context.Context, zone *entity.Zone) error
}
