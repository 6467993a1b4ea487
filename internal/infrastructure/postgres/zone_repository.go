package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.ZoneRepository = (*ZoneRepo)(nil)

// ZoneRepo implementación de ZoneRepository sobre PostgreSQL.
type ZoneRepo struct {
	q Querier
}

func NewZoneRepository(q Querier) *ZoneRepo {
	return &ZoneRepo{q: q}
}

const zoneColumns = `id, name, description, zone_type, is_stockable, is_security_cage, image_url, created_at, updated_at`

func scanZone(row pgx.Row) (*entity.Zone, error) {
	var z entity.Zone
	var image *string
	if err := row.Scan(&z.ID, &z.Name, &z.Description, &z.Type, &z.IsStockable, &z.IsSecurityCage,
		&image, &z.CreatedAt, &z.UpdatedAt); err != nil {
		return nil, err
	}
	z.ImageURL = stringOrEmpty(image)
	return &z, nil
}

func (r *ZoneRepo) Create(ctx context.Context, z *entity.Zone) error {
	query := `
		INSERT INTO zones (name, description, zone_type, is_stockable, is_security_cage, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query,
		z.Name, z.Description, z.Type, z.IsStockable, z.IsSecurityCage, nullIfEmpty(z.ImageURL), z.CreatedAt, z.UpdatedAt,
	).Scan(&z.ID); err != nil {
		return dbErr("insert zone", err)
	}
	return nil
}

func (r *ZoneRepo) GetByID(ctx context.Context, id int64) (*entity.Zone, error) {
	z, err := scanZone(r.q.QueryRow(ctx, `SELECT `+zoneColumns+` FROM zones WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get zone", err)
	}
	return z, nil
}

func (r *ZoneRepo) List(ctx context.Context) ([]*entity.Zone, error) {
	rows, err := r.q.Query(ctx, `SELECT `+zoneColumns+` FROM zones ORDER BY id`)
	if err != nil {
		return nil, dbErr("list zones", err)
	}
	defer rows.Close()
	var list []*entity.Zone
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, dbErr("scan zone", err)
		}
		list = append(list, z)
	}
	return list, rows.Err()
}

func (r *ZoneRepo) Update(ctx context.Context, z *entity.Zone) error {
	query := `
		UPDATE zones
		SET name = $2, description = $3, zone_type = $4, is_stockable = $5, is_security_cage = $6,
		    image_url = $7, updated_at = $8
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query,
		z.ID, z.Name, z.Description, z.Type, z.IsStockable, z.IsSecurityCage, nullIfEmpty(z.ImageURL), z.UpdatedAt,
	); err != nil {
		return dbErr("update zone", err)
	}
	return nil
}
