package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ZoneUseCase administración de zonas de bodega.
type ZoneUseCase struct {
	repo repository.ZoneRepository
}

// NewZoneUseCase construye el caso de uso.
func NewZoneUseCase(repo repository.ZoneRepository) *ZoneUseCase {
	return &ZoneUseCase{repo: repo}
}

func zoneTypeViolation(t string) domain.Violation {
	return domain.Violation{Code: domain.ViolationInvalidValue, Field: "zone_type", Value: t,
		Message: fmt.Sprintf("tipo de zona %q inválido", t)}
}

func (uc *ZoneUseCase) Create(ctx context.Context, in dto.CreateZoneRequest) (*dto.ZoneResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	var violations []domain.Violation
	if in.Name == "" {
		violations = append(violations, required("name"))
	}
	if !entity.IsValidZoneType(in.Type) {
		violations = append(violations, zoneTypeViolation(in.Type))
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}
	now := time.Now()
	z := &entity.Zone{
		Name:           in.Name,
		Description:    in.Description,
		Type:           in.Type,
		IsStockable:    in.IsStockable,
		IsSecurityCage: in.IsSecurityCage,
		ImageURL:       in.ImageURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, z); err != nil {
		return nil, err
	}
	return toZoneResponse(z), nil
}

func (uc *ZoneUseCase) GetByID(ctx context.Context, id int64) (*dto.ZoneResponse, error) {
	z, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if z == nil {
		return nil, domain.NewNotFound("zona", id)
	}
	return toZoneResponse(z), nil
}

func (uc *ZoneUseCase) Update(ctx context.Context, id int64, in dto.UpdateZoneRequest) (*dto.ZoneResponse, error) {
	z, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if z == nil {
		return nil, domain.NewNotFound("zona", id)
	}
	if in.Type != nil && !entity.IsValidZoneType(*in.Type) {
		return nil, &domain.ValidationError{Violations: []domain.Violation{zoneTypeViolation(*in.Type)}}
	}
	entity.ZonePatch{
		Name:           in.Name,
		Description:    in.Description,
		Type:           in.Type,
		IsStockable:    in.IsStockable,
		IsSecurityCage: in.IsSecurityCage,
		ImageURL:       in.ImageURL,
	}.Apply(z)
	z.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, z); err != nil {
		return nil, err
	}
	return toZoneResponse(z), nil
}

func (uc *ZoneUseCase) List(ctx context.Context) ([]dto.ZoneResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ZoneResponse, 0, len(list))
	for _, z := range list {
		out = append(out, *toZoneResponse(z))
	}
	return out, nil
}

func toZoneResponse(z *entity.Zone) *dto.ZoneResponse {
	return &dto.ZoneResponse{
		ID:             z.ID,
		Name:           z.Name,
		Description:    z.Description,
		Type:           z.Type,
		IsStockable:    z.IsStockable,
		IsSecurityCage: z.IsSecurityCage,
		ImageURL:       z.ImageURL,
		CreatedAt:      z.CreatedAt,
		UpdatedAt:      z.UpdatedAt,
	}
}
