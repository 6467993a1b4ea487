package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del catálogo.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. El SKU es único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	var violations []domain.Violation
	if in.SKU == "" {
		violations = append(violations, required("sku"))
	}
	if in.Name == "" {
		violations = append(violations, required("name"))
	}
	if in.SellingPrice.IsNegative() || in.InternalPrice.IsNegative() {
		violations = append(violations, domain.Violation{Code: domain.ViolationInvalidValue, Field: "price",
			Message: "los precios no pueden ser negativos"})
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}
	if in.Measurement == "" {
		in.Measurement = "und"
	}
	now := time.Now()
	product := &entity.Product{
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Measurement:   in.Measurement,
		SellingPrice:  in.SellingPrice,
		InternalPrice: in.InternalPrice,
		ImageURL:      in.ImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("producto", id)
	}
	return toProductResponse(product), nil
}

// Update aplica una actualización parcial. SKU e ID son inmutables.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("producto", id)
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, &domain.ValidationError{Violations: []domain.Violation{required("name")}}
	}
	entity.ProductPatch{
		Name:          in.Name,
		Description:   in.Description,
		Measurement:   in.Measurement,
		SellingPrice:  in.SellingPrice,
		InternalPrice: in.InternalPrice,
		ImageURL:      in.ImageURL,
	}.Apply(product)
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func required(field string) domain.Violation {
	return domain.Violation{Code: domain.ViolationRequired, Field: field, Message: field + " es requerido"}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Measurement:   p.Measurement,
		SellingPrice:  p.SellingPrice,
		InternalPrice: p.InternalPrice,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
