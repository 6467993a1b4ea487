package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Measurement   string          `json:"measurement"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	InternalPrice decimal.Decimal `json:"internal_price"`
	ImageURL      string          `json:"image_url"`
}

// UpdateProductRequest actualización parcial; los campos omitidos no cambian.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Measurement   *string          `json:"measurement"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	InternalPrice *decimal.Decimal `json:"internal_price"`
	ImageURL      *string          `json:"image_url"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            int64           `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Measurement   string          `json:"measurement"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	InternalPrice decimal.Decimal `json:"internal_price"`
	ImageURL      string          `json:"image_url"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
