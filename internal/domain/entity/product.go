package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un ítem del catálogo. Su identidad es inmutable; lo referencian Asset y PurchaseOrderItem.
type Product struct {
	ID            int64
	SKU           string // único
	Name          string
	Description   string
	Measurement   string // unidad de medida (und, caja, kg)
	SellingPrice  decimal.Decimal
	InternalPrice decimal.Decimal
	ImageURL      string // URL ya alojada en el host externo de imágenes
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductPatch actualización parcial de Product; nil = sin cambio.
type ProductPatch struct {
	Name          *string
	Description   *string
	Measurement   *string
	SellingPrice  *decimal.Decimal
	InternalPrice *decimal.Decimal
	ImageURL      *string
}

// Apply aplica los campos presentes del patch sobre p.
func (patch ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Measurement != nil {
		p.Measurement = *patch.Measurement
	}
	if patch.SellingPrice != nil {
		p.SellingPrice = *patch.SellingPrice
	}
	if patch.InternalPrice != nil {
		p.InternalPrice = *patch.InternalPrice
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
}
