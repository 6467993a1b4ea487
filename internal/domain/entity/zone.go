package entity

import "time"

// Tipos de zona de bodega.
const (
	ZoneTypeReceiving  = "Receiving"
	ZoneTypeStorage    = "Storage"
	ZoneTypeQuarantine = "Quarantine"
	ZoneTypeShipping   = "Shipping"
)

// Zone ubicación física dentro de la bodega.
type Zone struct {
	ID             int64
	Name           string
	Description    string
	Type           string
	IsStockable    bool
	IsSecurityCage bool
	ImageURL       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsValidZoneType indica si t es un tipo de zona conocido.
func IsValidZoneType(t string) bool {
	switch t {
	case ZoneTypeReceiving, ZoneTypeStorage, ZoneTypeQuarantine, ZoneTypeShipping:
		return true
	}
	return false
}

// ZonePatch actualización parcial de Zone.
type ZonePatch struct {
	Name           *string
	Description    *string
	Type           *string
	IsStockable    *bool
	IsSecurityCage *bool
	ImageURL       *string
}

// Apply aplica los campos presentes del patch sobre z.
func (patch ZonePatch) Apply(z *Zone) {
	if patch.Name != nil {
		z.Name = *patch.Name
	}
	if patch.Description != nil {
		z.Description = *patch.Description
	}
	if patch.Type != nil {
		z.Type = *patch.Type
	}
	if patch.IsStockable != nil {
		z.IsStockable = *patch.IsStockable
	}
	if patch.IsSecurityCage != nil {
		z.IsSecurityCage = *patch.IsSecurityCage
	}
	if patch.ImageURL != nil {
		z.ImageURL = *patch.ImageURL
	}
}
