package dto

import "time"

// CreateZoneRequest entrada para crear una zona.
type CreateZoneRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Type           string `json:"zone_type"`
	IsStockable    bool   `json:"is_stockable"`
	IsSecurityCage bool   `json:"is_security_cage"`
	ImageURL       string `json:"image_url"`
}

// UpdateZoneRequest actualización parcial de zona.
type UpdateZoneRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Type           *string `json:"zone_type"`
	IsStockable    *bool   `json:"is_stockable"`
	IsSecurityCage *bool   `json:"is_security_cage"`
	ImageURL       *string `json:"image_url"`
}

// ZoneResponse salida de una zona.
type ZoneResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Type           string    `json:"zone_type"`
	IsStockable    bool      `json:"is_stockable"`
	IsSecurityCage bool      `json:"is_security_cage"`
	ImageURL       string    `json:"image_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
