package entity

import "time"

// Supplier representa un proveedor.
type Supplier struct {
	ID            int64
	Name          string
	Phone         string
	Email         string
	Address       string
	ContactPerson string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SupplierPatch actualización parcial de Supplier.
type SupplierPatch struct {
	Name          *string
	Phone         *string
	Email         *string
	Address       *string
	ContactPerson *string
}

// Apply aplica los campos presentes del patch sobre s.
func (patch SupplierPatch) Apply(s *Supplier) {
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Phone != nil {
		s.Phone = *patch.Phone
	}
	if patch.Email != nil {
		s.Email = *patch.Email
	}
	if patch.Address != nil {
		s.Address = *patch.Address
	}
	if patch.ContactPerson != nil {
		s.ContactPerson = *patch.ContactPerson
	}
}
