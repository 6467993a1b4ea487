package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/testutil/memstore"
)

func TestProductUseCase_CrearYActualizar(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memstore.New().Products())

	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: " LAP-001 ", Name: "Portátil", SellingPrice: decimal.NewFromInt(1200)})
	require.NoError(t, err)
	assert.Equal(t, "LAP-001", p.SKU)
	assert.Equal(t, "und", p.Measurement, "unidad de medida por defecto")

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "LAP-001", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	name := "Portátil 14"
	price := decimal.NewFromInt(1100)
	updated, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, SellingPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "Portátil 14", updated.Name)
	assert.True(t, price.Equal(updated.SellingPrice))
	assert.Equal(t, "LAP-001", updated.SKU, "el SKU no cambia")

	_, err = uc.GetByID(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_Validacion(t *testing.T) {
	uc := usecase.NewProductUseCase(memstore.New().Products())

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{SellingPrice: decimal.NewFromInt(-1)})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 3, "sku, name y precio se reportan juntos")
}

func TestSupplierUseCase_Paginacion(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSupplierUseCase(memstore.New().Suppliers())
	for _, n := range []string{"A", "B", "C"} {
		_, err := uc.Create(ctx, dto.CreateSupplierRequest{Name: n})
		require.NoError(t, err)
	}

	page, err := uc.List(ctx, dto.PageRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "B", page[0].Name)
}

func TestZoneUseCase_TipoInvalido(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewZoneUseCase(memstore.New().Zones())

	_, err := uc.Create(ctx, dto.CreateZoneRequest{Name: "Patio", Type: "Parking"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	z, err := uc.Create(ctx, dto.CreateZoneRequest{Name: "Cuarentena", Type: "Quarantine"})
	require.NoError(t, err)
	bad := "Otro"
	_, err = uc.Update(ctx, z.ID, dto.UpdateZoneRequest{Type: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestZoneUseCase_NombreUnico(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewZoneUseCase(memstore.New().Zones())

	_, err := uc.Create(ctx, dto.CreateZoneRequest{Name: "Jaula A", Type: "Storage", IsSecurityCage: true})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateZoneRequest{Name: "  jaula a ", Type: "Storage"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	other, err := uc.Create(ctx, dto.CreateZoneRequest{Name: "Despacho", Type: "Shipping"})
	require.NoError(t, err)
	taken := "Jaula A"
	_, err = uc.Update(ctx, other.ID, dto.UpdateZoneRequest{Name: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	same := "Despacho"
	_, err = uc.Update(ctx, other.ID, dto.UpdateZoneRequest{Name: &same})
	assert.NoError(t, err)
}

func TestUserUseCase_Actualizar(t *testing.T) {
	ctx := context.Background()
	users := memstore.New().Users()
	admin := &entity.User{Email: "admin@bodega.co", Role: entity.RoleAdmin, Status: entity.UserStatusActive}
	clerk := &entity.User{Email: "op@bodega.co", Role: entity.RoleBodeguero, Status: entity.UserStatusActive}
	require.NoError(t, users.Create(ctx, admin))
	require.NoError(t, users.Create(ctx, clerk))
	uc := usecase.NewUserUseCase(users)

	inactive := entity.UserStatusInactive
	out, err := uc.Update(ctx, admin.ID, clerk.ID, dto.UpdateUserRequest{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusInactive, out.Status)

	_, err = uc.Update(ctx, admin.ID, admin.ID, dto.UpdateUserRequest{Status: &inactive})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Violations[0].Field)

	bad := "root"
	_, err = uc.Update(ctx, admin.ID, clerk.ID, dto.UpdateUserRequest{Role: &bad, Status: &bad})
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 2)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = uc.GetByID(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
