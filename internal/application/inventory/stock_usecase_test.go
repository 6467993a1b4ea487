package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/testutil/memstore"
)

func seedAssets(t *testing.T, store *memstore.Store, productID int64, zoneID *int64, status entity.AssetStatus, n int, prefix string) {
	t.Helper()
	assets := make([]*entity.Asset, n)
	for i := range assets {
		assets[i] = &entity.Asset{
			SerialNumber: prefix + string(rune('A'+i)),
			ProductID:    productID,
			ZoneID:       zoneID,
			Status:       status,
		}
	}
	require.NoError(t, store.Assets().CreateBatch(context.Background(), assets))
}

func TestStockUseCase_ProductStock(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	laptop := &entity.Product{SKU: "LAP-1", Name: "Portátil"}
	require.NoError(t, store.Products().Create(ctx, laptop))

	storage, quarantine := int64(7), int64(14)
	seedAssets(t, store, laptop.ID, nil, entity.AssetStatusInTransit, 2, "T")
	seedAssets(t, store, laptop.ID, &storage, entity.AssetStatusAwaitingQC, 3, "Q")
	seedAssets(t, store, laptop.ID, &storage, entity.AssetStatusAvailable, 4, "V")
	seedAssets(t, store, laptop.ID, &quarantine, entity.AssetStatusRejected, 1, "R")

	uc := inventory.NewStockUseCase(store.Stock(), store.Products())
	out, err := uc.ProductStock(ctx, laptop.ID)
	require.NoError(t, err)

	assert.Equal(t, "LAP-1", out.SKU)
	assert.Equal(t, 10, out.Total)
	assert.Equal(t, 7, out.OnHand, "Available + Awaiting QC")
	assert.Equal(t, 2, out.InTransit)
	assert.Equal(t, 1, out.ByStatus[string(entity.AssetStatusRejected)])
	require.Len(t, out.Levels, 4)
	assert.Nil(t, out.Levels[0].ZoneID, "en tránsito no tiene zona")
	assert.Equal(t, int64(14), *out.Levels[3].ZoneID)
}

func TestStockUseCase_ProductoSinActivos(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	p := &entity.Product{SKU: "MON-1", Name: "Monitor"}
	require.NoError(t, store.Products().Create(ctx, p))
	uc := inventory.NewStockUseCase(store.Stock(), store.Products())

	out, err := uc.ProductStock(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, out.Total)
	assert.Empty(t, out.Levels)

	_, err = uc.ProductStock(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockUseCase_Summary(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	a := &entity.Product{SKU: "A", Name: "Producto A"}
	b := &entity.Product{SKU: "B", Name: "Producto B"}
	c := &entity.Product{SKU: "C", Name: "Sin activos"}
	for _, p := range []*entity.Product{a, b, c} {
		require.NoError(t, store.Products().Create(ctx, p))
	}
	storage := int64(7)
	seedAssets(t, store, a.ID, &storage, entity.AssetStatusAvailable, 2, "A")
	seedAssets(t, store, b.ID, &storage, entity.AssetStatusAvailable, 1, "B")
	seedAssets(t, store, b.ID, nil, entity.AssetStatusInTransit, 3, "BT")

	out, err := inventory.NewStockUseCase(store.Stock(), store.Products()).Summary(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].SKU)
	assert.Equal(t, 2, out[0].OnHand)
	assert.Equal(t, "B", out[1].SKU)
	assert.Equal(t, 4, out[1].Total)
	assert.Equal(t, 3, out[1].InTransit)
}
