package procurement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

func TestPurchaseOrderCreate_ReferenciasInvalidas(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.Create(f.ctx, adminID, dto.CreatePurchaseOrderRequest{
		SupplierID: 99,
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: f.products[0], Quantity: 0, UnitPrice: decimal.NewFromInt(1)},
			{ProductID: 500, Quantity: 1, UnitPrice: decimal.NewFromInt(-1)},
		},
	})

	assert.ElementsMatch(t, []string{
		domain.ViolationNotMember, // proveedor
		domain.ViolationInvalidQuantity,
		domain.ViolationInvalidValue,
		domain.ViolationNotMember, // producto
	}, violations(t, err))
}

func TestPurchaseOrderCreate_TotalYNumero(t *testing.T) {
	f := newFixture(t)

	po, err := f.orders.Create(f.ctx, adminID, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplierID,
		Submit:     true,
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: f.products[0], Quantity: 3, UnitPrice: decimal.RequireFromString("2.50")},
			{ProductID: f.products[1], Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "PO-1", po.Number)
	assert.Equal(t, string(entity.POStatusPending), po.Status, "submit=true envía a aprobación")
	assert.True(t, decimal.RequireFromString("17.5").Equal(po.TotalPrice))
	require.Len(t, po.Items, 2)
	assert.NotZero(t, po.Items[0].ID)
}

func TestPurchaseOrder_RechazoYReenvio(t *testing.T) {
	f := newFixture(t)
	po := f.draftPO(t, 2)
	_, err := f.orders.Submit(f.ctx, po.ID)
	require.NoError(t, err)

	_, err = f.orders.Reject(f.ctx, po.ID, "  ")
	assert.Equal(t, []string{domain.ViolationRequired}, violations(t, err))

	rejected, err := f.orders.Reject(f.ctx, po.ID, "precio fuera de presupuesto")
	require.NoError(t, err)
	assert.Equal(t, string(entity.POStatusDraft), rejected.Status)
	assert.Equal(t, "precio fuera de presupuesto", rejected.RejectionReason)

	updated, err := f.orders.ReplaceItems(f.ctx, po.ID, dto.ReplaceItemsRequest{Items: []dto.PurchaseOrderItemRequest{
		{ProductID: f.products[1], Quantity: 4, UnitPrice: decimal.NewFromInt(5)},
	}})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(updated.TotalPrice))

	_, err = f.orders.Submit(f.ctx, po.ID)
	require.NoError(t, err)
	approved, err := f.orders.Approve(f.ctx, po.ID, adminID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.POStatusIssued), approved.Status)
	require.NotNil(t, approved.ApprovedByUserID)
	assert.Equal(t, adminID, *approved.ApprovedByUserID)
	assert.Empty(t, approved.RejectionReason)
	require.Len(t, approved.Items, 1)
	assert.Equal(t, 4, approved.Items[0].Quantity)
}

func TestPurchaseOrder_EdicionSoloEnBorrador(t *testing.T) {
	f := newFixture(t)
	po := f.issuedPO(t, 1)
	notes := "nota"

	_, err := f.orders.UpdateHeader(f.ctx, po.ID, dto.UpdatePurchaseOrderRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.orders.ReplaceItems(f.ctx, po.ID, dto.ReplaceItemsRequest{Items: []dto.PurchaseOrderItemRequest{
		{ProductID: f.products[0], Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.orders.Cancel(f.ctx, po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una orden emitida no se cancela")
}

func TestPurchaseOrder_CancelarEsTerminal(t *testing.T) {
	f := newFixture(t)
	po := f.draftPO(t, 1)

	cancelled, err := f.orders.Cancel(f.ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.POStatusRejected), cancelled.Status)

	_, err = f.orders.Submit(f.ctx, po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestPurchaseOrder_ListYNoEncontrada(t *testing.T) {
	f := newFixture(t)
	f.draftPO(t, 1)
	f.issuedPO(t, 1)

	list, err := f.orders.List(f.ctx, string(entity.POStatusIssued), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].ID)

	_, err = f.orders.List(f.ctx, "Archivada", dto.PageRequest{})
	assert.Equal(t, []string{domain.ViolationInvalidValue}, violations(t, err))

	_, err = f.orders.Get(f.ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.orders.Approve(f.ctx, 404, adminID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuantityAggregator_NoEncontrado(t *testing.T) {
	f := newFixture(t)
	po := f.issuedPO(t, 1)

	_, err := f.aggregator.ComputeLineStats(f.ctx, 404, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.aggregator.ComputeLineStats(f.ctx, po.ID, []int64{po.Items[0].ID, 999})
	assert.ErrorIs(t, err, domain.ErrNotFound, "una línea ajena a la orden se reporta como no encontrada")

	stats, err := f.aggregator.ComputeLineStats(f.ctx, po.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[po.Items[0].ID].Remaining)
}
