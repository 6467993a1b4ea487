package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func draftPO(items ...entity.PurchaseOrderItem) *entity.PurchaseOrder {
	return &entity.PurchaseOrder{ID: 1, Status: entity.POStatusDraft, Items: items}
}

func item(id int64, qty int, price string) entity.PurchaseOrderItem {
	return entity.PurchaseOrderItem{ID: id, ProductID: 5, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func TestPurchaseOrder_FlujoCompleto(t *testing.T) {
	po := draftPO(item(1, 10, "2.00"))

	require.NoError(t, po.Submit(now))
	assert.Equal(t, entity.POStatusPending, po.Status)

	require.NoError(t, po.Approve(7, now))
	assert.Equal(t, entity.POStatusIssued, po.Status)
	require.NotNil(t, po.ApprovedByUserID)
	assert.Equal(t, int64(7), *po.ApprovedByUserID)

	require.NoError(t, po.MarkDelivered(now))
	assert.Equal(t, entity.POStatusDelivered, po.Status)
}

func TestPurchaseOrder_ApproveSoloDesdePending(t *testing.T) {
	po := draftPO(item(1, 1, "1"))

	err := po.Approve(1, now)
	var stateErr *domain.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "Draft", stateErr.Status)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
}

func TestPurchaseOrder_ApproveSinItems(t *testing.T) {
	po := &entity.PurchaseOrder{ID: 3, Status: entity.POStatusPending}

	err := po.Approve(1, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.POStatusPending, po.Status, "el estado no debe cambiar")
}

func TestPurchaseOrder_RejectVuelveADraft(t *testing.T) {
	po := draftPO(item(1, 1, "1"))
	require.NoError(t, po.Submit(now))

	assert.ErrorIs(t, po.Reject("  ", now), domain.ErrInvalidInput, "el motivo es obligatorio")

	require.NoError(t, po.Reject("precio incorrecto", now))
	assert.Equal(t, entity.POStatusDraft, po.Status)
	assert.Equal(t, "precio incorrecto", po.RejectionReason)

	assert.ErrorIs(t, po.Reject("otra vez", now), domain.ErrInvalidState, "solo se rechaza desde Pending")
}

func TestPurchaseOrder_ReplaceItemsSoloEnDraft(t *testing.T) {
	po := draftPO(item(1, 1, "1"))

	require.NoError(t, po.ReplaceItems([]entity.PurchaseOrderItem{item(0, 3, "2.50"), item(0, 2, "1.00")}, now))
	assert.True(t, decimal.RequireFromString("9.50").Equal(po.TotalPrice), "total = 3*2.50 + 2*1.00")

	require.NoError(t, po.Submit(now))
	require.NoError(t, po.Approve(1, now))
	assert.ErrorIs(t, po.ReplaceItems(nil, now), domain.ErrInvalidState, "una orden emitida es inmutable")

	notes := "x"
	assert.ErrorIs(t, po.ApplyPatch(entity.PurchaseOrderPatch{Notes: &notes}, now), domain.ErrInvalidState)
}

func TestPurchaseOrder_Cancel(t *testing.T) {
	po := draftPO()
	require.NoError(t, po.Cancel(now))
	assert.Equal(t, entity.POStatusRejected, po.Status)
	assert.ErrorIs(t, po.Cancel(now), domain.ErrInvalidState)
}

func TestPurchaseOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to entity.PurchaseOrderStatus
		ok       bool
	}{
		{entity.POStatusDraft, entity.POStatusPending, true},
		{entity.POStatusDraft, entity.POStatusIssued, false},
		{entity.POStatusPending, entity.POStatusIssued, true},
		{entity.POStatusPending, entity.POStatusDraft, true},
		{entity.POStatusIssued, entity.POStatusPartiallyReceived, true},
		{entity.POStatusDelivered, entity.POStatusReceived, true},
		{entity.POStatusPartiallyReceived, entity.POStatusReceived, true},
		{entity.POStatusReceived, entity.POStatusPartiallyReceived, false},
		{entity.POStatusRejected, entity.POStatusDraft, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestReceiptStatus(t *testing.T) {
	assert.Equal(t, entity.POStatusIssued, entity.ReceiptStatus(entity.POStatusIssued, 10, 0))
	assert.Equal(t, entity.POStatusPartiallyReceived, entity.ReceiptStatus(entity.POStatusIssued, 10, 4))
	assert.Equal(t, entity.POStatusReceived, entity.ReceiptStatus(entity.POStatusPartiallyReceived, 10, 10))
}

func TestProductPatch_Apply(t *testing.T) {
	p := &entity.Product{Name: "Cable", Measurement: "und"}
	name := "Cable HDMI"
	entity.ProductPatch{Name: &name}.Apply(p)

	assert.Equal(t, "Cable HDMI", p.Name)
	assert.Equal(t, "und", p.Measurement, "los campos ausentes no cambian")
}
