package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/inventory"
)

func move(line int64, from, to entity.Location, qty int) entity.StockMove {
	return entity.StockMove{PurchaseOrderItemID: line, Source: from, Destination: to, Quantity: qty}
}

func TestReplayLedger_LineaSinHistorial(t *testing.T) {
	stats := inventory.ReplayLedger(map[int64]int{1: 10}, nil)

	require.Contains(t, stats, int64(1))
	assert.Equal(t, inventory.LineStats{Ordered: 10, Remaining: 10}, stats[1],
		"sin movimientos toda la cantidad ordenada queda pendiente")
}

func TestReplayLedger_ManifiestoYRecepcion(t *testing.T) {
	moves := []entity.StockMove{
		move(1, entity.LocationVendor, entity.LocationInTransit, 10),
		move(1, entity.LocationInTransit, entity.LocationAwaitingQC, 7),
		move(1, entity.LocationInTransit, entity.LocationRejectedDock, 3),
	}
	s := inventory.ReplayLedger(map[int64]int{1: 10}, moves)[1]

	assert.Equal(t, 0, s.InTransit)
	assert.Equal(t, 7, s.AwaitingQC)
	assert.Equal(t, 3, s.Rejected)
	assert.Equal(t, 10, s.Shipped)
	assert.Equal(t, 10, s.Arrived)
	assert.Equal(t, 7, s.Accepted, "lo rechazado no cuenta como aceptado")
	assert.Equal(t, 0, s.Remaining)
	assert.Equal(t, 0, s.NotReceived())
}

func TestReplayLedger_EnTransitoDescuentaPendiente(t *testing.T) {
	moves := []entity.StockMove{move(1, entity.LocationVendor, entity.LocationInTransit, 4)}
	s := inventory.ReplayLedger(map[int64]int{1: 10}, moves)[1]

	assert.Equal(t, 4, s.InTransit)
	assert.Equal(t, 6, s.Remaining, "lo que salió del proveedor ya no está pendiente")
	assert.Equal(t, 10, s.NotReceived(), "pero aún no ha llegado a la bodega")
}

func TestReplayLedger_RecepcionDirectaYDevolucion(t *testing.T) {
	moves := []entity.StockMove{
		move(1, entity.LocationVendor, entity.LocationAwaitingQC, 5),
		move(1, entity.LocationVendor, entity.LocationRejectedDock, 2),
		move(1, entity.LocationRejectedDock, entity.LocationVendor, 2),
		move(1, entity.LocationAwaitingQC, entity.LocationAvailable, 5),
	}
	s := inventory.ReplayLedger(map[int64]int{1: 10}, moves)[1]

	assert.Equal(t, 5, s.Available)
	assert.Equal(t, 0, s.AwaitingQC)
	assert.Equal(t, 0, s.Rejected)
	assert.Equal(t, 5, s.Shipped, "la devolución al proveedor reabre la cantidad")
	assert.Equal(t, 5, s.Remaining)
	assert.Equal(t, 5, s.Accepted, "mover entre ubicaciones internas no cuenta de nuevo")
}

func TestReplayLedger_IgnoraLineasAjenas(t *testing.T) {
	moves := []entity.StockMove{
		move(1, entity.LocationVendor, entity.LocationInTransit, 3),
		move(99, entity.LocationVendor, entity.LocationInTransit, 50),
	}
	stats := inventory.ReplayLedger(map[int64]int{1: 5, 2: 8}, moves)

	require.Len(t, stats, 2)
	assert.Equal(t, 2, stats[1].Remaining)
	assert.Equal(t, 8, stats[2].Remaining)
}

// El pendiente físico derivado del ledger coincide con el conteo de activos fuera de {Vendor, In Transit}.
func TestReplayLedger_ConsistenteConActivos(t *testing.T) {
	assetsByLocation := map[entity.Location]int{
		entity.LocationInTransit:    2,
		entity.LocationAwaitingQC:   5,
		entity.LocationRejectedDock: 1,
	}
	moves := []entity.StockMove{
		move(1, entity.LocationVendor, entity.LocationInTransit, 8),
		move(1, entity.LocationInTransit, entity.LocationAwaitingQC, 5),
		move(1, entity.LocationInTransit, entity.LocationRejectedDock, 1),
	}
	s := inventory.ReplayLedger(map[int64]int{1: 12}, moves)[1]

	inside := 0
	for loc, n := range assetsByLocation {
		if !loc.IsExternal() {
			inside += n
		}
	}
	assert.Equal(t, 12-inside, s.NotReceived())
	assert.Equal(t, assetsByLocation[entity.LocationInTransit], s.InTransit)
	assert.Equal(t, 4, s.Remaining)
}

func TestTotals(t *testing.T) {
	stats := map[int64]inventory.LineStats{
		1: {Ordered: 10, Accepted: 4},
		2: {Ordered: 5, Accepted: 5},
	}
	ordered, accepted := inventory.Totals(stats)
	assert.Equal(t, 15, ordered)
	assert.Equal(t, 9, accepted)
}

func TestUUIDSerials_Formato(t *testing.T) {
	g := inventory.NewUUIDSerials("")

	sn := g.Serial()
	assert.Len(t, sn, len("SN-")+12)
	assert.Regexp(t, `^SN-[0-9A-F]{12}$`, sn)

	rn := g.ReceiptNumber()
	assert.Regexp(t, `^GR-[0-9A-F]{10}$`, rn)
	assert.NotEqual(t, rn, g.ReceiptNumber(), "dos números de recibo no deben coincidir")
}
