package inventory

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// LineStats desglose de cantidades de una línea de orden de compra obtenido del ledger.
type LineStats struct {
	Ordered    int
	Available  int
	InTransit  int
	AwaitingQC int
	Rejected   int // neto en Rejected Dock
	Quarantine int
	Shipped    int // neto que ha salido del proveedor
	Arrived    int // acumulado que llegó desde fuera (proveedor o tránsito) a una ubicación interna
	Accepted   int // parte de Arrived que llegó a una ubicación de mercancía buena
	Remaining  int // Ordered - Shipped
}

// NotReceived cantidad ordenada que aún no llega físicamente a la bodega.
func (s LineStats) NotReceived() int { return s.Ordered - s.Arrived }

// ReplayLedger reconstruye el estado de cada línea plegando los movimientos (servicio de dominio, sin efectos).
// Las líneas de ordered sin movimientos quedan con Remaining = Ordered; los movimientos de líneas
// fuera de ordered se ignoran.
func ReplayLedger(ordered map[int64]int, moves []entity.StockMove) map[int64]LineStats {
	out := make(map[int64]LineStats, len(ordered))
	for id, qty := range ordered {
		out[id] = LineStats{Ordered: qty}
	}
	for _, mv := range moves {
		s, ok := out[mv.PurchaseOrderItemID]
		if !ok {
			continue
		}
		apply(&s, mv.Destination, mv.Quantity)
		apply(&s, mv.Source, -mv.Quantity)
		if mv.Source.IsExternal() && !mv.Destination.IsExternal() {
			s.Arrived += mv.Quantity
			if mv.Destination.IsGoodStock() {
				s.Accepted += mv.Quantity
			}
		}
		out[mv.PurchaseOrderItemID] = s
	}
	for id, s := range out {
		s.Remaining = s.Ordered - s.Shipped
		out[id] = s
	}
	return out
}

// apply suma qty al contador de loc. Salir del proveedor incrementa Shipped; volver a él lo reduce.
func apply(s *LineStats, loc entity.Location, qty int) {
	switch loc {
	case entity.LocationVendor:
		s.Shipped -= qty
	case entity.LocationAvailable:
		s.Available += qty
	case entity.LocationInTransit:
		s.InTransit += qty
	case entity.LocationAwaitingQC:
		s.AwaitingQC += qty
	case entity.LocationRejectedDock:
		s.Rejected += qty
	case entity.LocationQuarantine:
		s.Quarantine += qty
	}
}

// Totals suma Ordered y Accepted de todas las líneas.
func Totals(stats map[int64]LineStats) (ordered, accepted int) {
	for _, s := range stats {
		ordered += s.Ordered
		accepted += s.Accepted
	}
	return ordered, accepted
}
