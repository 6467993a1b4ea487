package procurement_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/procurement"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/testutil/memstore"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

const (
	adminID     int64 = 1
	warehouseID int64 = 2
	storageZone int64 = 7
	quarantine  int64 = 14
)

// seqSerials generador determinista para pruebas.
type seqSerials struct{ serial, receipt int }

func (g *seqSerials) Serial() string {
	g.serial++
	return fmt.Sprintf("SN-%04d", g.serial)
}

func (g *seqSerials) ReceiptNumber() string {
	g.receipt++
	return fmt.Sprintf("GR-%04d", g.receipt)
}

type fakePDF struct {
	doc procurement.ReceiptDocument
}

func (f *fakePDF) GenerateReceiptPDF(_ context.Context, doc procurement.ReceiptDocument) ([]byte, error) {
	f.doc = doc
	return []byte("%PDF-1.4"), nil
}

type fixture struct {
	ctx        context.Context
	store      *memstore.Store
	orders     *procurement.PurchaseOrderUseCase
	manifests  *procurement.ManifestUseCase
	receipts   *procurement.ReceiptUseCase
	aggregator *procurement.QuantityAggregator
	pdf        *fakePDF
	supplierID int64
	products   []int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	log := logger.Nop()
	zones := procurement.ZoneConfig{DefaultStorageZoneID: storageZone, QuarantineZoneID: quarantine}
	serials := &seqSerials{}
	pdf := &fakePDF{}

	f := &fixture{
		ctx:   ctx,
		store: store,
		orders: procurement.NewPurchaseOrderUseCase(store, store.PurchaseOrders(), store.Suppliers(),
			store.Products(), log),
		manifests: procurement.NewManifestUseCase(store, store.Manifests(), store.Assets(), zones, serials, log),
		receipts: procurement.NewReceiptUseCase(procurement.ReceiptDeps{
			Tx:        store,
			Receipts:  store.Receipts(),
			Assets:    store.Assets(),
			Moves:     store.StockMoves(),
			Orders:    store.PurchaseOrders(),
			Suppliers: store.Suppliers(),
			Products:  store.Products(),
			PDF:       pdf,
			Zones:     zones,
			Serials:   serials,
			Log:       log,
		}),
		aggregator: procurement.NewQuantityAggregator(store.PurchaseOrders(), store.StockMoves()),
		pdf:        pdf,
	}

	supplier := &entity.Supplier{Name: "Distribuidora Andina"}
	require.NoError(t, store.Suppliers().Create(ctx, supplier))
	f.supplierID = supplier.ID
	for i, sku := range []string{"LAP-001", "MON-002"} {
		p := &entity.Product{SKU: sku, Name: fmt.Sprintf("Producto %d", i+1), SellingPrice: decimal.NewFromInt(100)}
		require.NoError(t, store.Products().Create(ctx, p))
		f.products = append(f.products, p.ID)
	}
	return f
}

// issuedPO crea una orden emitida con una línea por cantidad, alternando productos.
func (f *fixture) issuedPO(t *testing.T, quantities ...int) *dto.PurchaseOrderResponse {
	t.Helper()
	po := f.draftPO(t, quantities...)
	_, err := f.orders.Submit(f.ctx, po.ID)
	require.NoError(t, err)
	po, err = f.orders.Approve(f.ctx, po.ID, adminID)
	require.NoError(t, err)
	require.Equal(t, string(entity.POStatusIssued), po.Status)
	return po
}

func (f *fixture) draftPO(t *testing.T, quantities ...int) *dto.PurchaseOrderResponse {
	t.Helper()
	req := dto.CreatePurchaseOrderRequest{SupplierID: f.supplierID}
	for i, q := range quantities {
		req.Items = append(req.Items, dto.PurchaseOrderItemRequest{
			ProductID: f.products[i%len(f.products)],
			Quantity:  q,
			UnitPrice: decimal.NewFromInt(10),
		})
	}
	po, err := f.orders.Create(f.ctx, adminID, req)
	require.NoError(t, err)
	return po
}

func declared(itemID int64, qty int) procurement.QuantityDeclaredLine {
	return procurement.QuantityDeclaredLine{LineBase: procurement.LineBase{PurchaseOrderItemID: itemID}, Quantity: qty}
}

func specified(itemID int64, serials ...string) procurement.AssetSpecifiedLine {
	return procurement.AssetSpecifiedLine{LineBase: procurement.LineBase{PurchaseOrderItemID: itemID}, SerialNumbers: serials}
}

func (f *fixture) manifest(t *testing.T, poID int64, lines ...procurement.ManifestLineInput) *dto.ManifestCreatedResponse {
	t.Helper()
	out, err := f.manifests.Create(f.ctx, warehouseID, procurement.CreateManifestInput{
		PurchaseOrderID: poID,
		TrackingNumber:  "TRK-1",
		Lines:           lines,
	})
	require.NoError(t, err)
	return out
}

// manifestAssets IDs de los activos de una línea de manifiesto.
func (f *fixture) manifestAssets(t *testing.T, manifestID int64, itemID int64) []int64 {
	t.Helper()
	m, err := f.store.Manifests().GetByID(f.ctx, manifestID)
	require.NoError(t, err)
	var lineID int64
	for _, l := range m.Lines {
		if l.PurchaseOrderItemID == itemID {
			lineID = l.ID
		}
	}
	require.NotZero(t, lineID, "la línea de orden debe estar en el manifiesto")
	var ids []int64
	for _, a := range f.store.AllAssets() {
		if a.ShipmentManifestLineID != nil && *a.ShipmentManifestLineID == lineID {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func (f *fixture) lineID(m *dto.ManifestCreatedResponse, itemID int64) int64 {
	got, _ := f.store.Manifests().GetByID(f.ctx, m.ID)
	for _, l := range got.Lines {
		if l.PurchaseOrderItemID == itemID {
			return l.ID
		}
	}
	return 0
}

func (f *fixture) stats(t *testing.T, poID, itemID int64) dto.LineStatsResponse {
	t.Helper()
	out, err := f.aggregator.LineStats(f.ctx, poID, []int64{itemID})
	require.NoError(t, err)
	require.Len(t, out, 1)
	return out[0]
}

// violations extrae los códigos de un ValidationError.
func violations(t *testing.T, err error) []string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "se esperaba ValidationError, se obtuvo %v", err)
	codes := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		codes = append(codes, v.Code)
	}
	return codes
}

func procurementDraft(poID, itemID int64) procurement.CreateManifestInput {
	return procurement.CreateManifestInput{
		PurchaseOrderID: poID,
		Status:          entity.ManifestStatusDraft,
		Lines:           []procurement.ManifestLineInput{declared(itemID, 1)},
	}
}
